// Package gameview provides the viewport system: a scrollable camera that can
// follow an entity, is kept inside the current map and forces renderable
// systems to redraw when it moves.
package gameview

import (
	"errors"
	"fmt"

	"github.com/plus3/tileview/ecs"
	"go.uber.org/zap"
)

const (
	DefaultId ecs.SystemId = "default_gameview"
	// DefaultFocusSource is the system focus positions are read from.
	DefaultFocusSource ecs.SystemId = "cymunk-physics"
)

const (
	// followDeadZone suppresses sub-pixel follow corrections.
	followDeadZone = 1.0
	// dragThreshold suppresses pointer noise.
	dragThreshold = 2.0
)

var ErrNoPosition = errors.New("focus component does not carry a position")

// DragEvent is a pointer move delivered to the viewport.
type DragEvent struct {
	DX, DY float64
}

// ViewportSystem is the camera over the current map.
//
// CameraPos is the offset added to map coordinates to place them on screen,
// so a point p in map space is drawn at p + CameraPos. Scroll locking keeps
// the map covering the viewport rectangle.
type ViewportSystem struct {
	ecs.BaseSystem[struct{}]

	// ScrollLocked enables clamping camera moves to the current map.
	ScrollLocked bool
	// DoScroll enables drag-to-scroll.
	DoScroll bool
	// ForceCameraUpdate re-renders every other renderable system on camera moves.
	ForceCameraUpdate bool
	// FocusPositionInfoFrom names the system whose components supply the
	// focus entity's position.
	FocusPositionInfoFrom ecs.SystemId

	cameraPos ecs.Vec2
	pos       ecs.Vec2
	size      ecs.Vec2

	focusEntity   bool
	entityToFocus ecs.EntityId

	cascade CascadeState
	scroll  *scrollAnim
}

// Option configures a ViewportSystem.
type Option func(*ViewportSystem)

func WithId(id ecs.SystemId) Option {
	return func(v *ViewportSystem) {
		v.BaseSystem = ecs.NewBaseSystem[struct{}](id, ecs.CanUpdate, ecs.Paused[struct{}]())
	}
}

func WithFocusSource(id ecs.SystemId) Option {
	return func(v *ViewportSystem) {
		v.FocusPositionInfoFrom = id
	}
}

// WithRect sets the viewport rectangle in screen space.
func WithRect(pos, size ecs.Vec2) Option {
	return func(v *ViewportSystem) {
		v.pos = pos
		v.size = size
	}
}

// New creates a viewport. Viewports start paused with scroll locking on and
// drag scrolling off; call SetPaused(false) once the scene is live.
func New(opts ...Option) *ViewportSystem {
	v := &ViewportSystem{
		BaseSystem:            ecs.NewBaseSystem[struct{}](DefaultId, ecs.CanUpdate, ecs.Paused[struct{}]()),
		ScrollLocked:          true,
		FocusPositionInfoFrom: DefaultFocusSource,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *ViewportSystem) CameraPos() ecs.Vec2 {
	return v.cameraPos
}

func (v *ViewportSystem) Pos() ecs.Vec2 {
	return v.pos
}

func (v *ViewportSystem) Size() ecs.Vec2 {
	return v.size
}

// VisibleRect is the part of map space currently shown.
func (v *ViewportSystem) VisibleRect() ecs.Rect {
	return ecs.Rect{Pos: v.pos.Sub(v.cameraPos), Size: v.size}
}

// ToScreen converts a map-space point to screen space.
func (v *ViewportSystem) ToScreen(p ecs.Vec2) ecs.Vec2 {
	return p.Add(v.cameraPos)
}

// ToMap converts a screen-space point to map space.
func (v *ViewportSystem) ToMap(p ecs.Vec2) ecs.Vec2 {
	return p.Sub(v.cameraPos)
}

// SetCameraPos moves the camera. Moves to the current position are ignored;
// any other move advances the render cascade.
func (v *ViewportSystem) SetCameraPos(p ecs.Vec2) error {
	if p == v.cameraPos {
		return nil
	}
	v.cameraPos = p
	return v.onCameraMoved()
}

func (v *ViewportSystem) moveCamera(delta ecs.Vec2) error {
	return v.SetCameraPos(v.cameraPos.Add(delta))
}

// SetPos places the viewport on screen.
func (v *ViewportSystem) SetPos(p ecs.Vec2) {
	v.pos = p
}

// SetSize resizes the viewport. With scroll locking on and a current map the
// camera is snapped back inside the map.
func (v *ViewportSystem) SetSize(size ecs.Vec2) error {
	if size == v.size {
		return nil
	}
	v.size = size
	if !v.ScrollLocked {
		return nil
	}
	correction, err := v.LockScroll(ecs.Vec2{})
	if errors.Is(err, ecs.ErrNoCurrentMap) || errors.Is(err, ecs.ErrDetached) {
		return nil
	}
	if err != nil {
		return err
	}
	return v.moveCamera(correction)
}

// SetEntityToFocus makes the camera follow the entity. Zero clears the focus.
func (v *ViewportSystem) SetEntityToFocus(id ecs.EntityId) {
	v.entityToFocus = id
	v.focusEntity = id != 0
	if v.focusEntity {
		v.scroll = nil
	}
}

func (v *ViewportSystem) ClearFocus() {
	v.SetEntityToFocus(0)
}

// FocusEntity reports whether an entity is being followed.
func (v *ViewportSystem) FocusEntity() bool {
	return v.focusEntity
}

// EntityToFocus returns the followed entity, if any.
func (v *ViewportSystem) EntityToFocus() (ecs.EntityId, bool) {
	return v.entityToFocus, v.focusEntity
}

// Update follows the focus entity, or advances a ScrollTo pan when nothing
// is focused. Render-only frames do nothing.
func (v *ViewportSystem) Update(frame *ecs.UpdateFrame) error {
	if frame.RenderOnly {
		return nil
	}
	if v.focusEntity {
		return v.follow()
	}
	return v.advanceScroll(float32(frame.DeltaTime))
}

func (v *ViewportSystem) follow() error {
	position, err := v.focusPosition()
	if err != nil {
		return err
	}
	dist := ecs.Vec2{
		X: -v.cameraPos.X - position.X + v.size.X*0.5,
		Y: -v.cameraPos.Y - position.Y + v.size.Y*0.5,
	}
	dist = v.clampIfMapped(dist)
	if dist.Manhattan() < followDeadZone {
		return nil
	}
	return v.moveCamera(dist)
}

func (v *ViewportSystem) focusPosition() (ecs.Vec2, error) {
	world := v.World()
	if world == nil {
		return ecs.Vec2{}, ecs.ErrDetached
	}
	comp, err := world.Component(v.entityToFocus, v.FocusPositionInfoFrom)
	if err != nil {
		return ecs.Vec2{}, fmt.Errorf("%s: focus: %w", v.Id(), err)
	}
	positioned, ok := comp.(ecs.Positioned)
	if !ok {
		return ecs.Vec2{}, fmt.Errorf("%s: focus entity %d in %s: %w", v.Id(), v.entityToFocus, v.FocusPositionInfoFrom, ErrNoPosition)
	}
	return positioned.Pos(), nil
}

// OnDrag scrolls the camera by a pointer drag when DoScroll is on. Drags
// whose |dx|+|dy| is 2 or less are ignored.
func (v *ViewportSystem) OnDrag(ev DragEvent) error {
	if !v.DoScroll {
		return nil
	}
	delta := ecs.Vec2{X: ev.DX, Y: ev.DY}
	if delta.Manhattan() <= dragThreshold {
		return nil
	}
	v.Logger().Debug("doing scroll", zap.Float64("dx", delta.X), zap.Float64("dy", delta.Y))
	return v.moveCamera(v.clampIfMapped(delta))
}
