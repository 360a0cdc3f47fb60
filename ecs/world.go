package ecs

import (
	"fmt"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// MapProvider is a system that bounds camera movement. The world's current
// map slot holds at most one of them.
type MapProvider interface {
	Id() SystemId
	MapSize() Vec2
}

// World owns the entities and the registered systems.
type World struct {
	entities *intmap.Map[EntityId, *Entity]
	nextId   EntityId

	systems map[SystemId]System
	order   []SystemId

	currentMap Slot[MapProvider]
	log        *zap.Logger

	// frame is the scheduler frame in progress, if any.
	frame *UpdateFrame
}

// WorldOption configures a World.
type WorldOption func(*World)

// WithLogger sets the logger handed to systems on initialization.
func WithLogger(log *zap.Logger) WorldOption {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

func NewWorld(opts ...WorldOption) *World {
	w := &World{
		entities: intmap.New[EntityId, *Entity](256),
		systems:  make(map[SystemId]System),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *World) Logger() *zap.Logger {
	return w.log
}

// CurrentMap is the single slot naming the map that bounds scrolling.
func (w *World) CurrentMap() *Slot[MapProvider] {
	return &w.currentMap
}

// CreateEntity allocates an entity with no components.
func (w *World) CreateEntity() EntityId {
	w.nextId++
	id := w.nextId
	w.entities.Put(id, newEntity(id))
	return id
}

// Entity returns the entity with the given id.
func (w *World) Entity(id EntityId) (*Entity, error) {
	e, ok := w.entities.Get(id)
	if !ok {
		return nil, fmt.Errorf("entity %d: %w", id, ErrEntityNotFound)
	}
	return e, nil
}

func (w *World) EntityCount() int {
	return w.entities.Len()
}

// DestroyEntity detaches the entity from every system that tracks it and
// drops it together with its component slots.
func (w *World) DestroyEntity(id EntityId) error {
	e, err := w.Entity(id)
	if err != nil {
		return err
	}
	for _, sysId := range e.SystemIds() {
		sys, ok := w.systems[sysId]
		if !ok || !sys.Tracks(id) {
			continue
		}
		if err := sys.RemoveEntity(id); err != nil {
			return fmt.Errorf("destroy entity %d: %w", id, err)
		}
	}
	w.entities.Del(id)
	return nil
}

// Component returns the raw slot stored on the entity for the given system.
func (w *World) Component(id EntityId, sys SystemId) (any, error) {
	e, err := w.Entity(id)
	if err != nil {
		return nil, err
	}
	c, ok := e.Component(sys)
	if !ok {
		return nil, fmt.Errorf("entity %d, system %s: %w", id, sys, ErrComponentNotFound)
	}
	return c, nil
}

// ReadComponent returns the typed component stored on the entity for the
// given system.
func ReadComponent[T any](w *World, id EntityId, sys SystemId) (*T, error) {
	c, err := w.Component(id, sys)
	if err != nil {
		return nil, err
	}
	typed, ok := c.(*T)
	if !ok {
		return nil, fmt.Errorf("entity %d, system %s: %T: %w", id, sys, c, ErrComponentType)
	}
	return typed, nil
}

// AddSystem registers the system, initializes it on first registration and
// activates it. Adding an already registered system instance reactivates it.
func (w *World) AddSystem(sys System) error {
	if sys == nil {
		panic("ecs: AddSystem called with nil system")
	}
	id := sys.Id()
	if existing, ok := w.systems[id]; ok {
		if existing != sys {
			return fmt.Errorf("add system %s: %w", id, ErrDuplicateSystem)
		}
		return sys.OnAddSystem()
	}

	if sys.Lifecycle() == Uninitialized {
		if err := sys.OnInitSystem(w); err != nil {
			return err
		}
	}
	if err := sys.OnAddSystem(); err != nil {
		return err
	}

	w.systems[id] = sys
	w.order = append(w.order, id)
	w.log.Debug("system registered", zap.String("system", string(id)))
	return nil
}

// RemoveSystem deactivates a registered system. It stays registered and can
// be added again.
func (w *World) RemoveSystem(id SystemId) error {
	sys, err := w.System(id)
	if err != nil {
		return err
	}
	return sys.OnRemoveSystem()
}

// DeleteSystem tears the system down and unregisters it.
func (w *World) DeleteSystem(id SystemId) error {
	sys, err := w.System(id)
	if err != nil {
		return err
	}
	if sys.Lifecycle() == Active {
		if err := sys.OnRemoveSystem(); err != nil {
			return err
		}
	}
	if err := sys.OnDeleteSystem(); err != nil {
		return err
	}

	delete(w.systems, id)
	for i, sid := range w.order {
		if sid == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	w.log.Debug("system unregistered", zap.String("system", string(id)))
	return nil
}

func (w *World) System(id SystemId) (System, error) {
	sys, ok := w.systems[id]
	if !ok {
		return nil, fmt.Errorf("system %s: %w", id, ErrSystemNotFound)
	}
	return sys, nil
}

// Systems returns the registered systems in registration order.
func (w *World) Systems() []System {
	out := make([]System, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.systems[id])
	}
	return out
}

// RenderPass runs a render-only frame on every active renderable system
// except skip, in registration order.
//
// Commands queued during the pass join the scheduler frame in progress and
// are applied with it. Outside a scheduler frame they are applied when the
// pass ends.
func (w *World) RenderPass(skip SystemId) error {
	frame := NewRenderFrame(w)
	if w.frame != nil {
		frame.Commands = w.frame.Commands
	}
	for _, sys := range w.Systems() {
		if sys.Id() == skip || !ShouldRender(sys) {
			continue
		}
		if err := sys.Update(frame); err != nil {
			return fmt.Errorf("render %s: %w", sys.Id(), err)
		}
	}
	if w.frame != nil {
		return nil
	}
	return frame.Commands.Flush(w)
}

func (w *World) beginFrame(frame *UpdateFrame) {
	w.frame = frame
}

func (w *World) endFrame() {
	w.frame = nil
}
