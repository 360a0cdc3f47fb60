// Package motion provides a minimal kinematic system whose components carry a
// position, so viewports can follow its entities.
package motion

import (
	"github.com/plus3/tileview/ecs"
)

// DefaultId matches the position source a viewport reads from by default.
const DefaultId ecs.SystemId = "cymunk-physics"

// Body is the component stored for each entity.
type Body struct {
	Position ecs.Vec2 `yaml:"position"`
	Velocity ecs.Vec2 `yaml:"velocity"`
}

// Pos implements ecs.Positioned.
func (b *Body) Pos() ecs.Vec2 {
	return b.Position
}

// MotionSystem moves bodies by their velocity every frame.
type MotionSystem struct {
	ecs.BaseSystem[Body]

	// Bounds, when non-empty, reflects bodies off its edges.
	Bounds ecs.Rect
}

func New(id ecs.SystemId) *MotionSystem {
	if id == "" {
		id = DefaultId
	}
	return &MotionSystem{
		BaseSystem: ecs.NewBaseSystem[Body](id, ecs.CanUpdate),
	}
}

// Update integrates every tracked body. Render-only frames leave positions
// untouched.
func (s *MotionSystem) Update(frame *ecs.UpdateFrame) error {
	if frame.RenderOnly {
		return nil
	}
	dt := frame.DeltaTime
	for _, id := range s.EntityIds() {
		body, err := s.Component(id)
		if err != nil {
			return err
		}
		body.Position = body.Position.Add(body.Velocity.Scale(dt))
		s.bounce(body)
	}
	return nil
}

func (s *MotionSystem) bounce(body *Body) {
	b := s.Bounds
	if b.Size.X <= 0 || b.Size.Y <= 0 {
		return
	}
	if body.Position.X < b.Pos.X {
		body.Position.X = b.Pos.X
		body.Velocity.X = -body.Velocity.X
	} else if body.Position.X > b.Pos.X+b.Size.X {
		body.Position.X = b.Pos.X + b.Size.X
		body.Velocity.X = -body.Velocity.X
	}
	if body.Position.Y < b.Pos.Y {
		body.Position.Y = b.Pos.Y
		body.Velocity.Y = -body.Velocity.Y
	} else if body.Position.Y > b.Pos.Y+b.Size.Y {
		body.Position.Y = b.Pos.Y + b.Size.Y
		body.Velocity.Y = -body.Velocity.Y
	}
}

// Position returns the position of a tracked entity.
func (s *MotionSystem) Position(id ecs.EntityId) (ecs.Vec2, error) {
	body, err := s.Component(id)
	if err != nil {
		return ecs.Vec2{}, err
	}
	return body.Position, nil
}
