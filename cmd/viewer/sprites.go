package main

import (
	"fmt"
	"image/color"

	"github.com/plus3/tileview/ecs"
	"github.com/plus3/tileview/ecs/gameview"
)

const spritesId ecs.SystemId = "sprites"

// Sprite is drawn at the position the motion system holds for the entity.
type Sprite struct {
	Color  [3]uint8 `yaml:"color"`
	Radius float64  `yaml:"radius"`
}

type drawItem struct {
	screen ecs.Vec2
	radius float32
	color  color.RGBA
	focus  bool
}

// SpriteSystem keeps a screen-space draw list of its entities. It rebuilds
// the list every tick and on render-only frames forced by camera moves.
type SpriteSystem struct {
	ecs.BaseSystem[Sprite]

	positions ecs.SystemId
	drawList  []drawItem
	rebuilds  int
}

func NewSpriteSystem(positions, viewport ecs.SystemId) *SpriteSystem {
	return &SpriteSystem{
		BaseSystem: ecs.NewBaseSystem[Sprite](spritesId, ecs.CanUpdate|ecs.CanRender, ecs.WithViewport[Sprite](viewport)),
		positions:  positions,
	}
}

func (s *SpriteSystem) Update(frame *ecs.UpdateFrame) error {
	sys, err := frame.World.System(s.Viewport())
	if err != nil {
		return err
	}
	view, ok := sys.(*gameview.ViewportSystem)
	if !ok {
		return fmt.Errorf("%s: %s is not a viewport", s.Id(), s.Viewport())
	}

	focused, hasFocus := view.EntityToFocus()
	visible := view.VisibleRect()

	s.drawList = s.drawList[:0]
	for _, id := range s.EntityIds() {
		sprite, err := s.Component(id)
		if err != nil {
			return err
		}
		comp, err := frame.World.Component(id, s.positions)
		if err != nil {
			return err
		}
		positioned, ok := comp.(ecs.Positioned)
		if !ok {
			return fmt.Errorf("%s: entity %d: %w", s.Id(), id, gameview.ErrNoPosition)
		}
		p := positioned.Pos()
		r := sprite.Radius
		if p.X+r < visible.Pos.X || p.Y+r < visible.Pos.Y ||
			p.X-r > visible.Pos.X+visible.Size.X || p.Y-r > visible.Pos.Y+visible.Size.Y {
			continue
		}
		s.drawList = append(s.drawList, drawItem{
			screen: view.ToScreen(p),
			radius: float32(r),
			color:  color.RGBA{sprite.Color[0], sprite.Color[1], sprite.Color[2], 255},
			focus:  hasFocus && focused == id,
		})
	}
	s.rebuilds++
	return nil
}
