package ecs_test

import (
	"github.com/plus3/tileview/ecs"
)

// Common test component types
type Position struct {
	X, Y float64
}

func (p *Position) Pos() ecs.Vec2 {
	return ecs.Vec2{X: p.X, Y: p.Y}
}

type Name struct {
	Value string
}

// countingSystem records how often it was ticked and how often it received
// a render-only frame.
type countingSystem struct {
	ecs.BaseSystem[Position]
	Updates int
	Renders int
	Err     error
	order   *[]ecs.SystemId
}

func newCountingSystem(id ecs.SystemId, caps ecs.Capability, order *[]ecs.SystemId) *countingSystem {
	return &countingSystem{
		BaseSystem: ecs.NewBaseSystem[Position](id, caps),
		order:      order,
	}
}

func (s *countingSystem) Update(frame *ecs.UpdateFrame) error {
	if frame.RenderOnly {
		s.Renders++
	} else {
		s.Updates++
	}
	if s.order != nil {
		*s.order = append(*s.order, s.Id())
	}
	return s.Err
}

// upperCodec upper-cases names on load and tags them on save.
type upperCodec struct{}

func (upperCodec) GenerateComponentData(n Name) (Name, error) {
	out := []rune(n.Value)
	for i, r := range out {
		if r >= 'a' && r <= 'z' {
			out[i] = r - 'a' + 'A'
		}
	}
	return Name{Value: string(out)}, nil
}

func (upperCodec) GenerateEntityComponentDict(n Name) (Name, error) {
	return Name{Value: "saved:" + n.Value}, nil
}

// testMap is the smallest MapProvider.
type testMap struct {
	id   ecs.SystemId
	size ecs.Vec2
}

func (m *testMap) Id() ecs.SystemId  { return m.id }
func (m *testMap) MapSize() ecs.Vec2 { return m.size }

func newTestWorld(systems ...ecs.System) *ecs.World {
	world := ecs.NewWorld()
	for _, sys := range systems {
		if err := world.AddSystem(sys); err != nil {
			panic(err)
		}
	}
	return world
}
