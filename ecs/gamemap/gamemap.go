// Package gamemap provides the map system that bounds camera scrolling.
package gamemap

import (
	"fmt"

	"github.com/plus3/tileview/ecs"
	"go.uber.org/zap"
)

const DefaultId ecs.SystemId = "default_map"

// DefaultSize is the size of a map created without an explicit size.
var DefaultSize = ecs.Vec2{X: 1500, Y: 1500}

// Cell places an entity on the map's tile grid.
type Cell struct {
	Col int `yaml:"col"`
	Row int `yaml:"row"`
}

// MapSystem tracks the entities placed on a map and publishes itself as the
// world's current map while it is active.
type MapSystem struct {
	ecs.BaseSystem[Cell]

	size     ecs.Vec2
	tileSize ecs.Vec2
}

// Option configures a MapSystem.
type Option func(*MapSystem)

// WithId overrides the default system id.
func WithId(id ecs.SystemId) Option {
	return func(m *MapSystem) {
		m.BaseSystem = ecs.NewBaseSystem[Cell](id, 0)
	}
}

// WithSize sets the map size in map units.
func WithSize(size ecs.Vec2) Option {
	return func(m *MapSystem) {
		m.size = size
	}
}

// New creates a map of DefaultSize unless WithSize is given.
func New(opts ...Option) *MapSystem {
	m := &MapSystem{
		BaseSystem: ecs.NewBaseSystem[Cell](DefaultId, 0),
		size:       DefaultSize,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.size.X < 0 || m.size.Y < 0 {
		panic(fmt.Sprintf("gamemap: negative map size %v", m.size))
	}
	return m
}

// NewTileMap creates a map whose size is cols*tileW by rows*tileH.
func NewTileMap(cols, rows int, tileW, tileH float64, opts ...Option) *MapSystem {
	size := ecs.Vec2{X: float64(cols) * tileW, Y: float64(rows) * tileH}
	m := New(append([]Option{WithSize(size)}, opts...)...)
	m.tileSize = ecs.Vec2{X: tileW, Y: tileH}
	return m
}

func (m *MapSystem) MapSize() ecs.Vec2 {
	return m.size
}

// SetMapSize changes the map size. Viewports pick it up on their next clamp.
func (m *MapSystem) SetMapSize(size ecs.Vec2) {
	m.size = size
}

func (m *MapSystem) TileSize() ecs.Vec2 {
	return m.tileSize
}

// Bounds is the map rectangle in map space.
func (m *MapSystem) Bounds() ecs.Rect {
	return ecs.Rect{Size: m.size}
}

// CellPosition returns the top-left corner of the cell in map space.
func (m *MapSystem) CellPosition(c Cell) ecs.Vec2 {
	return ecs.Vec2{X: float64(c.Col) * m.tileSize.X, Y: float64(c.Row) * m.tileSize.Y}
}

// OnAddSystem activates the map and makes it the world's current map,
// replacing any map that held the slot before.
func (m *MapSystem) OnAddSystem() error {
	if err := m.BaseSystem.OnAddSystem(); err != nil {
		return err
	}
	if world := m.World(); world != nil {
		world.CurrentMap().Set(m)
		m.Logger().Debug("current map set", zap.Float64("width", m.size.X), zap.Float64("height", m.size.Y))
	}
	return nil
}

// OnRemoveSystem deactivates the map and clears the current map slot if this
// map still holds it.
func (m *MapSystem) OnRemoveSystem() error {
	if err := m.BaseSystem.OnRemoveSystem(); err != nil {
		return err
	}
	if world := m.World(); world != nil && world.CurrentMap().Release(m) {
		m.Logger().Debug("current map cleared")
	}
	return nil
}

// Current returns the world's current map if it is a MapSystem.
func Current(world *ecs.World) (*MapSystem, bool) {
	provider, ok := world.CurrentMap().Get()
	if !ok {
		return nil, false
	}
	m, ok := provider.(*MapSystem)
	return m, ok
}
