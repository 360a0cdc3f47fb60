package ecs_test

import (
	"testing"

	"github.com/plus3/tileview/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldEntities(t *testing.T) {
	world := ecs.NewWorld()

	a := world.CreateEntity()
	b := world.CreateEntity()
	assert.NotZero(t, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, world.EntityCount())

	entity, err := world.Entity(a)
	require.NoError(t, err)
	assert.Equal(t, a, entity.Id)

	_, err = world.Entity(999)
	assert.ErrorIs(t, err, ecs.ErrEntityNotFound)
}

func TestWorldDestroyEntity(t *testing.T) {
	positions := newCountingSystem("positions", 0, nil)
	names := ecs.NewBaseSystem[Name]("names", 0)
	world := newTestWorld(positions, &names)

	id := world.CreateEntity()
	other := world.CreateEntity()
	require.NoError(t, positions.CreateComponent(id, Position{}))
	require.NoError(t, names.CreateComponent(id, Name{Value: "a"}))
	require.NoError(t, positions.CreateComponent(other, Position{}))

	require.NoError(t, world.DestroyEntity(id))

	_, err := world.Entity(id)
	assert.ErrorIs(t, err, ecs.ErrEntityNotFound)
	assert.Equal(t, []ecs.EntityId{other}, positions.EntityIds())
	assert.Empty(t, names.EntityIds())
	assert.Equal(t, 1, world.EntityCount())

	assert.ErrorIs(t, world.DestroyEntity(id), ecs.ErrEntityNotFound)
}

func TestWorldDestroyAfterRemoveEntity(t *testing.T) {
	positions := newCountingSystem("positions", 0, nil)
	names := ecs.NewBaseSystem[Name]("names", 0)
	world := newTestWorld(positions, &names)

	id := world.CreateEntity()
	require.NoError(t, positions.CreateComponent(id, Position{X: 1}))
	require.NoError(t, names.CreateComponent(id, Name{Value: "a"}))

	// The slot stays on the entity after the system stops tracking it
	require.NoError(t, positions.RemoveEntity(id))

	require.NoError(t, world.DestroyEntity(id))
	_, err := world.Entity(id)
	assert.ErrorIs(t, err, ecs.ErrEntityNotFound)
	assert.Equal(t, 0, world.EntityCount())
	assert.Empty(t, positions.EntityIds())
	assert.Empty(t, names.EntityIds())
}

func TestReadComponent(t *testing.T) {
	positions := newCountingSystem("positions", 0, nil)
	world := newTestWorld(positions)
	id := world.CreateEntity()
	require.NoError(t, positions.CreateComponent(id, Position{X: 1}))

	pos, err := ecs.ReadComponent[Position](world, id, "positions")
	require.NoError(t, err)
	assert.Equal(t, 1.0, pos.X)

	_, err = ecs.ReadComponent[Name](world, id, "positions")
	assert.ErrorIs(t, err, ecs.ErrComponentType)

	_, err = ecs.ReadComponent[Position](world, id, "velocity")
	assert.ErrorIs(t, err, ecs.ErrComponentNotFound)

	_, err = ecs.ReadComponent[Position](world, 77, "positions")
	assert.ErrorIs(t, err, ecs.ErrEntityNotFound)
}

func TestWorldSystems(t *testing.T) {
	t.Run("registration order", func(t *testing.T) {
		a := newCountingSystem("a", ecs.CanUpdate, nil)
		b := newCountingSystem("b", ecs.CanUpdate, nil)
		c := newCountingSystem("c", ecs.CanUpdate, nil)
		world := newTestWorld(b, c, a)

		var ids []ecs.SystemId
		for _, sys := range world.Systems() {
			ids = append(ids, sys.Id())
		}
		assert.Equal(t, []ecs.SystemId{"b", "c", "a"}, ids)
	})

	t.Run("add initializes and activates", func(t *testing.T) {
		sys := newCountingSystem("a", 0, nil)
		world := newTestWorld(sys)

		assert.Equal(t, ecs.Active, sys.Lifecycle())
		assert.Same(t, world, sys.World())

		found, err := world.System("a")
		require.NoError(t, err)
		assert.Same(t, sys, found)
	})

	t.Run("duplicate id", func(t *testing.T) {
		world := newTestWorld(newCountingSystem("a", 0, nil))
		err := world.AddSystem(newCountingSystem("a", 0, nil))
		assert.ErrorIs(t, err, ecs.ErrDuplicateSystem)
		assert.Len(t, world.Systems(), 1)
	})

	t.Run("remove then re-add", func(t *testing.T) {
		sys := newCountingSystem("a", 0, nil)
		world := newTestWorld(sys)

		require.NoError(t, world.RemoveSystem("a"))
		assert.Equal(t, ecs.Inactive, sys.Lifecycle())
		assert.Len(t, world.Systems(), 1, "removed systems stay registered")

		require.NoError(t, world.AddSystem(sys))
		assert.Equal(t, ecs.Active, sys.Lifecycle())
		assert.Len(t, world.Systems(), 1)
	})

	t.Run("delete", func(t *testing.T) {
		sys := newCountingSystem("a", 0, nil)
		world := newTestWorld(sys, newCountingSystem("b", 0, nil))

		require.NoError(t, world.DeleteSystem("a"))
		assert.Equal(t, ecs.Deleted, sys.Lifecycle())
		assert.Len(t, world.Systems(), 1)

		_, err := world.System("a")
		assert.ErrorIs(t, err, ecs.ErrSystemNotFound)

		assert.ErrorIs(t, world.DeleteSystem("a"), ecs.ErrSystemNotFound)
		assert.ErrorIs(t, world.AddSystem(sys), ecs.ErrSystemDeleted)
	})

	t.Run("unknown system", func(t *testing.T) {
		world := ecs.NewWorld()
		assert.ErrorIs(t, world.RemoveSystem("nope"), ecs.ErrSystemNotFound)
	})
}

func TestRenderPass(t *testing.T) {
	var order []ecs.SystemId
	self := newCountingSystem("self", ecs.CanUpdate|ecs.CanRender, &order)
	renderer := newCountingSystem("renderer", ecs.CanRender, &order)
	paused := newCountingSystem("paused", ecs.CanRender, &order)
	updater := newCountingSystem("updater", ecs.CanUpdate, &order)
	inactive := newCountingSystem("inactive", ecs.CanRender, &order)
	world := newTestWorld(self, renderer, paused, updater, inactive)

	paused.SetPaused(true)
	require.NoError(t, world.RemoveSystem("inactive"))

	require.NoError(t, world.RenderPass("self"))

	assert.Equal(t, []ecs.SystemId{"renderer", "paused"}, order)
	assert.Equal(t, 0, self.Renders)
	assert.Equal(t, 1, renderer.Renders)
	assert.Equal(t, 1, paused.Renders)
	assert.Equal(t, 0, updater.Renders)
	assert.Equal(t, 0, inactive.Renders)
	assert.Equal(t, 0, renderer.Updates, "render pass does not advance time")
}

func TestRenderPassError(t *testing.T) {
	a := newCountingSystem("a", ecs.CanRender, nil)
	b := newCountingSystem("b", ecs.CanRender, nil)
	a.Err = assert.AnError
	world := newTestWorld(a, b)

	err := world.RenderPass("")
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, b.Renders)
}

func TestCollectStats(t *testing.T) {
	positions := newCountingSystem("positions", ecs.CanUpdate, nil)
	world := newTestWorld(positions)
	for i := 0; i < 3; i++ {
		require.NoError(t, positions.CreateComponent(world.CreateEntity(), Position{}))
	}
	world.CreateEntity()

	stats := world.CollectStats()
	assert.Equal(t, 4, stats.EntityCount)
	assert.Equal(t, 1, stats.SystemCount)
	assert.False(t, stats.HasMap)
	require.Len(t, stats.Systems, 1)
	assert.Equal(t, ecs.SystemInfo{
		Id:           "positions",
		Lifecycle:    ecs.Active,
		Capabilities: ecs.CanUpdate,
		EntityCount:  3,
	}, stats.Systems[0])

	world.CurrentMap().Set(&testMap{id: "level"})
	stats = world.CollectStats()
	assert.True(t, stats.HasMap)
	assert.Equal(t, ecs.SystemId("level"), stats.CurrentMap)
}
