package gameview_test

import (
	"testing"

	"github.com/plus3/tileview/ecs"
	"github.com/plus3/tileview/ecs/gamemap"
	"github.com/plus3/tileview/ecs/gameview"
	"github.com/plus3/tileview/ecs/motion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type viewportWorld struct {
	sched  *ecs.Scheduler
	bodies *motion.MotionSystem
	tiles  *gamemap.MapSystem
}

// newViewportWorld builds a 1500x1500 map, a motion system and an unpaused
// 800x600 viewport at the screen origin.
func newViewportWorld(t *testing.T) (*viewportWorld, *gameview.ViewportSystem, *ecs.World) {
	t.Helper()
	world := ecs.NewWorld()
	w := &viewportWorld{
		sched:  ecs.NewScheduler(world),
		bodies: motion.New(""),
		tiles:  gamemap.New(),
	}
	v := gameview.New(gameview.WithRect(ecs.Vec2{}, ecs.Vec2{X: 800, Y: 600}))
	v.SetPaused(false)

	require.NoError(t, w.sched.Register(w.tiles))
	require.NoError(t, w.sched.Register(w.bodies))
	require.NoError(t, w.sched.Register(v))
	return w, v, world
}

func (w *viewportWorld) spawn(t *testing.T, at ecs.Vec2) ecs.EntityId {
	t.Helper()
	id := w.sched.World().CreateEntity()
	require.NoError(t, w.bodies.CreateComponent(id, motion.Body{Position: at}))
	return id
}

func (w *viewportWorld) moveTo(t *testing.T, id ecs.EntityId, at ecs.Vec2) {
	t.Helper()
	body, err := w.bodies.Component(id)
	require.NoError(t, err)
	body.Position = at
}

func TestNewDefaults(t *testing.T) {
	v := gameview.New()
	assert.Equal(t, gameview.DefaultId, v.Id())
	assert.True(t, v.Paused())
	assert.True(t, v.ScrollLocked)
	assert.False(t, v.DoScroll)
	assert.False(t, v.ForceCameraUpdate)
	assert.Equal(t, gameview.DefaultFocusSource, v.FocusPositionInfoFrom)
	assert.True(t, v.Capabilities().Has(ecs.CanUpdate))
	assert.Equal(t, gameview.CascadeIdle, v.Cascade())

	custom := gameview.New(gameview.WithId("minimap"), gameview.WithFocusSource("physics"))
	assert.Equal(t, ecs.SystemId("minimap"), custom.Id())
	assert.Equal(t, ecs.SystemId("physics"), custom.FocusPositionInfoFrom)
	assert.True(t, custom.Paused())
}

func TestPausedViewportDoesNotFollow(t *testing.T) {
	w, v, _ := newViewportWorld(t)
	v.SetPaused(true)
	v.SetEntityToFocus(w.spawn(t, ecs.Vec2{X: 1000, Y: 700}))

	require.NoError(t, w.sched.Once(0.016))
	assert.Equal(t, ecs.Vec2{}, v.CameraPos())
}

func TestFollowCentersEntity(t *testing.T) {
	w, v, _ := newViewportWorld(t)
	id := w.spawn(t, ecs.Vec2{X: 1000, Y: 700})
	v.SetEntityToFocus(id)

	require.NoError(t, w.sched.Once(0.016))
	assert.Equal(t, ecs.Vec2{X: -600, Y: -400}, v.CameraPos())
	assert.Equal(t, ecs.Vec2{X: 400, Y: 300}, v.ToScreen(ecs.Vec2{X: 1000, Y: 700}))
	assert.Equal(t, ecs.Rect{Pos: ecs.Vec2{X: 600, Y: 400}, Size: ecs.Vec2{X: 800, Y: 600}}, v.VisibleRect())
}

func TestFollowClampsAtMapEdges(t *testing.T) {
	w, v, _ := newViewportWorld(t)
	id := w.spawn(t, ecs.Vec2{X: 1490, Y: 1490})
	v.SetEntityToFocus(id)

	require.NoError(t, w.sched.Once(0.016))
	assert.Equal(t, ecs.Vec2{X: -700, Y: -900}, v.CameraPos())

	w.moveTo(t, id, ecs.Vec2{X: 5, Y: 5})
	require.NoError(t, w.sched.Once(0.016))
	assert.Equal(t, ecs.Vec2{}, v.CameraPos())
}

func TestFollowDeadZone(t *testing.T) {
	w, v, _ := newViewportWorld(t)
	id := w.spawn(t, ecs.Vec2{X: 1000, Y: 700})
	v.SetEntityToFocus(id)
	require.NoError(t, w.sched.Once(0.016))
	settled := v.CameraPos()

	w.moveTo(t, id, ecs.Vec2{X: 1000.3, Y: 700.4})
	require.NoError(t, w.sched.Once(0.016))
	assert.Equal(t, settled, v.CameraPos(), "moves under one unit are ignored")

	w.moveTo(t, id, ecs.Vec2{X: 1000.6, Y: 700.6})
	require.NoError(t, w.sched.Once(0.016))
	assert.NotEqual(t, settled, v.CameraPos())
}

func TestFollowWithoutMapIsUnclamped(t *testing.T) {
	w, v, world := newViewportWorld(t)
	require.NoError(t, world.RemoveSystem(gamemap.DefaultId))

	v.SetEntityToFocus(w.spawn(t, ecs.Vec2{X: 100, Y: 100}))
	require.NoError(t, w.sched.Once(0.016))
	assert.Equal(t, ecs.Vec2{X: 300, Y: 200}, v.CameraPos())
}

func TestFollowStaleFocus(t *testing.T) {
	t.Run("missing entity", func(t *testing.T) {
		w, v, _ := newViewportWorld(t)
		v.SetEntityToFocus(999)
		assert.ErrorIs(t, w.sched.Once(0.016), ecs.ErrEntityNotFound)
	})

	t.Run("destroyed entity", func(t *testing.T) {
		w, v, world := newViewportWorld(t)
		id := w.spawn(t, ecs.Vec2{X: 10, Y: 10})
		v.SetEntityToFocus(id)
		require.NoError(t, world.DestroyEntity(id))
		assert.ErrorIs(t, w.sched.Once(0.016), ecs.ErrEntityNotFound)
	})

	t.Run("no component in focus source", func(t *testing.T) {
		w, v, world := newViewportWorld(t)
		v.SetEntityToFocus(world.CreateEntity())
		assert.ErrorIs(t, w.sched.Once(0.016), ecs.ErrComponentNotFound)
	})

	t.Run("component without position", func(t *testing.T) {
		w, v, world := newViewportWorld(t)
		id := world.CreateEntity()
		require.NoError(t, w.tiles.CreateComponent(id, gamemap.Cell{Col: 1}))
		v.FocusPositionInfoFrom = gamemap.DefaultId
		v.SetEntityToFocus(id)
		assert.ErrorIs(t, w.sched.Once(0.016), gameview.ErrNoPosition)
	})

	t.Run("clearing focus stops following", func(t *testing.T) {
		w, v, _ := newViewportWorld(t)
		v.SetEntityToFocus(999)
		v.ClearFocus()
		assert.False(t, v.FocusEntity())
		_, ok := v.EntityToFocus()
		assert.False(t, ok)
		assert.NoError(t, w.sched.Once(0.016))
	})
}

func TestSetSizeReclamps(t *testing.T) {
	t.Run("snaps back inside the map", func(t *testing.T) {
		_, v, _ := newViewportWorld(t)
		require.NoError(t, v.SetCameraPos(ecs.Vec2{X: -700, Y: -900}))

		require.NoError(t, v.SetSize(ecs.Vec2{X: 1000, Y: 800}))
		assert.Equal(t, ecs.Vec2{X: -500, Y: -700}, v.CameraPos())
	})

	t.Run("in bounds is untouched", func(t *testing.T) {
		_, v, _ := newViewportWorld(t)
		require.NoError(t, v.SetCameraPos(ecs.Vec2{X: -100, Y: -100}))

		require.NoError(t, v.SetSize(ecs.Vec2{X: 640, Y: 480}))
		assert.Equal(t, ecs.Vec2{X: -100, Y: -100}, v.CameraPos())
		assert.Equal(t, ecs.Vec2{X: 640, Y: 480}, v.Size())
	})

	t.Run("unlocked", func(t *testing.T) {
		_, v, _ := newViewportWorld(t)
		v.ScrollLocked = false
		require.NoError(t, v.SetCameraPos(ecs.Vec2{X: -700, Y: -900}))

		require.NoError(t, v.SetSize(ecs.Vec2{X: 1000, Y: 800}))
		assert.Equal(t, ecs.Vec2{X: -700, Y: -900}, v.CameraPos())
	})

	t.Run("no current map", func(t *testing.T) {
		_, v, world := newViewportWorld(t)
		require.NoError(t, world.RemoveSystem(gamemap.DefaultId))
		require.NoError(t, v.SetCameraPos(ecs.Vec2{X: -700, Y: -900}))

		require.NoError(t, v.SetSize(ecs.Vec2{X: 1000, Y: 800}))
		assert.Equal(t, ecs.Vec2{X: -700, Y: -900}, v.CameraPos())
	})
}

func TestOnDrag(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		_, v, _ := newViewportWorld(t)
		require.NoError(t, v.OnDrag(gameview.DragEvent{DX: -40, DY: -40}))
		assert.Equal(t, ecs.Vec2{}, v.CameraPos())
	})

	t.Run("threshold", func(t *testing.T) {
		_, v, _ := newViewportWorld(t)
		v.DoScroll = true

		require.NoError(t, v.OnDrag(gameview.DragEvent{DX: -1, DY: -1}))
		assert.Equal(t, ecs.Vec2{}, v.CameraPos(), "a drag of exactly 2 is ignored")

		require.NoError(t, v.OnDrag(gameview.DragEvent{DX: -2, DY: -1}))
		assert.Equal(t, ecs.Vec2{X: -2, Y: -1}, v.CameraPos())
	})

	t.Run("clamped", func(t *testing.T) {
		_, v, _ := newViewportWorld(t)
		v.DoScroll = true
		require.NoError(t, v.SetCameraPos(ecs.Vec2{X: -20, Y: -20}))

		require.NoError(t, v.OnDrag(gameview.DragEvent{DX: 50, DY: -10}))
		assert.Equal(t, ecs.Vec2{X: 0, Y: -30}, v.CameraPos())
	})

	t.Run("unlocked", func(t *testing.T) {
		_, v, _ := newViewportWorld(t)
		v.DoScroll = true
		v.ScrollLocked = false

		require.NoError(t, v.OnDrag(gameview.DragEvent{DX: 50, DY: 10}))
		assert.Equal(t, ecs.Vec2{X: 50, Y: 10}, v.CameraPos())
	})
}

func TestScrollTo(t *testing.T) {
	w, v, _ := newViewportWorld(t)
	v.ScrollTo(ecs.Vec2{X: -300, Y: -200}, 1, nil)
	assert.True(t, v.Scrolling())

	require.NoError(t, w.sched.Once(0.5))
	assert.InDelta(t, -150, v.CameraPos().X, 1e-3)
	assert.InDelta(t, -100, v.CameraPos().Y, 1e-3)

	require.NoError(t, w.sched.Once(0.5))
	assert.InDelta(t, -300, v.CameraPos().X, 1e-3)
	assert.InDelta(t, -200, v.CameraPos().Y, 1e-3)
	assert.False(t, v.Scrolling())
}

func TestScrollToIsClamped(t *testing.T) {
	w, v, _ := newViewportWorld(t)
	v.ScrollTo(ecs.Vec2{X: 200, Y: -5000}, 1, nil)

	require.NoError(t, w.sched.Once(1))
	assert.Equal(t, ecs.Vec2{X: 0, Y: -900}, v.CameraPos())
	assert.False(t, v.Scrolling())
}

func TestFocusCancelsScroll(t *testing.T) {
	w, v, _ := newViewportWorld(t)
	v.ScrollTo(ecs.Vec2{X: -300}, 1, nil)
	v.SetEntityToFocus(w.spawn(t, ecs.Vec2{X: 400, Y: 300}))
	assert.False(t, v.Scrolling())

	require.NoError(t, w.sched.Once(0.5))
	assert.Equal(t, ecs.Vec2{}, v.CameraPos())
}

func TestRenderFrameIgnored(t *testing.T) {
	w, v, world := newViewportWorld(t)
	v.SetEntityToFocus(w.spawn(t, ecs.Vec2{X: 1000, Y: 700}))

	require.NoError(t, v.Update(ecs.NewRenderFrame(world)))
	assert.Equal(t, ecs.Vec2{}, v.CameraPos())
}
