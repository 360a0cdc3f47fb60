package gameview

import "github.com/plus3/tileview/ecs"

// Clamp restricts a proposed camera delta so the map keeps covering the
// viewport. camera is the current camera offset, mapSize the size of the
// current map, pos and size the viewport rectangle in screen space.
//
// Each axis is clamped on its own. When the map is smaller than the viewport
// both edges overshoot and the leading edge wins.
func Clamp(delta, camera, mapSize, pos, size ecs.Vec2) ecs.Vec2 {
	return ecs.Vec2{
		X: clampAxis(delta.X, camera.X, mapSize.X, pos.X, size.X),
		Y: clampAxis(delta.Y, camera.Y, mapSize.Y, pos.Y, size.Y),
	}
}

func clampAxis(d, camera, mapSize, pos, size float64) float64 {
	if camera+d > pos {
		return pos - camera
	}
	if camera+mapSize+d <= pos+size {
		return pos + size - camera - mapSize
	}
	return d
}

// LockScroll clamps delta against the world's current map.
func (v *ViewportSystem) LockScroll(delta ecs.Vec2) (ecs.Vec2, error) {
	m, err := v.currentMap()
	if err != nil {
		return ecs.Vec2{}, err
	}
	return Clamp(delta, v.cameraPos, m.MapSize(), v.pos, v.size), nil
}

// clampIfMapped clamps delta when scroll locking is on and a map is current,
// and passes it through unchanged otherwise.
func (v *ViewportSystem) clampIfMapped(delta ecs.Vec2) ecs.Vec2 {
	if !v.ScrollLocked {
		return delta
	}
	m, err := v.currentMap()
	if err != nil {
		return delta
	}
	return Clamp(delta, v.cameraPos, m.MapSize(), v.pos, v.size)
}

func (v *ViewportSystem) currentMap() (ecs.MapProvider, error) {
	world := v.World()
	if world == nil {
		return nil, ecs.ErrDetached
	}
	m, ok := world.CurrentMap().Get()
	if !ok {
		return nil, ecs.ErrNoCurrentMap
	}
	return m, nil
}
