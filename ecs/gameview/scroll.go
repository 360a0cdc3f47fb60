package gameview

import (
	"github.com/plus3/tileview/ecs"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim is an in-flight ScrollTo pan. Each axis finishes on its own.
type scrollAnim struct {
	x, y         *gween.Tween
	xDone, yDone bool
}

// ScrollTo pans the camera to target over duration seconds. Each step is
// clamped like a drag. Following an entity cancels the pan.
func (v *ViewportSystem) ScrollTo(target ecs.Vec2, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.Linear
	}
	v.scroll = &scrollAnim{
		x: gween.New(float32(v.cameraPos.X), float32(target.X), duration, easeFn),
		y: gween.New(float32(v.cameraPos.Y), float32(target.Y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo pan is in progress.
func (v *ViewportSystem) Scrolling() bool {
	return v.scroll != nil
}

func (v *ViewportSystem) advanceScroll(dt float32) error {
	if v.scroll == nil {
		return nil
	}
	next := v.cameraPos
	if !v.scroll.xDone {
		val, done := v.scroll.x.Update(dt)
		next.X = float64(val)
		v.scroll.xDone = done
	}
	if !v.scroll.yDone {
		val, done := v.scroll.y.Update(dt)
		next.Y = float64(val)
		v.scroll.yDone = done
	}
	if v.scroll.xDone && v.scroll.yDone {
		v.scroll = nil
	}
	return v.moveCamera(v.clampIfMapped(next.Sub(v.cameraPos)))
}
