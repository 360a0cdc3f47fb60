package gameview

import "github.com/plus3/tileview/ecs"

// CascadeState tracks the forced re-render of renderable systems that
// follows a camera move.
type CascadeState uint8

const (
	// CascadeIdle: the next camera move runs a render pass.
	CascadeIdle CascadeState = iota
	// CascadeCooldown: the next camera move only returns to CascadeIdle.
	CascadeCooldown
)

func (c CascadeState) String() string {
	switch c {
	case CascadeIdle:
		return "idle"
	case CascadeCooldown:
		return "cooldown"
	}
	return "unknown"
}

// onCameraMoved advances the cascade state machine. Every second camera move
// is absorbed by the cooldown state, so a burst of moves re-renders on
// alternating moves only.
func (v *ViewportSystem) onCameraMoved() error {
	if !v.ForceCameraUpdate {
		return nil
	}
	switch v.cascade {
	case CascadeIdle:
		v.cascade = CascadeCooldown
		v.Logger().Debug("camera updating")
		world := v.World()
		if world == nil {
			return ecs.ErrDetached
		}
		return world.RenderPass(v.Id())
	case CascadeCooldown:
		v.cascade = CascadeIdle
	}
	return nil
}

// Cascade returns the current cascade state.
func (v *ViewportSystem) Cascade() CascadeState {
	return v.cascade
}
