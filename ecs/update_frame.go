package ecs

// UpdateFrame is handed to every system on each update.
type UpdateFrame struct {
	DeltaTime float64
	// RenderOnly frames recompute visuals and must not advance simulation time.
	RenderOnly bool
	Commands   *Commands
	World      *World
}

func newUpdateFrame(dt float64, world *World) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		World:     world,
	}
}

// NewRenderFrame returns a render-only frame for the world.
func NewRenderFrame(world *World) *UpdateFrame {
	frame := newUpdateFrame(0, world)
	frame.RenderOnly = true
	return frame
}
