// Package debugui provides Dear ImGui inspector windows for a running world:
// registered systems, viewport camera state and scheduler timings.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tileview/ecs"
)

const DefaultId ecs.SystemId = "debugui"

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state.
// Use this to decide whether pointer drags belong to the game or to ImGui.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render function of every ImguiItem it tracks to
// the end of the frame and records ImGui's input capture state.
type ImguiSystem struct {
	ecs.BaseSystem[ImguiItem]
	InputState ImguiInputState
}

func NewImguiSystem() *ImguiSystem {
	return &ImguiSystem{
		BaseSystem: ecs.NewBaseSystem[ImguiItem](DefaultId, ecs.CanUpdate),
	}
}

// Update updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Update(frame *ecs.UpdateFrame) error {
	if frame.RenderOnly {
		return nil
	}
	i.InputState.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	i.InputState.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for _, id := range i.EntityIds() {
		item, err := i.Component(id)
		if err != nil {
			return err
		}
		render := item.Render
		frame.Commands.Defer(func() error {
			render()
			return nil
		})
	}
	return nil
}
