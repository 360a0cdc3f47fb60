package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tileview/ecs"
	"github.com/plus3/tileview/ecs/gameview"
)

// CameraWindow shows a viewport's camera and lets its scroll flags be toggled.
type CameraWindow struct {
	Viewport *gameview.ViewportSystem
	// Err holds the last error from a camera edit made in the window.
	Err error
}

func (cw *CameraWindow) Render() {
	v := cw.Viewport
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 240), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(380, 240), imgui.CondOnce)
	if !imgui.BeginV(fmt.Sprintf("Camera: %s", v.Id()), nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	for _, line := range cameraLines(v) {
		imgui.Text(fmt.Sprintf("%s: %s", line.Label, line.Value))
	}
	imgui.Separator()

	imgui.Checkbox("Lock scroll", &v.ScrollLocked)
	imgui.Checkbox("Drag to scroll", &v.DoScroll)
	imgui.Checkbox("Force camera update", &v.ForceCameraUpdate)

	cam := v.CameraPos()
	x, y := float32(cam.X), float32(cam.Y)
	imgui.SetNextItemWidth(150)
	changedX := imgui.InputFloat("Camera X", &x)
	imgui.SetNextItemWidth(150)
	changedY := imgui.InputFloat("Camera Y", &y)
	if changedX || changedY {
		cw.Err = v.SetCameraPos(ecs.Vec2{X: float64(x), Y: float64(y)})
	}

	if v.FocusEntity() && imgui.Button("Stop following") {
		v.ClearFocus()
	}
	if cw.Err != nil {
		imgui.TextColored(imgui.NewVec4(1, 0.3, 0.3, 1), cw.Err.Error())
	}

	imgui.End()
}
