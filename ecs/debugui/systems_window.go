package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tileview/ecs"
)

// pausable is implemented by systems embedding ecs.BaseSystem.
type pausable interface {
	SetPaused(bool)
}

// SystemsWindow lists every registered system with its scheduling state.
type SystemsWindow struct {
	World     *ecs.World
	Scheduler *ecs.Scheduler
}

func (sw *SystemsWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(520, 220), imgui.CondOnce)
	if !imgui.BeginV("Systems", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := sw.World.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d  Systems: %d", stats.EntityCount, stats.SystemCount))
	if stats.HasMap {
		imgui.Text(fmt.Sprintf("Current map: %s", stats.CurrentMap))
	} else {
		imgui.TextColored(imgui.NewVec4(1, 0.6, 0.2, 1), "No current map")
	}
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemsTable", 6, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("State")
		imgui.TableSetupColumn("Caps")
		imgui.TableSetupColumn("Paused")
		imgui.TableSetupColumn("Entities")
		imgui.TableSetupColumn("Avg Update")
		imgui.TableHeadersRow()

		for _, row := range systemRows(sw.World, sw.Scheduler) {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(string(row.Id))
			imgui.TableNextColumn()
			imgui.Text(row.Lifecycle)
			imgui.TableNextColumn()
			imgui.Text(row.Caps)
			imgui.TableNextColumn()
			paused := row.Paused
			if imgui.Checkbox(fmt.Sprintf("##paused-%s", row.Id), &paused) {
				sw.setPaused(row.Id, paused)
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Entities))
			imgui.TableNextColumn()
			imgui.Text(row.AvgTime)
		}
		imgui.EndTable()
	}

	imgui.End()
}

func (sw *SystemsWindow) setPaused(id ecs.SystemId, paused bool) {
	sys, err := sw.World.System(id)
	if err != nil {
		return
	}
	if p, ok := sys.(pausable); ok {
		p.SetPaused(paused)
	}
}
