package debugui

import (
	"fmt"
	"time"

	"github.com/plus3/tileview/ecs"
	"github.com/plus3/tileview/ecs/gameview"
)

type systemRow struct {
	Id        ecs.SystemId
	Lifecycle string
	Caps      string
	Paused    bool
	Entities  int
	AvgTime   string
}

// systemRows flattens world and scheduler stats into table rows.
func systemRows(world *ecs.World, sched *ecs.Scheduler) []systemRow {
	avg := make(map[string]time.Duration)
	if sched != nil {
		for _, s := range sched.GetStats().Systems {
			avg[s.Name] = s.AvgDuration
		}
	}

	stats := world.CollectStats()
	rows := make([]systemRow, 0, len(stats.Systems))
	for _, info := range stats.Systems {
		row := systemRow{
			Id:        info.Id,
			Lifecycle: info.Lifecycle.String(),
			Caps:      info.Capabilities.String(),
			Paused:    info.Paused,
			Entities:  info.EntityCount,
			AvgTime:   "-",
		}
		if d, ok := avg[string(info.Id)]; ok {
			row.AvgTime = d.String()
		}
		rows = append(rows, row)
	}
	return rows
}

type cameraLine struct {
	Label string
	Value string
}

func cameraLines(v *gameview.ViewportSystem) []cameraLine {
	cam := v.CameraPos()
	visible := v.VisibleRect()
	focus := "none"
	if id, ok := v.EntityToFocus(); ok {
		focus = fmt.Sprintf("%d via %s", id, v.FocusPositionInfoFrom)
	}
	return []cameraLine{
		{"Camera", fmt.Sprintf("(%.1f, %.1f)", cam.X, cam.Y)},
		{"Viewport", fmt.Sprintf("pos (%.0f, %.0f) size (%.0f, %.0f)", v.Pos().X, v.Pos().Y, v.Size().X, v.Size().Y)},
		{"Visible", fmt.Sprintf("(%.1f, %.1f) - (%.1f, %.1f)", visible.Pos.X, visible.Pos.Y, visible.Pos.X+visible.Size.X, visible.Pos.Y+visible.Size.Y)},
		{"Focus", focus},
		{"Cascade", v.Cascade().String()},
	}
}
