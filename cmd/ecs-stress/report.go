package main

import (
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/tileview/ecs"
)

// Report summarizes one stress run over a world with a following camera.
type Report struct {
	Duration time.Duration
	Entities int
	Systems  int
	Layers   int

	Frames      int64
	Elapsed     time.Duration
	FrameTimes  FrameTimes
	WithGCPause bool
	MemBefore   runtime.MemStats
	MemAfter    runtime.MemStats

	// RenderFrames counts render-only frames delivered to all layers.
	RenderFrames int64
	CameraFinal  ecs.Vec2
	SystemStats  []ecs.SystemStats
}

// FrameTimes holds the scheduler frame durations of a run.
type FrameTimes struct {
	Samples []time.Duration

	Min, Median, P99, Max, Avg time.Duration
}

// Summarize fills in the order statistics. Samples are sorted in place.
func (f *FrameTimes) Summarize() {
	n := len(f.Samples)
	if n == 0 {
		return
	}
	slices.Sort(f.Samples)

	var total time.Duration
	for _, d := range f.Samples {
		total += d
	}
	f.Min = f.Samples[0]
	f.Max = f.Samples[n-1]
	f.Median = f.Samples[n/2]
	f.P99 = f.Samples[min(n-1, n*99/100)]
	f.Avg = total / time.Duration(n)
}

// CascadesPerFrame is the average number of render-only frames each layer
// received per scheduler frame.
func (r *Report) CascadesPerFrame() float64 {
	if r.Frames == 0 || r.Layers == 0 {
		return 0
	}
	return float64(r.RenderFrames) / float64(r.Layers) / float64(r.Frames)
}

const reportTemplate = `
# Viewport Stress Run

Ran for {{.Duration}} with {{.Entities}} moving entities across {{.Systems}} systems
({{.Layers}} renderable layers), camera following the first entity.

## Frames
| Frames | Elapsed | Avg | Min | Median | P99 | Max |
|---|---|---|---|---|---|---|
| {{.Frames}} | {{.Elapsed}} | {{.FrameTimes.Avg}} | {{.FrameTimes.Min}} | {{.FrameTimes.Median}} | {{.FrameTimes.P99}} | {{.FrameTimes.Max}} |

## Camera
- Render-only frames delivered: {{.RenderFrames}} ({{printf "%.2f" .CascadesPerFrame}} per layer per frame)
- Final camera offset: ({{printf "%.1f" .CameraFinal.X}}, {{printf "%.1f" .CameraFinal.Y}})

## Systems
| System | Runs | Avg | Max |
|---|---|---|---|
{{range .SystemStats}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}
## Memory
| | Before | After | Delta |
|---|---|---|---|
| Heap bytes | {{.MemBefore.HeapAlloc}} | {{.MemAfter.HeapAlloc}} | {{delta .MemAfter.HeapAlloc .MemBefore.HeapAlloc}} |
| Allocated bytes | {{.MemBefore.TotalAlloc}} | {{.MemAfter.TotalAlloc}} | {{delta .MemAfter.TotalAlloc .MemBefore.TotalAlloc}} |
| GC cycles | {{.MemBefore.NumGC}} | {{.MemAfter.NumGC}} | {{gcs .MemAfter.NumGC .MemBefore.NumGC}} |
{{if .WithGCPause}}
Total GC pause: {{pause .MemAfter.PauseTotalNs .MemBefore.PauseTotalNs}}
{{end}}`

var reportFuncs = template.FuncMap{
	"delta": func(after, before uint64) int64 {
		return int64(after) - int64(before)
	},
	"gcs": func(after, before uint32) uint32 {
		return after - before
	},
	"pause": func(after, before uint64) time.Duration {
		return time.Duration(after - before)
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
