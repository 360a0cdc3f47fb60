package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/tileview/ecs"
	"github.com/plus3/tileview/ecs/gamemap"
	"github.com/plus3/tileview/ecs/gameview"
	"github.com/plus3/tileview/ecs/motion"
	"go.uber.org/zap"
)

// layerSystem stands in for a renderer: it walks its entities on every
// update and counts the render-only frames it receives.
type layerSystem struct {
	ecs.BaseSystem[ecs.Vec2]
	renderFrames int64
	sum          ecs.Vec2
}

func (l *layerSystem) Update(frame *ecs.UpdateFrame) error {
	if frame.RenderOnly {
		l.renderFrames++
	}
	for _, id := range l.EntityIds() {
		offset, err := l.Component(id)
		if err != nil {
			return err
		}
		l.sum = l.sum.Add(*offset)
	}
	return nil
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	layerCount := flag.Int("layers", 8, "The number of renderable layer systems.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting world stress test")

	// 1. Setup world, systems and scheduler
	world := ecs.NewWorld()
	scheduler := ecs.NewScheduler(world)

	gameMap := gamemap.New(gamemap.WithSize(ecs.Vec2{X: 20000, Y: 20000}))
	bodies := motion.New(motion.DefaultId)
	bodies.Bounds = gameMap.Bounds()
	viewport := gameview.New(gameview.WithRect(ecs.Vec2{}, ecs.Vec2{X: 1280, Y: 720}))
	viewport.ForceCameraUpdate = true

	layers := make([]*layerSystem, *layerCount)
	systems := []ecs.System{gameMap, bodies, viewport}
	for i := range layers {
		layers[i] = &layerSystem{
			BaseSystem: ecs.NewBaseSystem[ecs.Vec2](ecs.SystemId(fmt.Sprintf("layer-%d", i)), ecs.CanRender),
		}
		systems = append(systems, layers[i])
	}
	for _, sys := range systems {
		if err := scheduler.Register(sys); err != nil {
			log.Fatal("register system", zap.Error(err))
		}
	}
	viewport.SetPaused(false)

	// 2. Populate the world with moving entities
	log.Info("populating world", zap.Int("entities", *entityCount))
	size := gameMap.MapSize()
	for i := 0; i < *entityCount; i++ {
		id := world.CreateEntity()
		body := motion.Body{
			Position: ecs.Vec2{X: rand.Float64() * size.X, Y: rand.Float64() * size.Y},
			Velocity: ecs.Vec2{X: rand.Float64()*400 - 200, Y: rand.Float64()*400 - 200},
		}
		if err := bodies.CreateComponent(id, body); err != nil {
			log.Fatal("create body", zap.Error(err))
		}
		if len(layers) > 0 {
			layer := layers[i%len(layers)]
			if err := layer.CreateComponent(id, ecs.Vec2{X: 1, Y: 1}); err != nil {
				log.Fatal("create layer component", zap.Error(err))
			}
		}
	}
	if ids := bodies.EntityIds(); len(ids) > 0 {
		viewport.SetEntityToFocus(ids[0])
	}
	log.Info("population complete")

	// 3. Run the simulation loop
	report := &Report{
		Duration:    *duration,
		Entities:    *entityCount,
		Systems:     len(systems),
		Layers:      *layerCount,
		WithGCPause: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemBefore)

	log.Info("running simulation", zap.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			if err := scheduler.Once(deltaTime.Seconds()); err != nil {
				log.Fatal("frame failed", zap.Error(err))
			}
			updateDuration := time.Since(updateStart)

			report.FrameTimes.Samples = append(report.FrameTimes.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.Elapsed = time.Since(startTime)
	report.Frames = totalUpdates
	report.FrameTimes.Summarize()
	report.CameraFinal = viewport.CameraPos()
	for _, layer := range layers {
		report.RenderFrames += layer.renderFrames
	}
	report.SystemStats = scheduler.GetStats().Systems
	runtime.ReadMemStats(&report.MemAfter)

	log.Info("simulation finished")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}
