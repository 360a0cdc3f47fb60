package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tileview/ecs"
	"github.com/plus3/tileview/ecs/debugui"
	debugui_ebiten "github.com/plus3/tileview/ecs/debugui/ebiten"
	"github.com/plus3/tileview/ecs/gamemap"
	"github.com/plus3/tileview/ecs/gameview"
	"github.com/plus3/tileview/ecs/motion"
	"github.com/plus3/tileview/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var pastelColors = [][3]uint8{
	{255, 179, 186},
	{179, 229, 252},
	{255, 223, 186},
	{186, 255, 201},
	{255, 200, 221},
	{186, 225, 255},
	{255, 255, 186},
	{217, 186, 255},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a TOML config file.")
	snapshotPath := flag.String("snapshot", "snapshot.yaml", "Where [S] writes the entity snapshot.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	backend := debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Window.TPS)

	game, err := newGame(cfg, log)
	if err != nil {
		return err
	}
	game.backend = backend
	game.snapshotPath = *snapshotPath

	log.Info("viewer started",
		zap.Int("entities", cfg.Scene.Entities),
		zap.Float64("map_width", game.gameMap.MapSize().X),
		zap.Float64("map_height", game.gameMap.MapSize().Y))

	return ebiten.RunGame(game)
}

func newGame(cfg *config.Config, log *zap.Logger) (*Game, error) {
	world := ecs.NewWorld(ecs.WithLogger(log))
	scheduler := ecs.NewScheduler(world)

	gameMap := gamemap.NewTileMap(cfg.Map.Cols, cfg.Map.Rows, cfg.Map.TileWidth, cfg.Map.TileHeight)
	bodies := motion.New(motion.DefaultId)
	bodies.Bounds = gameMap.Bounds()

	viewport := gameview.New(
		gameview.WithFocusSource(bodies.Id()),
		gameview.WithRect(ecs.Vec2{}, ecs.Vec2{X: float64(cfg.Window.Width), Y: float64(cfg.Window.Height)}),
	)
	viewport.ScrollLocked = cfg.Viewport.LockScroll
	viewport.DoScroll = cfg.Viewport.DoScroll
	viewport.ForceCameraUpdate = cfg.Viewport.ForceCameraUpdate

	sprites := NewSpriteSystem(bodies.Id(), viewport.Id())
	imguiSystem := debugui.NewImguiSystem()

	for _, sys := range []ecs.System{gameMap, bodies, viewport, sprites, imguiSystem} {
		if err := scheduler.Register(sys); err != nil {
			return nil, err
		}
	}
	viewport.SetPaused(false)

	if err := spawnScene(world, cfg.Scene, gameMap, bodies, sprites); err != nil {
		return nil, err
	}
	if ids := sprites.EntityIds(); cfg.Viewport.FollowFirst && len(ids) > 0 {
		viewport.SetEntityToFocus(ids[0])
	}

	windows := []func(){
		(&debugui.SystemsWindow{World: world, Scheduler: scheduler}).Render,
		(&debugui.CameraWindow{Viewport: viewport}).Render,
		debugui.NewPerformanceWindow(scheduler, 120).Render,
	}
	for _, render := range windows {
		if err := imguiSystem.CreateComponent(world.CreateEntity(), debugui.ImguiItem{Render: render}); err != nil {
			return nil, err
		}
	}

	tps := cfg.Window.TPS
	if tps <= 0 {
		tps = 60
	}
	return &Game{
		world:      world,
		scheduler:  scheduler,
		gameMap:    gameMap,
		viewport:   viewport,
		sprites:    sprites,
		imgui:      imguiSystem,
		log:        log,
		tickDelta:  1.0 / float64(tps),
		panSeconds: float32(cfg.Viewport.PanSeconds),
		focusIndex: 0,
	}, nil
}

func spawnScene(world *ecs.World, cfg config.SceneConfig, gameMap *gamemap.MapSystem, bodies *motion.MotionSystem, sprites *SpriteSystem) error {
	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed)>>1|1))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	size := gameMap.MapSize()
	tile := gameMap.TileSize()
	for i := 0; i < cfg.Entities; i++ {
		id := world.CreateEntity()
		pos := ecs.Vec2{X: rng.Float64() * size.X, Y: rng.Float64() * size.Y}
		vel := ecs.Vec2{X: (rng.Float64()*2 - 1) * cfg.MaxSpeed, Y: (rng.Float64()*2 - 1) * cfg.MaxSpeed}

		if err := bodies.CreateComponent(id, motion.Body{Position: pos, Velocity: vel}); err != nil {
			return err
		}
		if err := sprites.CreateComponent(id, Sprite{
			Color:  pastelColors[i%len(pastelColors)],
			Radius: 6 + rng.Float64()*6,
		}); err != nil {
			return err
		}
		if tile.X > 0 && tile.Y > 0 {
			cell := gamemap.Cell{Col: int(pos.X / tile.X), Row: int(pos.Y / tile.Y)}
			if err := gameMap.CreateComponent(id, cell); err != nil {
				return err
			}
		}
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
