package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window   WindowConfig   `toml:"window"`
	Map      MapConfig      `toml:"map"`
	Viewport ViewportConfig `toml:"viewport"`
	Scene    SceneConfig    `toml:"scene"`
	Logging  LoggingConfig  `toml:"logging"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	TPS    int    `toml:"tps"`
}

type MapConfig struct {
	Cols       int     `toml:"cols"`
	Rows       int     `toml:"rows"`
	TileWidth  float64 `toml:"tile_width"`
	TileHeight float64 `toml:"tile_height"`
}

type ViewportConfig struct {
	LockScroll        bool    `toml:"lock_scroll"`
	DoScroll          bool    `toml:"do_scroll"`
	ForceCameraUpdate bool    `toml:"force_camera_update"`
	FollowFirst       bool    `toml:"follow_first"` // focus the first spawned entity at startup
	PanSeconds        float64 `toml:"pan_seconds"`
}

type SceneConfig struct {
	Entities int     `toml:"entities"`
	MaxSpeed float64 `toml:"max_speed"`
	Seed     int64   `toml:"seed"` // 0 picks a random seed
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads the TOML file at path over the defaults. An empty path returns
// the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Map.Cols < 0 || c.Map.Rows < 0 || c.Map.TileWidth < 0 || c.Map.TileHeight < 0 {
		return fmt.Errorf("map dimensions must not be negative")
	}
	if c.Scene.Entities < 0 {
		return fmt.Errorf("scene entity count must not be negative")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "tileview",
			Width:  800,
			Height: 600,
			TPS:    60,
		},
		Map: MapConfig{
			Cols:       50,
			Rows:       50,
			TileWidth:  30,
			TileHeight: 30,
		},
		Viewport: ViewportConfig{
			LockScroll:        true,
			DoScroll:          true,
			ForceCameraUpdate: true,
			FollowFirst:       true,
			PanSeconds:        0.75,
		},
		Scene: SceneConfig{
			Entities: 40,
			MaxSpeed: 120,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
