package engineconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file path, relative to the process working directory.
const DefaultPath = "config/toybox.yaml"

// Config holds every tunable of the front-ends. Engine behaviour that must not change
// (restitution, push-out slop) is not configurable.
type Config struct {
	Window  Window  `yaml:"window"`
	Sandbox Sandbox `yaml:"sandbox"`
	Orbit   Orbit   `yaml:"orbit"`
	Life    Life    `yaml:"life"`
	Storage Storage `yaml:"storage"`
	Log     Log     `yaml:"log"`
	Metrics Metrics `yaml:"metrics"`
}

type Window struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	FPS     int    `yaml:"fps"`
	Title   string `yaml:"title"`
	ShowFPS bool   `yaml:"show_fps"`
}

type Sandbox struct {
	Width       float64  `yaml:"width"`
	Height      float64  `yaml:"height"`
	MaxStep     float64  `yaml:"max_step"`
	MinRadius   float64  `yaml:"min_radius"`
	MinShape    float64  `yaml:"min_shape"`
	BodyRadius  float64  `yaml:"body_radius"`
	LaunchScale float64  `yaml:"launch_scale"`
	Palette     []string `yaml:"palette"`
}

type Orbit struct {
	TimeScale    float64 `yaml:"time_scale"`
	ShowPaths    bool    `yaml:"show_paths"`
	PathSegments int     `yaml:"path_segments"`
}

type Life struct {
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
	Density  float64       `yaml:"density"`
	Interval time.Duration `yaml:"interval"`
	Wrap     bool          `yaml:"wrap"`
}

type Storage struct {
	// Dir is where snapshots are written. Empty keeps them in memory for the run.
	Dir string `yaml:"dir"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Metrics struct {
	// Addr is the listen address for /metrics. Empty disables the endpoint.
	Addr string `yaml:"addr"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Window: Window{Width: 960, Height: 640, FPS: 60, Title: "toybox"},
		Sandbox: Sandbox{
			Width:       960,
			Height:      640,
			MaxStep:     1.0 / 30,
			MinRadius:   2,
			MinShape:    5,
			BodyRadius:  10,
			LaunchScale: 3,
			Palette:     []string{"#e63946", "#f1a208", "#2a9d8f", "#457b9d", "#8338ec"},
		},
		Orbit:   Orbit{TimeScale: 1, ShowPaths: true, PathSegments: 128},
		Life:    Life{Width: 80, Height: 40, Density: 0.25, Interval: 100 * time.Millisecond, Wrap: true},
		Storage: Storage{Dir: "saves"},
		Log:     Log{Level: "info", File: "logs/toybox.log"},
	}
}

// Load reads the YAML file at path over Default(), so omitted keys keep their defaults.
// A missing file is not an error; a file that does not parse is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("engineconfig: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("engineconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Window.FPS < 0:
		return fmt.Errorf("window.fps must not be negative")
	case c.Sandbox.Width <= 0 || c.Sandbox.Height <= 0:
		return fmt.Errorf("sandbox size must be positive, got %gx%g", c.Sandbox.Width, c.Sandbox.Height)
	case c.Sandbox.MaxStep <= 0:
		return fmt.Errorf("sandbox.max_step must be positive")
	case c.Sandbox.MinRadius <= 0 || c.Sandbox.MinShape <= 0:
		return fmt.Errorf("sandbox minimum sizes must be positive")
	case c.Sandbox.BodyRadius < c.Sandbox.MinRadius:
		return fmt.Errorf("sandbox.body_radius %g is below min_radius %g", c.Sandbox.BodyRadius, c.Sandbox.MinRadius)
	case c.Sandbox.LaunchScale < 0:
		return fmt.Errorf("sandbox.launch_scale must not be negative")
	case c.Orbit.TimeScale < 0:
		return fmt.Errorf("orbit.time_scale must not be negative")
	case c.Life.Width <= 0 || c.Life.Height <= 0:
		return fmt.Errorf("life grid size must be positive")
	case c.Life.Density < 0 || c.Life.Density > 1:
		return fmt.Errorf("life.density must be within [0,1]")
	case c.Life.Interval <= 0:
		return fmt.Errorf("life.interval must be positive")
	}
	return nil
}
