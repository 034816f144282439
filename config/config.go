// Package config provides configuration loading and access for the visualizer.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all visualizer configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Field       FieldConfig       `yaml:"field"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Interaction InteractionConfig `yaml:"interaction"`
	Input       InputConfig       `yaml:"input"`
	Render      RenderConfig      `yaml:"render"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// FieldConfig holds particle field layout parameters.
// The domain defaults to the screen size.
type FieldConfig struct {
	Width        int     `yaml:"width"`          // Domain width (0 = screen width)
	Height       int     `yaml:"height"`         // Domain height (0 = screen height)
	Spacing      float64 `yaml:"spacing"`        // Grid spacing of the initial layout
	MaxSpeedHint float64 `yaml:"max_speed_hint"` // Render normalisation default
}

// PhysicsConfig holds integration parameters.
type PhysicsConfig struct {
	DT      float64 `yaml:"dt"`
	Damping float64 `yaml:"damping"` // Velocity multiplier per step (0 < damping <= 1)
	Gravity float64 `yaml:"gravity"` // Vertical acceleration, negative is down
}

// InteractionConfig holds the opt-in pairwise repulsion parameters.
type InteractionConfig struct {
	Enabled bool    `yaml:"enabled"`
	Radius  float64 `yaml:"radius"`
	Scale   float64 `yaml:"scale"`
}

// InputConfig holds pointer perturbation parameters.
type InputConfig struct {
	Radius          float64 `yaml:"radius"`
	AttractStrength float64 `yaml:"attract_strength"` // Primary button
	RepelStrength   float64 `yaml:"repel_strength"`   // Secondary button
}

// RenderConfig holds render pipeline parameters.
type RenderConfig struct {
	ParticleSize float64    `yaml:"particle_size"` // Point sprite size in pixels
	Alpha        float64    `yaml:"alpha"`         // Sprite translucency
	BlurPasses   int        `yaml:"blur_passes"`
	SpeedEpsilon float64    `yaml:"speed_epsilon"` // Floor for max-speed normalisation
	SlowColor    [3]float64 `yaml:"slow_color"`
	FastColor    [3]float64 `yaml:"fast_color"`
	ClearColor   [3]float64 `yaml:"clear_color"`
}

// TelemetryConfig holds stats and perf logging parameters.
type TelemetryConfig struct {
	StatsInterval int `yaml:"stats_interval"` // Frames between field stats samples
	PerfWindow    int `yaml:"perf_window"`    // Frames in the rolling perf window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // Physics.DT as float32
	FieldW    int     // Effective field width
	FieldH    int     // Effective field height
	ScreenW32 float32
	ScreenH32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values that would make construction fail later with a
// less helpful message.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Field.Spacing <= 0 {
		return fmt.Errorf("field spacing must be positive, got %v", c.Field.Spacing)
	}
	if c.Render.BlurPasses < 0 {
		return fmt.Errorf("blur passes must not be negative, got %d", c.Render.BlurPasses)
	}
	if c.Interaction.Enabled && c.Interaction.Radius <= 0 {
		return fmt.Errorf("interaction radius must be positive when enabled, got %v", c.Interaction.Radius)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// Field dimensions default to screen size if not specified
	c.Derived.FieldW = c.Field.Width
	if c.Derived.FieldW == 0 {
		c.Derived.FieldW = c.Screen.Width
	}
	c.Derived.FieldH = c.Field.Height
	if c.Derived.FieldH == 0 {
		c.Derived.FieldH = c.Screen.Height
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
