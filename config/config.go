// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all particle field configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Particles ParticlesConfig `yaml:"particles"`
	Pointer   PointerConfig   `yaml:"pointer"`
	Links     LinksConfig     `yaml:"links"`
	Loop      LoopConfig      `yaml:"loop"`
	Viewport  ViewportConfig  `yaml:"viewport"`
	Terminal  TerminalConfig  `yaml:"terminal"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the window host.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Title      string `yaml:"title"`
	Resizable  bool   `yaml:"resizable"`
	Background string `yaml:"background"` // hex "#rrggbb"
}

// ParticlesConfig holds population generation parameters.
type ParticlesConfig struct {
	AreaPerParticle float64  `yaml:"area_per_particle"` // canvas px² per particle
	MaxCount        int      `yaml:"max_count"`
	MinSize         float64  `yaml:"min_size"`
	MaxSize         float64  `yaml:"max_size"`
	MaxSpeed        float64  `yaml:"max_speed"`  // per-axis |velocity| bound
	EdgeFactor      float64  `yaml:"edge_factor"` // spawn inset = size * this
	Palette         []string `yaml:"palette"`    // hex "#rrggbbaa"
}

// PointerConfig holds pointer repulsion parameters.
type PointerConfig struct {
	Radius       float64 `yaml:"radius"`
	Step         float64 `yaml:"step"`          // nudge per axis per tick
	MarginFactor float64 `yaml:"margin_factor"` // edge margin = size * this
}

// LinksConfig holds connection pass parameters.
type LinksConfig struct {
	Enabled       bool    `yaml:"enabled"`
	DistanceDiv   float64 `yaml:"distance_div"`   // threshold = (W/div)*(H/div)
	OpacityDiv    float64 `yaml:"opacity_div"`    // opacity = 1 - d²/this
	Width         float64 `yaml:"width"`
	Color         string  `yaml:"color"`          // hex "#rrggbb"
	BroadPhase    string  `yaml:"broad_phase"`    // "scan" or "grid"
	ClampOpacity  bool    `yaml:"clamp_opacity"`
}

// LoopConfig holds animation loop parameters.
type LoopConfig struct {
	ResizeDebounceMS int `yaml:"resize_debounce_ms"`
}

// ViewportConfig holds page layout parameters for the hero canvas.
type ViewportConfig struct {
	HeroFraction float64 `yaml:"hero_fraction"` // hero height as fraction of window height
	PageScreens  float64 `yaml:"page_screens"`  // page height in hero heights
	ScrollStep   float64 `yaml:"scroll_step"`   // px per wheel notch
}

// TerminalConfig holds terminal host parameters.
type TerminalConfig struct {
	PixelsPerDot float64 `yaml:"pixels_per_dot"` // canvas px per braille dot
	TargetFPS    int     `yaml:"target_fps"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ResizeDebounce  float64 // seconds
	StatsWindowTick int     // frames per stats window at target fps
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

// validate rejects values that would make the field undefined.
func (c *Config) validate() error {
	p := c.Particles
	if p.AreaPerParticle <= 0 {
		return fmt.Errorf("particles.area_per_particle must be positive, got %v", p.AreaPerParticle)
	}
	if p.MaxCount < 0 {
		return fmt.Errorf("particles.max_count must not be negative, got %d", p.MaxCount)
	}
	if p.MinSize <= 0 || p.MaxSize < p.MinSize {
		return fmt.Errorf("particles size range [%v, %v) is invalid", p.MinSize, p.MaxSize)
	}
	if len(p.Palette) == 0 {
		return fmt.Errorf("particles.palette must not be empty")
	}
	for _, hex := range p.Palette {
		if _, err := ParseHexColor(hex); err != nil {
			return fmt.Errorf("particles.palette: %w", err)
		}
	}
	if _, err := ParseHexColor(c.Links.Color); err != nil {
		return fmt.Errorf("links.color: %w", err)
	}
	if c.Links.DistanceDiv <= 0 || c.Links.OpacityDiv <= 0 {
		return fmt.Errorf("links.distance_div and links.opacity_div must be positive")
	}
	switch c.Links.BroadPhase {
	case "", "scan", "grid":
	default:
		return fmt.Errorf("links.broad_phase must be scan or grid, got %q", c.Links.BroadPhase)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ResizeDebounce = float64(c.Loop.ResizeDebounceMS) / 1000

	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.StatsWindowTick = int(c.Telemetry.StatsWindow * float64(fps))
	if c.Derived.StatsWindowTick < 1 {
		c.Derived.StatsWindowTick = 1
	}

	if c.Links.BroadPhase == "" {
		c.Links.BroadPhase = "scan"
	}
	if c.Viewport.HeroFraction <= 0 {
		c.Viewport.HeroFraction = 1
	}
	if c.Viewport.PageScreens < 1 {
		c.Viewport.PageScreens = 1
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
