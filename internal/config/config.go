// Package config holds the tunable parameters of the composition and loads
// them from YAML, with named presets for common setups.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kyra-dean/rosette/internal/layout"
)

const (
	DefaultWidth       = 1024
	DefaultHeight      = 640
	DefaultWheels      = 25
	DefaultColorGroups = 4
)

type Config struct {
	Width       int   `yaml:"width"`
	Height      int   `yaml:"height"`
	Wheels      int   `yaml:"wheels"`
	ColorGroups int   `yaml:"color_groups"`
	Seed        int64 `yaml:"seed"`

	// Absolute radius bounds in pixels; zero leaves the width-derived
	// bounds in charge.
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`

	Audio AudioConfig `yaml:"audio"`
}

type AudioConfig struct {
	// Source selects the spectrum provider: "file", "mic", or "synth".
	Source string `yaml:"source"`
	// Path to the audio file when Source is "file".
	Path string `yaml:"path"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Wheels:      DefaultWheels,
		ColorGroups: DefaultColorGroups,
		Audio:       AudioConfig{Source: "synth"},
	}
}

// Load reads a YAML config from path, layered over DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the generator cannot work with.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: canvas %dx%d is not positive", c.Width, c.Height)
	}
	if c.Wheels < 0 {
		return fmt.Errorf("config: wheel count %d is negative", c.Wheels)
	}
	if c.ColorGroups < 1 {
		return fmt.Errorf("config: need at least one color group, got %d", c.ColorGroups)
	}
	if c.MinRadius < 0 || c.MaxRadius < 0 {
		return fmt.Errorf("config: radius bounds must be non-negative")
	}
	if c.MinRadius > 0 && c.MaxRadius > 0 && c.MinRadius > c.MaxRadius {
		return fmt.Errorf("config: min radius %.1f exceeds max radius %.1f", c.MinRadius, c.MaxRadius)
	}
	switch c.Audio.Source {
	case "", "synth", "mic", "file":
	default:
		return fmt.Errorf("config: unknown audio source %q", c.Audio.Source)
	}
	return nil
}

// LayoutOptions translates the config into generator options.
func (c *Config) LayoutOptions() layout.Options {
	opts := layout.DefaultOptions()
	opts.TargetCount = c.Wheels
	opts.ColorGroups = c.ColorGroups
	opts.MinRadius = c.MinRadius
	opts.MaxRadius = c.MaxRadius
	return opts
}
