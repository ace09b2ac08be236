// Package config loads optional YAML tuning overrides for the simulation.
// A missing file is not an error: all values fall back to the compiled-in
// defaults from the constants package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/benjaminbreen/PlagueSimulator-sub002/constants"
)

// Config carries host-adjustable tuning. The zero value is unusable;
// always start from Default.
type Config struct {
	World WorldConfig `yaml:"world"`
	Audio AudioConfig `yaml:"audio"`
	Debug DebugConfig `yaml:"debug"`
}

type WorldConfig struct {
	Seed     uint64  `yaml:"seed"`
	MapX     int     `yaml:"map_x"`
	MapY     int     `yaml:"map_y"`
	RatCount int     `yaml:"rat_count"`
	Gravity  float64 `yaml:"gravity"`
}

type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"`
}

type DebugConfig struct {
	LogLevel  string `yaml:"log_level"`
	ShowGrid  bool   `yaml:"show_grid"`
	ShowStats bool   `yaml:"show_stats"`
}

// Default returns the compiled-in tuning
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Seed:     1349, // the year the plague reached town
			RatCount: constants.DefaultRatCount,
			Gravity:  constants.Gravity,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.7,
		},
		Debug: DebugConfig{
			LogLevel: "info",
		},
	}
}

// Load reads path over the defaults. A missing file returns defaults with
// no error; a malformed file returns the defaults and the parse error so
// the host can log the fallback.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}

	cfg.sanitize()
	return cfg, nil
}

// sanitize clamps values that would destabilize the simulation
func (c *Config) sanitize() {
	if c.World.Gravity <= 0 {
		c.World.Gravity = constants.Gravity
	}
	if c.World.RatCount < 0 {
		c.World.RatCount = 0
	}
	if c.Audio.MasterVolume < 0 {
		c.Audio.MasterVolume = 0
	}
	if c.Audio.MasterVolume > 1 {
		c.Audio.MasterVolume = 1
	}
}
