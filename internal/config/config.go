// Package config loads the runtime configuration consumed by the CLI.
//
// The engine itself is configured with functional options; this package
// maps a YAML file onto those options so operators can tune a run
// without recompiling.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML-backed runtime configuration.
type Config struct {
	// NoiseStdDev is the standard deviation of per-step expression
	// noise. Zero disables noise entirely.
	NoiseStdDev float64 `yaml:"noise_std_dev"`

	// Seed seeds the noise source for reproducible runs.
	Seed int64 `yaml:"seed"`

	// MaxPerCycle bounds scheduler throughput per cycle.
	MaxPerCycle int `yaml:"max_per_cycle"`

	// HistoryDB, when set, enables the durable reconfiguration log at
	// this SQLite path.
	HistoryDB string `yaml:"history_db"`

	// StressLevel is the initial cellular stress in [0,1].
	StressLevel float64 `yaml:"stress_level"`

	// Signals are initial environmental signal strengths by name.
	Signals map[string]float64 `yaml:"signals"`

	// Steps is the number of execution steps the run command performs.
	Steps int `yaml:"steps"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		NoiseStdDev: 0.02,
		Seed:        1,
		MaxPerCycle: 5,
		Steps:       1,
	}
}

// Load reads and validates a YAML configuration file.
// Unset fields keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if c.NoiseStdDev < 0 {
		return fmt.Errorf("noise_std_dev must be >= 0, got %v", c.NoiseStdDev)
	}
	if c.MaxPerCycle < 1 {
		return fmt.Errorf("max_per_cycle must be >= 1, got %d", c.MaxPerCycle)
	}
	if c.StressLevel < 0 || c.StressLevel > 1 {
		return fmt.Errorf("stress_level must be in [0,1], got %v", c.StressLevel)
	}
	if c.Steps < 1 {
		return fmt.Errorf("steps must be >= 1, got %d", c.Steps)
	}
	return nil
}
