// Package config loads generator settings from YAML, applies COLLATZRNG_*
// environment overrides and exposes named seed presets.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSeed            = 12345
	DefaultBits            = 10000
	DefaultKeyBytes        = 16
	DefaultBlockSize       = 8
	DefaultMaxRounds       = 64
	DefaultTrajectorySteps = 1000
	DefaultWorkers         = 4
	DefaultDataDir         = "./data"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

type Config struct {
	Seed            int64   `yaml:"seed" env:"COLLATZRNG_SEED"`
	Bits            int     `yaml:"bits" env:"COLLATZRNG_BITS"`
	KeyBytes        int     `yaml:"key_bytes" env:"COLLATZRNG_KEY_BYTES"`
	BlockSize       int     `yaml:"block_size" env:"COLLATZRNG_BLOCK_SIZE"`
	MaxRounds       int     `yaml:"max_rounds" env:"COLLATZRNG_MAX_ROUNDS"`
	TrajectorySteps int     `yaml:"trajectory_steps" env:"COLLATZRNG_TRAJECTORY_STEPS"`
	Workers         int     `yaml:"workers" env:"COLLATZRNG_WORKERS"`
	Seeds           []int64 `yaml:"seeds,omitempty" env:"COLLATZRNG_SEEDS" envSeparator:","`
	DataDir         string  `yaml:"data_dir" env:"COLLATZRNG_DATA_DIR"`
	LogLevel        string  `yaml:"log_level" env:"COLLATZRNG_LOG_LEVEL"`
	LogFormat       string  `yaml:"log_format" env:"COLLATZRNG_LOG_FORMAT"`
}

func DefaultConfig() *Config {
	return &Config{
		Seed:            DefaultSeed,
		Bits:            DefaultBits,
		KeyBytes:        DefaultKeyBytes,
		BlockSize:       DefaultBlockSize,
		MaxRounds:       DefaultMaxRounds,
		TrajectorySteps: DefaultTrajectorySteps,
		Workers:         DefaultWorkers,
		DataDir:         DefaultDataDir,
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
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

// ApplyEnv overrides fields whose COLLATZRNG_* variable is set.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// Resolve loads path (defaults when empty), then applies the environment.
func Resolve(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects values no command can run with.
func (c *Config) Validate() error {
	if c.Seed <= 0 {
		return fmt.Errorf("config: seed must be positive, got %d", c.Seed)
	}
	for _, s := range c.Seeds {
		if s <= 0 {
			return fmt.Errorf("config: seeds must be positive, got %d", s)
		}
	}
	if c.Bits < 0 || c.KeyBytes < 0 {
		return fmt.Errorf("config: bits and key_bytes must not be negative")
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("config: block_size must be positive, got %d", c.BlockSize)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log_format %q", c.LogFormat)
	}
	return nil
}

// SweepSeeds returns Seeds, or the single Seed when none are listed.
func (c *Config) SweepSeeds() []int64 {
	if len(c.Seeds) > 0 {
		return c.Seeds
	}
	return []int64{c.Seed}
}
