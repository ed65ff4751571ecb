// Package config loads the tunable parameters of a recovery run.
package config

import (
	"time"

	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
)

// Config holds the parameters of a single simulated recovery.
type Config struct {
	// Health model
	MaxHP         int `config:"VITALS_MAX_HP"`
	InitialDamage int `config:"VITALS_INITIAL_DAMAGE"`

	// Recovery loop
	AmountPerTick int `config:"VITALS_AMOUNT_PER_TICK"`
	IntervalMs    int `config:"VITALS_INTERVAL_MS"`
	TimeoutMs     int `config:"VITALS_TIMEOUT_MS"` // 0 = no timeout

	LogLevel string `config:"VITALS_LOG_LEVEL"`
}

// DefaultConfig returns sensible defaults for a live run.
func DefaultConfig() *Config {
	return &Config{
		MaxHP:         100,
		InitialDamage: 50,
		AmountPerTick: 10,
		IntervalMs:    1000, // One heal per second
		TimeoutMs:     0,
		LogLevel:      "info",
	}
}

// FastConfig returns settings that finish in milliseconds, for tests and demos.
func FastConfig() *Config {
	return &Config{
		MaxHP:         100,
		InitialDamage: 25,
		AmountPerTick: 25,
		IntervalMs:    1,
		TimeoutMs:     1000,
		LogLevel:      "debug",
	}
}

// Load is Read followed by Validate.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read starts from DefaultConfig, applies the key=value file at path (if
// path is non-empty), then the environment. The result is not validated, so
// callers can layer further overrides first.
func Read(path string) (*Config, error) {
	cfg := DefaultConfig()

	var b *jlconfig.Builder
	if path != "" {
		b = jlconfig.From(path).FromEnv()
	} else {
		b = jlconfig.FromEnv()
	}

	if err := b.To(cfg); err != nil {
		return nil, eris.Wrapf(err, "failed to load config from %q", path)
	}
	return cfg, nil
}

// Validate rejects values the health model or the recovery loop would refuse.
func (c *Config) Validate() error {
	switch {
	case c.MaxHP <= 0:
		return eris.Errorf("VITALS_MAX_HP must be greater than 0, got %d", c.MaxHP)
	case c.InitialDamage < 0:
		return eris.Errorf("VITALS_INITIAL_DAMAGE must be non-negative, got %d", c.InitialDamage)
	case c.AmountPerTick < 0:
		return eris.Errorf("VITALS_AMOUNT_PER_TICK must be non-negative, got %d", c.AmountPerTick)
	case c.IntervalMs < 0:
		return eris.Errorf("VITALS_INTERVAL_MS must be non-negative, got %d", c.IntervalMs)
	case c.TimeoutMs < 0:
		return eris.Errorf("VITALS_TIMEOUT_MS must be non-negative, got %d", c.TimeoutMs)
	}
	return nil
}

// Interval returns IntervalMs as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// Timeout returns TimeoutMs as a duration; zero means none.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}
