package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// LatencyConfig controls the simulated round-trip time on the report store.
type LatencyConfig struct {
	MinMillis int `mapstructure:"min_millis"`
	MaxMillis int `mapstructure:"max_millis"`
}

// PermissionsConfig lists granted actions per resource for the static
// access checker. An absent map grants everything.
type PermissionsConfig map[string][]string

type Config struct {
	DefaultTenant string            `mapstructure:"default_tenant"`
	Latency       LatencyConfig     `mapstructure:"latency"`
	Permissions   PermissionsConfig `mapstructure:"permissions"`
}

// Load reads the config file at path. A missing file is not an error; the
// zero config is usable and the mock deployment runs fine on defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("latency.min_millis", 200)
	v.SetDefault("latency.max_millis", 300)

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// LatencyBounds converts the configured millisecond bounds to durations.
func (c *Config) LatencyBounds() (time.Duration, time.Duration) {
	return time.Duration(c.Latency.MinMillis) * time.Millisecond,
		time.Duration(c.Latency.MaxMillis) * time.Millisecond
}
