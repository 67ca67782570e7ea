// Package bpkconfig provides configuration management for the bpk CLI.
package bpkconfig

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds the bpk CLI's runtime configuration: the log level, a
// default codec, a working buffer size, and a default hardware id.
// The CLI applies only LogLevel; DefaultCodec, BufferSize and
// DefaultHwID are loaded but no command reads them.
type Config struct {
	LogLevel     string `mapstructure:"log_level"`
	DefaultCodec string `mapstructure:"default_codec"`
	BufferSize   int    `mapstructure:"buffer_size"`
	DefaultHwID  uint32 `mapstructure:"default_hw_id"`
}

// DefaultConfig returns the CLI's built-in defaults, used as the base
// layer before flags, environment, and an optional config file are
// merged on top by Load.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		DefaultCodec: "",
		BufferSize:   2048,
		DefaultHwID:  0,
	}
}

// Load builds a Config by layering, in increasing priority: the
// built-in defaults, an optional config file at path (if non-empty
// and present), environment variables prefixed BPK_, and finally any
// flags already bound into v by the caller. It never fails merely
// because no config file exists at path.
func Load(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("default_codec", cfg.DefaultCodec)
	v.SetDefault("buffer_size", cfg.BufferSize)
	v.SetDefault("default_hw_id", cfg.DefaultHwID)

	v.SetEnvPrefix("BPK")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			// An explicit path that doesn't exist surfaces a plain
			// os.ErrNotExist rather than viper's own not-found type,
			// which only fires when searching config paths; tolerate
			// both the same way.
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("bpkconfig: reading %s: %w", path, err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("bpkconfig: unmarshal: %w", err)
	}
	return cfg, nil
}
