// Package config loads runtime settings from the environment and an
// optional config file. The engine's tunables (detection threshold,
// balance tolerances) and the server's limits all live here.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full runtime configuration.
type Config struct {
	// Server
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	MaxUploadSize int    `mapstructure:"max_upload_size"` // bytes
	MaxBatchSize  int    `mapstructure:"max_batch_size"`  // files per request

	// Engine
	DetectionThreshold float64 `mapstructure:"detection_threshold"`
	BalanceEpsilon     string  `mapstructure:"balance_epsilon"` // decimal string, major units
	BalanceCeiling     string  `mapstructure:"balance_ceiling"`

	// Logging
	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration with defaults, an optional bankstate.yaml in the
// working directory, and BANKSTATE_-prefixed environment overrides.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("max_upload_size", 50<<20)
	v.SetDefault("max_batch_size", 100)
	v.SetDefault("detection_threshold", 0.3)
	v.SetDefault("balance_epsilon", "0.01")
	v.SetDefault("balance_ceiling", "1.00")
	v.SetDefault("log_level", "info")

	v.SetConfigName("bankstate")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// The file is optional; only a malformed one is an error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("BANKSTATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges that would otherwise fail deep inside the engine.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DetectionThreshold < 0 || c.DetectionThreshold > 1 {
		return fmt.Errorf("detection_threshold %f outside [0,1]", c.DetectionThreshold)
	}
	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("max_batch_size must be positive")
	}
	return nil
}
