package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. SCRY_SERVER_PORT.
const EnvPrefix = "SCRY"

var defaults = map[string]any{
	"server.port":             8080,
	"server.log_level":        "info",
	"server.read_timeout":     "10s",
	"server.write_timeout":    "15s",
	"server.shutdown_timeout": "10s",

	"database.max_open_conns":    25,
	"database.max_idle_conns":    5,
	"database.conn_max_lifetime": "5m",

	"scheduling.daily_new_card_cap":    20,
	"scheduling.default_timezone":      "UTC",
	"scheduling.streak_milestones":     []int{7, 14, 30, 60, 100, 180, 365},
	"scheduling.retention_window_days": 30,
	"scheduling.recommendation_days":   7,

	"cache.enabled":            true,
	"cache.schema_version":     1,
	"cache.retention_ttl":      "1h",
	"cache.recommendation_ttl": "15m",
	"cache.sweep_interval":     "10m",
	"cache.metrics_retention":  "168h",
	"cache.persist_metrics":    true,

	"events.enabled": false,
	"events.topic":   "scry.scheduling",
}

// keys without a default still need an explicit env binding
var envOnlyKeys = []string{
	"database.url",
	"events.brokers",
}

// Load configuration from environment variables and an optional config.yaml
// in the working directory. Environment variables take precedence.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with an explicit directory to search for config.yaml.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envOnlyKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
