package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Scheduling SchedulingConfig `mapstructure:"scheduling" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache" validate:"required"`
	Events     EventsConfig     `mapstructure:"events"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// SchedulingConfig tunes queue building, streaks and recommendations.
type SchedulingConfig struct {
	DailyNewCardCap     int    `mapstructure:"daily_new_card_cap" validate:"gte=0,lte=1000"`
	DefaultTimezone     string `mapstructure:"default_timezone" validate:"required,timezone"`
	StreakMilestones    []int  `mapstructure:"streak_milestones" validate:"required,dive,gt=0"`
	RetentionWindowDays int    `mapstructure:"retention_window_days" validate:"gte=1,lte=365"`
	RecommendationDays  int    `mapstructure:"recommendation_days" validate:"gte=1,lte=30"`
}

// CacheConfig controls the statistics cache.
type CacheConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	SchemaVersion     int           `mapstructure:"schema_version" validate:"gte=1"`
	RetentionTTL      time.Duration `mapstructure:"retention_ttl" validate:"gt=0"`
	RecommendationTTL time.Duration `mapstructure:"recommendation_ttl" validate:"gt=0"`
	SweepInterval     time.Duration `mapstructure:"sweep_interval" validate:"gt=0"`
	MetricsRetention  time.Duration `mapstructure:"metrics_retention" validate:"gt=0"`
	PersistMetrics    bool          `mapstructure:"persist_metrics"`
}

// EventsConfig configures publishing of domain events to Kafka.
type EventsConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers" validate:"required_if=Enabled true"`
	Topic   string   `mapstructure:"topic" validate:"required_if=Enabled true"`
}
