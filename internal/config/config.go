// Package config defines all configuration structures for the MaintAInPro PM
// scheduling engine. No I/O or parsing logic lives here, only plain data
// types and validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxConns        int           `mapstructure:"max_conns"`
	MinConns        int           `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	MigrationPath   string        `mapstructure:"migration_path"`
}

// DSN renders the pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// KafkaConfig holds Kafka producer parameters for the notification publisher.
type KafkaConfig struct {
	Brokers      []string      `mapstructure:"brokers"`
	Acks         string        `mapstructure:"acks"` // "all" | "one" | "none"
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	BatchSize    int           `mapstructure:"batch_size"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// SchedulingConfig holds the PM engine's behavioural tunables.
type SchedulingConfig struct {
	// GraceMinutes widens the "due" window: a pair becomes due this many
	// minutes before its computed due date.
	GraceMinutes int `mapstructure:"grace_minutes"`

	// EscalationThresholdMinutes lists, per escalation level, how many minutes
	// past due an open work order must be before advancing to that level.
	// Index 0 is the threshold for level 1. The slice length is the maximum
	// escalation level.
	EscalationThresholdMinutes []int `mapstructure:"escalation_threshold_minutes"`

	// RunLockTTL bounds how long a per-scope scheduler run may hold the
	// distributed run lock before it expires.
	RunLockTTL time.Duration `mapstructure:"run_lock_ttl"`

	// ComplianceCacheTTL bounds how long a computed compliance summary is
	// served from cache.
	ComplianceCacheTTL time.Duration `mapstructure:"compliance_cache_ttl"`
}

// WorkerConfig holds the periodic scheduler process parameters.
type WorkerConfig struct {
	// Scopes lists the scope IDs the worker drives. Empty means the worker
	// is idle until scopes are configured.
	Scopes []string `mapstructure:"scopes"`

	// Interval is the period between scheduling sweeps.
	Interval time.Duration `mapstructure:"interval"`

	// HealthPort exposes /healthz and /metrics for the worker process.
	HealthPort int `mapstructure:"health_port"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// Config is the root configuration object.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Scheduling SchedulingConfig `mapstructure:"scheduling"`
	Worker     WorkerConfig     `mapstructure:"worker"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Logging    LoggingSection   `mapstructure:"logging"`
}

// LoggingSection mirrors logging.LogConfig; kept as a separate struct so the
// config package does not import infrastructure.
type LoggingSection struct {
	Level            string   `mapstructure:"level"`
	Format           string   `mapstructure:"format"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// Validate checks cross-field consistency. Defaults must already be applied.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host must not be empty")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database.port out of range: %d", c.Database.Port)
	}
	if c.Scheduling.GraceMinutes < 0 {
		return fmt.Errorf("scheduling.grace_minutes must not be negative")
	}
	if len(c.Scheduling.EscalationThresholdMinutes) == 0 {
		return fmt.Errorf("scheduling.escalation_threshold_minutes must not be empty")
	}
	prev := 0
	for i, m := range c.Scheduling.EscalationThresholdMinutes {
		if m <= prev {
			return fmt.Errorf("scheduling.escalation_threshold_minutes must be strictly increasing (index %d)", i)
		}
		prev = m
	}
	if c.Worker.Interval <= 0 {
		return fmt.Errorf("worker.interval must be positive")
	}
	return nil
}
