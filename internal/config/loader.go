package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all engine settings.
const envPrefix = "MAINT"

// newViper builds a pre-configured viper instance: YAML file type, MAINT_ env
// prefix, automatic env binding, and a key replacer mapping "." to "_" so that
// nested keys like "database.host" resolve to "MAINT_DATABASE_HOST".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// viper only honours env-var overrides during Unmarshal for keys it has
	// seen, so every supported key is bound explicitly.
	for _, key := range envBoundKeys {
		_ = v.BindEnv(key)
	}
	return v
}

// envBoundKeys lists the configuration keys that may be overridden through
// MAINT_* environment variables.
var envBoundKeys = []string{
	"server.port", "server.mode", "server.read_timeout", "server.write_timeout", "server.shutdown_timeout",
	"database.host", "database.port", "database.user", "database.password", "database.db_name",
	"database.ssl_mode", "database.max_conns", "database.min_conns", "database.migration_path",
	"redis.addr", "redis.password", "redis.db", "redis.pool_size", "redis.key_prefix",
	"kafka.brokers", "kafka.acks", "kafka.max_retries",
	"scheduling.grace_minutes", "scheduling.escalation_threshold_minutes",
	"scheduling.run_lock_ttl", "scheduling.compliance_cache_ttl",
	"worker.scopes", "worker.interval", "worker.health_port",
	"metrics.enabled", "metrics.namespace",
	"logging.level", "logging.format",
}

// Load reads the YAML file at configPath, merges MAINT_* environment variable
// overrides, applies defaults for unset fields, and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from MAINT_* environment variables and
// defaults, with no config file required. Preferred for containerised
// deployments.
//
// Naming convention: MAINT_<SECTION>_<FIELD>, e.g. MAINT_DATABASE_HOST.
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath for changes and invokes onChange with the newly
// parsed Config whenever the file is modified. Intended for hot-reloading
// non-critical settings such as log level and scheduling thresholds; callers
// apply only the safe subset of changes at runtime.
//
// Watch is non-blocking; viper manages the background goroutine. A changed
// file that fails to parse or validate does not trigger onChange.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read; callers should have called Load first, so errors here
	// only mean the watcher starts from an empty state.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}

// MustLoad wraps Load and panics on error. For use in main() where a config
// load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
