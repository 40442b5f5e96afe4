// Package app wires the scheduling engine's collaborators from
// configuration. Both server binaries and the CLI share this bootstrap.
package app

import (
	"context"
	"time"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/application/scheduling"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/config"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/database/postgres"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/database/postgres/repositories"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/database/redis"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/messaging/kafka"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/monitoring/logging"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/monitoring/prometheus"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/interfaces/http/handlers"
)

// App bundles the wired components of one process.
type App struct {
	Cfg *config.Config
	Log logging.Logger

	DB       *postgres.Connection
	Redis    *redis.Client
	Producer *kafka.Producer
	Metrics  *prometheus.EngineMetrics

	Engine     *scheduling.Engine
	Monitor    *scheduling.Monitor
	Compliance *scheduling.ComplianceService
}

// New loads configuration from path (environment only when the path is
// empty) and wires every component.
func New(ctx context.Context, configPath string) (*App, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath == "" {
		cfg, err = config.LoadFromEnv()
	} else {
		cfg, err = config.Load(configPath)
	}
	if err != nil {
		return nil, err
	}
	return NewFromConfig(ctx, cfg)
}

// NewFromConfig wires every component from an already-loaded configuration.
func NewFromConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	log, err := logging.NewLogger(logging.LogConfig{
		Level:            cfg.Logging.Level,
		Format:           cfg.Logging.Format,
		OutputPaths:      cfg.Logging.OutputPaths,
		ErrorOutputPaths: cfg.Logging.ErrorOutputPaths,
	})
	if err != nil {
		return nil, err
	}

	a := &App{Cfg: cfg, Log: log}
	if cfg.Metrics.Enabled {
		a.Metrics = prometheus.NewEngineMetrics(cfg.Metrics.Namespace)
	}

	a.DB, err = postgres.NewConnection(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	var (
		locks scheduling.RunLocker
		cache scheduling.ComplianceCache
	)
	if cfg.Redis.Addr != "" {
		a.Redis, err = redis.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		locks = redis.NewRunLock(a.Redis, cfg.Scheduling.RunLockTTL, log)
		cache = redis.NewComplianceCache(a.Redis, cfg.Scheduling.ComplianceCacheTTL, log)
	}

	var notifier scheduling.Notifier
	if len(cfg.Kafka.Brokers) > 0 {
		a.Producer, err = kafka.NewProducer(cfg.Kafka, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		notifier = kafka.NewNotifier(a.Producer)
	}

	pool := a.DB.Pool()
	templates := repositories.NewTemplateRepository(pool)
	assets := repositories.NewEquipmentRepository(pool)
	workorders := repositories.NewWorkOrderRepository(pool)

	grace := time.Duration(cfg.Scheduling.GraceMinutes) * time.Minute
	var metrics scheduling.Metrics
	if a.Metrics != nil {
		metrics = a.Metrics
	}

	a.Engine, err = scheduling.NewEngine(scheduling.EngineDeps{
		Templates:  templates,
		Assets:     assets,
		WorkOrders: workorders,
		Synth:      scheduling.NewSynthesizer(nil, grace, log),
		Notifier:   notifier,
		Locks:      locks,
		Metrics:    metrics,
		Logger:     log,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	thresholds := make([]time.Duration, len(cfg.Scheduling.EscalationThresholdMinutes))
	for i, minutes := range cfg.Scheduling.EscalationThresholdMinutes {
		thresholds[i] = time.Duration(minutes) * time.Minute
	}
	a.Monitor, err = scheduling.NewMonitor(scheduling.MonitorDeps{
		WorkOrders: workorders,
		Notifier:   notifier,
		Metrics:    metrics,
		Logger:     log,
		Grace:      grace,
		Thresholds: thresholds,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Compliance, err = scheduling.NewComplianceService(assets, workorders, cache, nil, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Migrate applies pending schema migrations.
func (a *App) Migrate() error {
	migrator, err := postgres.NewMigrator(a.Cfg.Database, a.Log)
	if err != nil {
		return err
	}
	defer func() { _ = migrator.Close() }()
	return migrator.Up()
}

// HealthChecks returns the named readiness probes for the wired backends.
func (a *App) HealthChecks() map[string]handlers.HealthChecker {
	checks := map[string]handlers.HealthChecker{
		"postgres": a.DB,
	}
	if a.Redis != nil {
		checks["redis"] = a.Redis
	}
	return checks
}

// Close releases every held resource in reverse wiring order.
func (a *App) Close() {
	if a.Producer != nil {
		if err := a.Producer.Close(); err != nil {
			a.Log.Warn("closing kafka producer failed", logging.Err(err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Log.Warn("closing redis client failed", logging.Err(err))
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
