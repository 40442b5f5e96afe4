// The worker binary drives periodic scheduling and escalation sweeps over
// the configured scopes.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/app"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/config"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/monitoring/logging"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file (environment only when omitted)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "worker: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	log := a.Log.Named("worker")
	if len(a.Cfg.Worker.Scopes) == 0 {
		log.Warn("no scopes configured, worker will idle")
	}

	// hot-reload the log level when the config file changes
	if configPath != "" {
		config.Watch(configPath, func(next *config.Config) {
			if logging.SetLevel(a.Log, next.Logging.Level) {
				log.Info("log level reloaded", logging.String("level", next.Logging.Level))
			}
		})
	}

	healthSrv := startHealthServer(a, log)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = healthSrv.Shutdown(shutdownCtx)
	}()

	// first sweep runs immediately, then on every tick
	sweep(ctx, a, log)

	ticker := time.NewTicker(a.Cfg.Worker.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("worker shutting down")
			return nil
		case <-ticker.C:
			sweep(ctx, a, log)
		}
	}
}

// sweep runs one generation batch and one escalation pass per configured
// scope. A scope held by another worker's run lock is skipped quietly; any
// other failure is logged and the remaining scopes still run.
func sweep(ctx context.Context, a *app.App, log logging.Logger) {
	for _, raw := range a.Cfg.Worker.Scopes {
		scopeID := common.ScopeID(raw)
		if ctx.Err() != nil {
			return
		}

		created, err := a.Engine.GenerateWorkOrders(ctx, scopeID)
		switch {
		case errors.IsCode(err, errors.ErrCodeScopeLocked):
			log.Debug("scope locked by another run, skipping",
				logging.String("scope_id", raw))
		case err != nil:
			log.Error("scheduling sweep failed",
				logging.String("scope_id", raw),
				logging.Err(err))
		default:
			log.Info("scheduling sweep complete",
				logging.String("scope_id", raw),
				logging.Int("created", len(created)))
		}

		escalated, err := a.Monitor.EscalateOverdue(ctx, scopeID)
		if err != nil {
			log.Error("escalation sweep failed",
				logging.String("scope_id", raw),
				logging.Err(err))
			continue
		}
		if len(escalated) > 0 {
			log.Info("escalation sweep complete",
				logging.String("scope_id", raw),
				logging.Int("escalated", len(escalated)))
		}
	}
}

// startHealthServer exposes /healthz and /metrics on the worker's own port.
func startHealthServer(a *app.App, log logging.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if a.Metrics != nil {
		mux.Handle("/metrics", a.Metrics.Handler())
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.Cfg.Worker.HealthPort),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("health server failed", logging.Err(err))
		}
	}()
	return srv
}
