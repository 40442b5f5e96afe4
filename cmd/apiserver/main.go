// The apiserver binary exposes the PM scheduling engine over REST.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/app"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/config"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/monitoring/logging"
	httpapi "github.com/Coding-Krakken/MaintAInPro-sub003/internal/interfaces/http"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/interfaces/http/handlers"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file (environment only when omitted)")
	migrateOnStart := flag.Bool("migrate", false, "apply pending schema migrations before serving")
	flag.Parse()

	if err := run(*configPath, *migrateOnStart); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, migrateOnStart bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	if migrateOnStart {
		if err := a.Migrate(); err != nil {
			return err
		}
	}

	// hot-reload the log level when the config file changes
	if configPath != "" {
		config.Watch(configPath, func(next *config.Config) {
			if logging.SetLevel(a.Log, next.Logging.Level) {
				a.Log.Info("log level reloaded", logging.String("level", next.Logging.Level))
			}
		})
	}

	deps := httpapi.RouterDeps{
		Scheduling: handlers.NewSchedulingHandler(a.Engine, a.Monitor, a.Compliance),
		Health:     handlers.NewHealthHandler(a.HealthChecks()),
		Logger:     a.Log,
	}
	if a.Metrics != nil {
		deps.Metrics = a.Metrics.Handler()
	}
	server := httpapi.NewServer(a.Cfg.Server, deps)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	return server.Stop(context.Background())
}
