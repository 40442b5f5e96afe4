package postgres

import (
	goerrors "errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/config"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/monitoring/logging"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
)

// Migrator applies schema migrations from the configured directory.
type Migrator struct {
	m   *migrate.Migrate
	log logging.Logger
}

// NewMigrator builds a migrator from the file source in
// cfg.MigrationPath.
func NewMigrator(cfg config.DatabaseConfig, log logging.Logger) (*Migrator, error) {
	if log == nil {
		log = logging.NewNop()
	}
	if cfg.MigrationPath == "" {
		return nil, errors.InvalidParam("migration path must not be empty")
	}

	source := cfg.MigrationPath
	if !strings.HasPrefix(source, "file://") {
		source = "file://" + source
	}
	// golang-migrate selects its pgx/v5 driver by URL scheme
	dbURL := strings.Replace(cfg.DSN(), "postgres://", "pgx5://", 1)

	m, err := migrate.New(source, dbURL)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "init migrator")
	}
	return &Migrator{m: m, log: log.Named("migrator")}, nil
}

// Up applies every pending migration. Already up to date is not an error.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil {
		if goerrors.Is(err, migrate.ErrNoChange) {
			mg.log.Info("schema already up to date")
			return nil
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "apply migrations")
	}
	version, dirty, _ := mg.m.Version()
	mg.log.Info("migrations applied",
		logging.Int("version", int(version)),
		logging.Bool("dirty", dirty),
	)
	return nil
}

// Down rolls back a single migration step.
func (mg *Migrator) Down() error {
	if err := mg.m.Steps(-1); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "roll back migration")
	}
	return nil
}

// Version reports the current schema version.
func (mg *Migrator) Version() (string, error) {
	version, dirty, err := mg.m.Version()
	if goerrors.Is(err, migrate.ErrNilVersion) {
		return "none", nil
	}
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeDatabaseError, "read schema version")
	}
	if dirty {
		return fmt.Sprintf("%d (dirty)", version), nil
	}
	return fmt.Sprintf("%d", version), nil
}

// Close releases the migrator's database handle.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}
