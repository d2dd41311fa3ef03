// Package migrations embeds the schema and applies it with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq" // postgres driver for database/sql
	"go.uber.org/zap"
)

//go:embed *.sql
var FS embed.FS

// Up applies all pending migrations to the database at dsn.
func Up(dsn string, logger *zap.Logger) error {
	m, closeFn, err := newMigrate(dsn)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("m.Up: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("m.Version: %w", err)
	}
	logger.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))

	return nil
}

// Down rolls back steps migrations.
func Down(dsn string, steps int, logger *zap.Logger) error {
	m, closeFn, err := newMigrate(dsn)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("m.Steps: %w", err)
	}
	logger.Info("migrations rolled back", zap.Int("steps", steps))

	return nil
}

func newMigrate(dsn string) (*migrate.Migrate, func(), error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("sql.Open: %w", err)
	}

	source, err := iofs.New(FS, ".")
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("iofs.New: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("postgres.WithInstance: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate.NewWithInstance: %w", err)
	}

	return m, func() { _, _ = m.Close() }, nil
}
