package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// Up applies every pending migration for the given driver ("postgres" or
// "sqlite3"). An up-to-date schema is not an error.
func Up(ctx context.Context, db *sql.DB, driver string, log *slog.Logger) error {
	driver = strings.ToLower(driver)
	start := time.Now()
	log = log.With("component", "database", "driver", driver)
	log.InfoContext(ctx, "db migration check")

	dbInstance, err := withInstance(db, driver)
	if err != nil {
		return fmt.Errorf("create DB instance: %w", err)
	}

	srcInstance, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("create source instance: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", srcInstance, driver, dbInstance)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	migrateErr := m.Up()

	fields := []any{"duration_ms", time.Since(start).Milliseconds()}
	version, dirty, versionErr := m.Version()
	if versionErr == nil {
		fields = append(fields, "version", version, "dirty", dirty)
	} else if !errors.Is(versionErr, migrate.ErrNilVersion) {
		log.WarnContext(ctx, "failed to fetch migration version", "error", versionErr)
	}

	if migrateErr != nil {
		if !errors.Is(migrateErr, migrate.ErrNoChange) {
			log.ErrorContext(ctx, "db migration failed", append(fields, "error", migrateErr)...)
			return fmt.Errorf("apply migrations: %w", migrateErr)
		}
		log.InfoContext(ctx, "schema already up to date", fields...)
		return nil
	}

	log.InfoContext(ctx, "db migration success", fields...)
	return nil
}

func withInstance(db *sql.DB, driver string) (database.Driver, error) {
	switch driver {
	case "postgres":
		return migratepgx.WithInstance(db, &migratepgx.Config{})
	case "sqlite3":
		return migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		return nil, fmt.Errorf("unsupported migration driver %q", driver)
	}
}
