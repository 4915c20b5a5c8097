package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/remindbot/internal/store"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DB is the SQL-backed store. It serves both sqlite3 and postgres; queries are
// written with ? placeholders and rebound for the active driver.
type DB struct {
	db *sqlx.DB
}

var _ store.Store = (*DB)(nil)

// Open establishes a connection, applies driver settings and creates the schema.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	switch driver {
	case DriverSQLite:
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	d := &DB{db: db}
	if err := d.initializeSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return d, nil
}

// Ping checks connectivity.
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) rebind(query string) string {
	return d.db.Rebind(query)
}

// initializeSchema creates necessary tables if they don't exist
func (d *DB) initializeSchema(ctx context.Context) error {
	statements := sqliteSchema
	if d.db.DriverName() == DriverPostgres {
		statements = postgresSchema
	}
	for _, stmt := range statements {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

var sqliteSchema = []string{
	`PRAGMA journal_mode=WAL`,
	`PRAGMA busy_timeout=5000`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL DEFAULT '',
		preferred_name TEXT,
		personality TEXT,
		timezone_label TEXT,
		timezone_offset REAL,
		stage TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reminders (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		user_name TEXT NOT NULL DEFAULT '',
		task TEXT NOT NULL,
		scheduled_at TIMESTAMP NOT NULL,
		local_display TEXT NOT NULL DEFAULT '',
		completed BOOLEAN NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reminders_due ON reminders (completed, scheduled_at)`,
	`CREATE INDEX IF NOT EXISTS idx_reminders_user ON reminders (user_id, completed, scheduled_at)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL DEFAULT '',
		preferred_name TEXT,
		personality TEXT,
		timezone_label TEXT,
		timezone_offset DOUBLE PRECISION,
		stage TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reminders (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		user_name TEXT NOT NULL DEFAULT '',
		task TEXT NOT NULL,
		scheduled_at TIMESTAMPTZ NOT NULL,
		local_display TEXT NOT NULL DEFAULT '',
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reminders_due ON reminders (completed, scheduled_at)`,
	`CREATE INDEX IF NOT EXISTS idx_reminders_user ON reminders (user_id, completed, scheduled_at)`,
}

// dbTime normalizes instants before they are written or compared. SQLite keeps
// timestamps as text, so every value must share one zone and precision for
// range predicates to order correctly.
func dbTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
