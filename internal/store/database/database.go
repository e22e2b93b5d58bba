package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Config selects the driver and data source.
type Config struct {
	Driver string
	DSN    string
}

type Database struct {
	db     *sql.DB
	driver string
}

// DB returns the underlying *sql.DB instance
func (d *Database) DB() *sql.DB {
	return d.db
}

// Driver returns the database/sql driver name in use.
func (d *Database) Driver() string {
	return d.driver
}

// New opens the database and applies pending migrations.
func New(ctx context.Context, cfg Config) (*Database, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case DriverSQLite, "":
		db, err = openSQLite(cfg.DSN)
		cfg.Driver = DriverSQLite
	case DriverPostgres:
		db, err = sql.Open(DriverPostgres, cfg.DSN)
		if err != nil {
			err = fmt.Errorf("failed to open database: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	dbInstance := &Database{db: db, driver: cfg.Driver}
	if err := dbInstance.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return dbInstance, nil
}

func openSQLite(dsn string) (*sql.DB, error) {
	if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	return db, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// migrate runs the pending migrations, each in its own transaction.
func (d *Database) migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS _migrations (
			name TEXT PRIMARY KEY,
			run_at TIMESTAMP NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range migrations(d.driver) {
		if err := d.apply(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (d *Database) apply(ctx context.Context, m migration) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM _migrations WHERE name = $1`, m.name).Scan(&count); err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, stmt := range m.statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", m.name, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO _migrations (name, run_at) VALUES ($1, $2)`,
		m.name, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", m.name, err)
	}

	return tx.Commit()
}
