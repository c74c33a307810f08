package sql

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations/*/*.sql
var embedMigrations embed.FS

// Dialect selects the database engine.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DBConfig holds database connection configuration.
type DBConfig struct {
	Dialect Dialect
	DSN     string // SQLite: database file path; PostgreSQL: connection URL

	MaxOpenConns    int           // Maximum open connections (default: 1 for SQLite, 4 for PostgreSQL)
	ConnMaxLifetime time.Duration // Connection max lifetime (default: 5min)
}

func (d Dialect) driverName() (string, error) {
	switch d {
	case DialectSQLite:
		return "sqlite", nil
	case DialectPostgres:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported SQL dialect: %q", d)
	}
}

func (d Dialect) gooseDialect() string {
	if d == DialectSQLite {
		return "sqlite3"
	}
	return "postgres"
}

// NewStore opens the database, applies pending migrations and returns a store.
func NewStore(ctx context.Context, cfg DBConfig) (*Store, error) {
	driver, err := cfg.Dialect.driverName()
	if err != nil {
		return nil, err
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("%s DSN is required", cfg.Dialect)
	}

	if cfg.Dialect == DialectSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DSN), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool with defaults if not set
	maxOpenConns := cfg.MaxOpenConns
	if maxOpenConns <= 0 {
		maxOpenConns = 4
		if cfg.Dialect == DialectSQLite {
			// SQLite allows a single writer.
			maxOpenConns = 1
		}
	}
	connMaxLifetime := cfg.ConnMaxLifetime
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	// Verify connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(ctx, db, cfg.Dialect); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return newStore(db, cfg.Dialect), nil
}

// runMigrations applies the embedded goose migrations for the dialect.
func runMigrations(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if err := goose.SetDialect(dialect.gooseDialect()); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.UpContext(ctx, db, path.Join("migrations", string(dialect))); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
