package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver

	"github.com/yigit/coursecatalog/internal/config"
)

// Dialect identifies the SQL flavour behind a Store
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Placeholder returns the squirrel placeholder format for the dialect
func (d Dialect) Placeholder() squirrel.PlaceholderFormat {
	if d == DialectPostgres {
		return squirrel.Dollar
	}
	return squirrel.Question
}

// Store is the process-wide handle to the database. It is created once at
// start-up and handed to the components that need it.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open creates a Store from configuration and verifies the connection
func Open(cfg *config.Config) (*Store, error) {
	driver, dsn, dialect, err := dataSource(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if cfg.Database.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	return &Store{db: sqlDB, dialect: dialect}, nil
}

// dataSource resolves the driver name, DSN and dialect for the configured driver
func dataSource(cfg *config.Config) (string, string, Dialect, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		return "sqlite", sqliteDSN(cfg.Database.Path, cfg.BusyTimeout()), DialectSQLite, nil
	case config.DriverPostgres:
		return "pgx", cfg.Database.DSN, DialectPostgres, nil
	default:
		return "", "", "", fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// sqliteDSN builds a modernc.org/sqlite file DSN with per-connection pragmas
func sqliteDSN(path string, busyTimeout time.Duration) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	q.Add("_pragma", "foreign_keys(1)")
	return "file:" + path + "?" + q.Encode()
}

// Dialect returns the SQL dialect of the store
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// DB exposes the underlying pool for schema bootstrap
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping checks that the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying pool
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
