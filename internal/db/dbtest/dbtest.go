// Package dbtest opens isolated, migrated SQLite stores for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/yigit/coursecatalog/internal/app/migrations"
	"github.com/yigit/coursecatalog/internal/config"
	"github.com/yigit/coursecatalog/internal/db"
)

// Config returns a SQLite configuration pointing at a fresh file in t.TempDir().
func Config(t testing.TB) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "courses.db")
	cfg.Database.MaxOpenConns = 1
	cfg.Database.MaxIdleConns = 1
	cfg.Database.ConnMaxLifetime = "1h"
	cfg.Database.BusyTimeout = "5s"
	return cfg
}

// NewStore opens a migrated store that is closed when the test ends.
func NewStore(t testing.TB) *db.Store {
	t.Helper()
	store, err := db.Open(Config(t))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := migrations.NewMigrator(store, zerolog.Nop()).Migrate(context.Background()); err != nil {
		t.Fatalf("migrate store: %v", err)
	}
	return store
}
