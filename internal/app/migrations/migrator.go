package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"

	"github.com/yigit/coursecatalog/internal/db"
)

//go:embed sql
var migrationFiles embed.FS

// Migrator applies the embedded schema files for a store's dialect
type Migrator struct {
	store  *db.Store
	files  fs.FS
	dir    string
	sb     squirrel.StatementBuilderType
	logger zerolog.Logger
}

// NewMigrator creates a new migrator for the store
func NewMigrator(store *db.Store, lgr zerolog.Logger) *Migrator {
	return &Migrator{
		store:  store,
		files:  migrationFiles,
		dir:    path.Join("sql", string(store.Dialect())),
		sb:     squirrel.StatementBuilder.PlaceholderFormat(store.Dialect().Placeholder()),
		logger: lgr,
	}
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := m.store.DB().ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, tx *sql.Tx, version string) (bool, error) {
	query, args, err := m.sb.Select("COUNT(1)").
		From("schema_migrations").
		Where(squirrel.Eq{"version": version}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build migration status query: %w", err)
	}

	var count int
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

// recordMigration marks a migration as applied
func (m *Migrator) recordMigration(ctx context.Context, tx *sql.Tx, version string) error {
	query, args, err := m.sb.Insert("schema_migrations").
		Columns("version", "applied_at").
		Values(version, time.Now().UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build migration record query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return nil
}

// applyFile executes one migration file inside its own transaction
func (m *Migrator) applyFile(ctx context.Context, name string) error {
	// "001_create_courses.sql" => "001"
	version := strings.Split(name, "_")[0]

	content, err := fs.ReadFile(m.files, path.Join(m.dir, name))
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	tx, err := m.store.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	applied, err := m.isMigrationApplied(ctx, tx, version)
	if err != nil {
		return err
	}
	if applied {
		m.logger.Debug().Str("migration", name).Msg("Migration already applied, skipping")
		return nil
	}

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("error occurred during SQL migration %s: %w", name, err)
	}

	if err := m.recordMigration(ctx, tx, version); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	m.logger.Info().Str("migration", name).Msg("Migration applied")
	return nil
}

// Migrate applies all pending migrations for the store's dialect in file name order
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	entries, err := fs.ReadDir(m.files, m.dir)
	if err != nil {
		return fmt.Errorf("failed to read migration directory: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	for _, name := range sqlFiles {
		if err := m.applyFile(ctx, name); err != nil {
			return err
		}
	}

	return nil
}
