package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yigit/coursecatalog/internal/config"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "test.db")
	cfg.Database.MaxOpenConns = 1
	cfg.Database.MaxIdleConns = 1
	cfg.Database.ConnMaxLifetime = "1h"
	cfg.Database.BusyTimeout = "5s"

	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if _, err := store.DB().Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return store
}

func countItems(t *testing.T, store *Store) int {
	t.Helper()
	var n int
	if err := store.DB().QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func insertItem(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO items (name) VALUES (?)`, "x")
	return err
}

// With a single-connection pool, acquiring again proves the previous session was released.
func assertReleased(t *testing.T, store *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	sess, err := store.Session(ctx)
	if err != nil {
		t.Fatalf("session was not released: %v", err)
	}
	sess.Close()
	if inUse := store.DB().Stats().InUse; inUse != 0 {
		t.Fatalf("connections in use = %d, want 0", inUse)
	}
}

func TestWithSessionReleasesOnSuccessAndError(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.WithSession(ctx, func(ctx context.Context, sess *Session) error {
		return nil
	}); err != nil {
		t.Fatalf("WithSession: %v", err)
	}
	assertReleased(t, store)

	wantErr := errors.New("handler failed")
	err := store.WithSession(ctx, func(ctx context.Context, sess *Session) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("WithSession error = %v, want %v", err, wantErr)
	}
	assertReleased(t, store)
}

func TestWithSessionReleasesOnPanic(t *testing.T) {
	store := openTestStore(t)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		_ = store.WithSession(context.Background(), func(ctx context.Context, sess *Session) error {
			panic("boom")
		})
	}()

	assertReleased(t, store)
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	sess, err := store.Session(context.Background())
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if err := sess.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := sess.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := sess.WithTransaction(context.Background(), insertItem); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("WithTransaction on closed session = %v, want ErrSessionClosed", err)
	}
	assertReleased(t, store)
}

func TestWithTransactionCommit(t *testing.T) {
	store := openTestStore(t)
	err := store.WithSession(context.Background(), func(ctx context.Context, sess *Session) error {
		return sess.WithTransaction(ctx, insertItem)
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	if n := countItems(t, store); n != 1 {
		t.Fatalf("items = %d, want 1", n)
	}
}

func TestWithTransactionRollbackOnError(t *testing.T) {
	store := openTestStore(t)
	wantErr := errors.New("write failed after insert")

	err := store.WithSession(context.Background(), func(ctx context.Context, sess *Session) error {
		return sess.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
			if err := insertItem(ctx, tx); err != nil {
				return err
			}
			return wantErr
		})
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}
	if n := countItems(t, store); n != 0 {
		t.Fatalf("items = %d after rollback, want 0", n)
	}
}

func TestWithTransactionRollbackOnPanic(t *testing.T) {
	store := openTestStore(t)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		_ = store.WithSession(context.Background(), func(ctx context.Context, sess *Session) error {
			return sess.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
				if err := insertItem(ctx, tx); err != nil {
					return err
				}
				panic("boom")
			})
		})
	}()

	if n := countItems(t, store); n != 0 {
		t.Fatalf("items = %d after panic, want 0", n)
	}
	assertReleased(t, store)
}

func TestSQLiteDSN(t *testing.T) {
	dsn := sqliteDSN("/tmp/courses.db", 1500*time.Millisecond)
	if !strings.HasPrefix(dsn, "file:/tmp/courses.db?") {
		t.Fatalf("dsn = %q", dsn)
	}
	if !strings.Contains(dsn, "busy_timeout%281500%29") {
		t.Errorf("dsn %q missing busy_timeout pragma", dsn)
	}
	if !strings.Contains(dsn, "foreign_keys%281%29") {
		t.Errorf("dsn %q missing foreign_keys pragma", dsn)
	}
}

func TestDialectPlaceholder(t *testing.T) {
	q, err := DialectPostgres.Placeholder().ReplacePlaceholders("a = ? AND b = ?")
	if err != nil || q != "a = $1 AND b = $2" {
		t.Errorf("postgres placeholders = %q, %v", q, err)
	}
	q, err = DialectSQLite.Placeholder().ReplacePlaceholders("a = ?")
	if err != nil || q != "a = ?" {
		t.Errorf("sqlite placeholders = %q, %v", q, err)
	}
}
