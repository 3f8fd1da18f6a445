package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/yigit/coursecatalog/internal/pkg/logger"
)

// ErrSessionClosed is returned when a released session is used again
var ErrSessionClosed = errors.New("db: session already closed")

// Querier is the subset of *sql.Conn and *sql.Tx the repositories need
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Session is a short-lived handle holding one dedicated connection
type Session struct {
	conn *sql.Conn

	once     sync.Once
	closeErr error
	closed   bool
}

// Session acquires a dedicated connection from the pool. Callers must Close it.
func (s *Store) Session(ctx context.Context) (*Session, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return &Session{conn: conn}, nil
}

// SessionFn is a function that runs with an acquired session
type SessionFn func(ctx context.Context, sess *Session) error

// WithSession acquires a session, runs fn and always releases the session
func (s *Store) WithSession(ctx context.Context, fn SessionFn) error {
	sess, err := s.Session(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			logger.Error().Err(cerr).Msg("Failed to release database session")
		}
	}()

	return fn(ctx, sess)
}

// Close returns the connection to the pool. Only the first call has an effect.
func (s *Session) Close() error {
	s.once.Do(func() {
		s.closed = true
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

// Querier returns the session connection for statements outside a transaction
func (s *Session) Querier() Querier {
	return s.conn
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx *sql.Tx) error

// WithTransaction runs fn within a transaction on the session's connection.
// The transaction is committed if fn returns nil and rolled back otherwise.
func (s *Session) WithTransaction(ctx context.Context, fn TransactionFn) error {
	if s.closed {
		return ErrSessionClosed
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Rollback on panic
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("%w (rollback error: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
