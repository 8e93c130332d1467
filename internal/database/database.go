// Package database opens the PostgreSQL pool and provides the shared
// transaction and error helpers used by the repositories.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/sethvargo/go-retry"

	"github.com/Ultrahd-dev/student-portal/internal/config"
)

// ErrStorage matches every error raised by the database layer.
var ErrStorage = errors.New("storage failure")

const (
	uniqueViolation     pq.ErrorCode = "23505"
	foreignKeyViolation pq.ErrorCode = "23503"
)

// Builder produces PostgreSQL statements with $n placeholders.
var Builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Error wraps a driver error with the failed operation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports ErrStorage as a match so callers need not know the driver.
func (e *Error) Is(target error) bool { return target == ErrStorage }

// Wrap returns nil for a nil err, otherwise a storage *Error.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return err
	}
	return &Error{Op: op, Err: err}
}

// IsUniqueViolation reports whether err carries a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolation)
}

// IsForeignKeyViolation reports whether err carries a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, foreignKeyViolation)
}

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}

// Open connects to PostgreSQL and waits until the server answers a ping.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	backoff := retry.WithMaxRetries(cfg.ConnectRetries, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := db.PingContext(pingCtx); err != nil {
			log.Warn("database not ready", slog.String("host", cfg.Host), slog.String("error", err.Error()))
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Wrap("begin transaction", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, Wrap("rollback", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return Wrap("commit", err)
	}
	return nil
}
