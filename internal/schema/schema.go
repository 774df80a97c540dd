// Package schema brings the store to its required shape at process start.
//
// The statements are idempotent, so running them against an already
// initialized database is a no-op. While the database is still coming up the
// initializer retries on a fixed delay; exhausting the budget is fatal to
// startup and the caller must not begin serving.
package schema

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	// DefaultAttempts bounds how many times initialization is tried before
	// startup is abandoned.
	DefaultAttempts = 10
	// DefaultDelay is the pause between attempts.
	DefaultDelay = 5 * time.Second
)

const ddl = `
CREATE TABLE IF NOT EXISTS items (
    id SERIAL PRIMARY KEY,
    name VARCHAR(100) UNIQUE NOT NULL,
    quantity INTEGER NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Ensure creates the items and users relations if they are absent, retrying
// with the default budget while the store is unreachable.
func Ensure(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	return ensure(ctx, db, DefaultAttempts, DefaultDelay, log)
}

func ensure(ctx context.Context, e execer, attempts int, delay time.Duration, log *slog.Logger) error {
	if attempts < 1 {
		attempts = 1
	}

	attempt := 0
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(delay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if _, err := e.ExecContext(ctx, ddl); err != nil {
			log.Warn("schema initialization attempt failed",
				"attempt", attempt, "max_attempts", attempts, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("schema initialization exhausted %d of %d attempts: %w", attempt, attempts, err)
	}

	log.Info("schema initialized", "attempts", attempt)
	return nil
}
