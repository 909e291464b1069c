// Package store is the PostgreSQL-backed transaction source for reports.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"finance-reports/internal/logging"
)

// ConnectOptions controls how Open waits for the database to come up.
type ConnectOptions struct {
	MaxRetries int
	RetryDelay time.Duration
}

// NormalizeURL rewrites postgresql:// to postgres:// and defaults sslmode to
// disable when the URL does not set it.
func NormalizeURL(databaseURL string) string {
	if databaseURL == "" {
		return databaseURL
	}
	if strings.HasPrefix(databaseURL, "postgresql:") {
		databaseURL = "postgres" + strings.TrimPrefix(databaseURL, "postgresql")
	}
	if !strings.Contains(databaseURL, "sslmode=") {
		separator := "?"
		if strings.Contains(databaseURL, "?") {
			separator = "&"
		}
		databaseURL = databaseURL + separator + "sslmode=disable"
	}
	return databaseURL
}

// Open connects to PostgreSQL, retrying the ping until the server answers or
// the attempts run out.
func Open(ctx context.Context, databaseURL string, opts ConnectOptions) (*sql.DB, error) {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 1
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 2 * time.Second
	}

	config, err := pgx.ParseConfig(NormalizeURL(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	logger := logging.Component(logging.ComponentStorage)

	for i := 0; i < opts.MaxRetries; i++ {
		db := stdlib.OpenDB(*config)
		err = db.PingContext(ctx)
		if err == nil {
			logger.Info("Database connection established", "host", config.Host, "database", config.Database)
			return db, nil
		}
		_ = db.Close()

		if i == opts.MaxRetries-1 {
			break
		}
		// Log the error on the first few attempts and every tenth after that.
		if i%10 == 0 || i < 5 {
			logger.Warn("Database not ready, retrying",
				"delay", opts.RetryDelay, "attempt", i+1, "max_attempts", opts.MaxRetries, "error", err)
		} else {
			logger.Warn("Database not ready, retrying",
				"delay", opts.RetryDelay, "attempt", i+1, "max_attempts", opts.MaxRetries)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(opts.RetryDelay):
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", opts.MaxRetries, err)
}

// PostgresStore reads transactions and categories for one user at a time.
type PostgresStore struct {
	db *sql.DB
}

// New wraps an open database handle.
func New(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database handle.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
