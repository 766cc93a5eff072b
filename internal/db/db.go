// Package db provides PostgreSQL-backed storage for market samples, salary
// contributions, and statutory minimum wage rates.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// pingTimeout bounds the startup connectivity probe so a wrong DATABASE_URL
// fails fast instead of hanging the CLI.
const pingTimeout = 5 * time.Second

// DB wraps a PostgreSQL connection pool shared by all stores.
type DB struct {
	pool *pgxpool.Pool
}

// Connect opens a connection pool and verifies the database is reachable.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}
	cfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close releases the pool. Safe on a zero DB.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}
