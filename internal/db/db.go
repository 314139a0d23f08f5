package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS homework_notifications (
    id         UUID PRIMARY KEY,
    created_at TIMESTAMPTZ NOT NULL,
    kind       TEXT NOT NULL,
    homework   TEXT NOT NULL DEFAULT '',
    status     TEXT NOT NULL DEFAULT '',
    chat_id    TEXT NOT NULL,
    text       TEXT NOT NULL,
    delivered  BOOLEAN NOT NULL,
    error      TEXT NOT NULL DEFAULT ''
)`

type DB struct {
	Pool *pgxpool.Pool
}

// New connects to Postgres and makes sure the journal table exists.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &DB{Pool: pool}, nil
}

func (d *DB) Close() {
	d.Pool.Close()
}
