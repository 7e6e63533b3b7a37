package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createBlobTable = `
CREATE TABLE IF NOT EXISTS record_blobs (
	name       TEXT PRIMARY KEY,
	data       BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresBlob keeps the record blob in a single-row table, for
// installs that already run Postgres for other tooling.
type PostgresBlob struct {
	pool *pgxpool.Pool
}

// NewPostgresBlob connects to Postgres at url and ensures the blob
// table exists.
func NewPostgresBlob(ctx context.Context, url string) (*PostgresBlob, error) {
	if url == "" {
		return nil, fmt.Errorf("postgres URL is empty")
	}
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres URL: %w", err)
	}

	// One logical writer; a large pool buys nothing here.
	cfg.MaxConns = 4
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, createBlobTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating record_blobs table: %w", err)
	}

	return &PostgresBlob{pool: pool}, nil
}

func (b *PostgresBlob) Get(ctx context.Context) ([]byte, bool, error) {
	var data []byte
	err := b.pool.QueryRow(ctx,
		`SELECT data FROM record_blobs WHERE name = $1`, Namespace,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", Namespace, err)
	}
	return data, true, nil
}

func (b *PostgresBlob) Put(ctx context.Context, data []byte) error {
	_, err := b.pool.Exec(ctx,
		`INSERT INTO record_blobs (name, data, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		Namespace, data,
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", Namespace, err)
	}
	return nil
}

// Close shuts down the connection pool.
func (b *PostgresBlob) Close() error {
	b.pool.Close()
	return nil
}

// HealthCheck verifies the connection is alive.
func (b *PostgresBlob) HealthCheck(ctx context.Context) error {
	return b.pool.Ping(ctx)
}
