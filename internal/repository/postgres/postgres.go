// Package postgres implements the member store on PostgreSQL using a pgx
// connection pool. Queries are built with bob's psql dialect.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/msomdec/ocean-watch/internal/domain"
)

// initLockKey serializes concurrent Init calls across processes.
const initLockKey = 7140_0001

const createMembersTable = `
CREATE TABLE IF NOT EXISTS members (
    id         BIGSERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    email      TEXT NOT NULL UNIQUE,
    city       TEXT NOT NULL DEFAULT '',
    country    TEXT NOT NULL DEFAULT '',
    interest   TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_members_created_at ON members (created_at);
`

// DB wraps a pgx pool and implements domain.Database.
type DB struct {
	Pool *pgxpool.Pool
}

// New connects to the database at url and verifies the connection.
func New(ctx context.Context, url string) (*DB, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{Pool: pool}, nil
}

// Init creates the members table if it does not exist. CREATE TABLE IF NOT
// EXISTS alone can still collide in the catalog when run concurrently, so
// the statement runs under a transaction-scoped advisory lock.
func (d *DB) Init(ctx context.Context) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", initLockKey); err != nil {
		return fmt.Errorf("acquire init lock: %w", err)
	}
	if _, err := tx.Exec(ctx, createMembersTable); err != nil {
		return fmt.Errorf("create members table: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit init: %w", err)
	}
	return nil
}

// Members acquires a pooled connection for the caller. Closing the returned
// store releases it.
func (d *DB) Members(ctx context.Context) (domain.MemberStore, error) {
	conn, err := d.Pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &MemberRepository{conn: conn}, nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

func (d *DB) Close() error {
	d.Pool.Close()
	return nil
}
