package domain

import "context"

// Database defines lifecycle operations for the underlying database.
// Each implementation (SQLite, Postgres) owns its own schema and
// connection handling, so the storage backend is swappable.
type Database interface {
	// Init creates the members table if it does not exist. It is safe to
	// call on every start and from concurrent callers.
	Init(ctx context.Context) error
	// Members acquires a connection scoped to the caller. The returned
	// store must be closed to release the connection.
	Members(ctx context.Context) (MemberStore, error)
	Ping(ctx context.Context) error
	Close() error
}
