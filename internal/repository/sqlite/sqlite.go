package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/msomdec/ocean-watch/internal/domain"
	"github.com/msomdec/ocean-watch/internal/repository/sqlite/schema"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection pool and implements domain.Database.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// The parent directory is created if missing. It enables WAL mode and a
// busy timeout so concurrent writers wait instead of failing.
func New(dbPath string) (*DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	// Set a reasonable connection pool for SQLite.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// NewFromDB wraps an already opened *sql.DB.
func NewFromDB(db *sql.DB) *DB {
	return &DB{SqlDB: db}
}

// Init creates the members table if it does not exist.
func (d *DB) Init(ctx context.Context) error {
	if err := schema.Apply(ctx, d.SqlDB); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Members acquires a dedicated connection from the pool and returns a
// MemberRepository bound to it. Closing the repository releases the
// connection.
func (d *DB) Members(ctx context.Context) (domain.MemberStore, error) {
	conn, err := d.SqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	return &MemberRepository{conn: conn}, nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.SqlDB.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.SqlDB.Close()
}
