package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/ocean-watch/internal/domain"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// MemberRepository implements domain.MemberStore on a single SQLite connection.
type MemberRepository struct {
	conn *sql.Conn
}

func (r *MemberRepository) Insert(ctx context.Context, member *domain.Member) error {
	now := time.Now().UTC()
	result, err := r.conn.ExecContext(ctx,
		`INSERT INTO members (name, email, city, country, interest, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		member.Name, member.Email, member.City, member.Country, member.Interest, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert member: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	member.ID = id
	member.CreatedAt = now
	return nil
}

func (r *MemberRepository) ListAll(ctx context.Context) ([]domain.Member, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, name, email, city, country, interest, created_at
		 FROM members ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.City, &m.Country, &m.Interest, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return members, nil
}

// Close releases the underlying connection back to the pool.
func (r *MemberRepository) Close() error {
	return r.conn.Close()
}

// isUniqueConstraintError checks if the error is a SQLite unique constraint violation.
func isUniqueConstraintError(err error) bool {
	var sqliteErr *moderncsqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
