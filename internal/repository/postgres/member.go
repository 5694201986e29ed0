package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/msomdec/ocean-watch/internal/domain"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

const uniqueViolation = "23505"

// MemberRepository implements domain.MemberStore on one acquired pool connection.
type MemberRepository struct {
	conn *pgxpool.Conn
}

func (r *MemberRepository) Insert(ctx context.Context, member *domain.Member) error {
	// Postgres keeps microseconds; truncate so the caller sees what is stored.
	now := time.Now().UTC().Truncate(time.Microsecond)

	query, args, err := insertMemberQuery(ctx, member, now)
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&member.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert member: %w", err)
	}

	member.CreatedAt = now
	return nil
}

func (r *MemberRepository) ListAll(ctx context.Context) ([]domain.Member, error) {
	query, args, err := listMembersQuery(ctx)
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	members, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Member, error) {
		var m domain.Member
		err := row.Scan(&m.ID, &m.Name, &m.Email, &m.City, &m.Country, &m.Interest, &m.CreatedAt)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect members: %w", err)
	}
	if members == nil {
		members = []domain.Member{}
	}
	return members, nil
}

// Close releases the connection back to the pool.
func (r *MemberRepository) Close() error {
	r.conn.Release()
	return nil
}

func insertMemberQuery(ctx context.Context, m *domain.Member, createdAt time.Time) (string, []any, error) {
	q := psql.Insert(
		im.Into("members", "name", "email", "city", "country", "interest", "created_at"),
		im.Values(
			psql.Arg(m.Name),
			psql.Arg(m.Email),
			psql.Arg(m.City),
			psql.Arg(m.Country),
			psql.Arg(m.Interest),
			psql.Arg(createdAt),
		),
		im.Returning("id"),
	)
	return q.Build(ctx)
}

func listMembersQuery(ctx context.Context) (string, []any, error) {
	q := psql.Select(
		sm.Columns("id", "name", "email", "city", "country", "interest", "created_at"),
		sm.From("members"),
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	)
	return q.Build(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
