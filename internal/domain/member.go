package domain

import (
	"context"
	"time"
)

// Member is a signup record.
type Member struct {
	ID        int64
	Name      string
	Email     string // Trimmed and lowercased; unique across members
	City      string
	Country   string
	Interest  string
	CreatedAt time.Time
}

// SignupInput holds the raw signup form fields exactly as submitted.
type SignupInput struct {
	Name     string
	Email    string
	City     string
	Country  string
	Interest string
}

// MemberStore is a member repository bound to a single acquired
// connection. Close releases the connection back to the pool.
type MemberStore interface {
	Insert(ctx context.Context, member *Member) error
	ListAll(ctx context.Context) ([]Member, error)
	Close() error
}
