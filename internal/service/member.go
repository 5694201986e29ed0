package service

import (
	"context"
	"fmt"

	"github.com/msomdec/ocean-watch/internal/domain"
)

// MemberService handles signups and the member listing.
type MemberService struct {
	db domain.Database
}

// NewMemberService creates a new MemberService.
func NewMemberService(db domain.Database) *MemberService {
	return &MemberService{db: db}
}

// Signup validates the raw input and stores the new member.
//
// Invalid input returns a *ValidationError and storage is never touched.
// A taken email returns an error matching domain.ErrDuplicateEmail.
func (s *MemberService) Signup(ctx context.Context, in domain.SignupInput) (*domain.Member, error) {
	member, messages := ValidateSignup(in)
	if len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}

	store, err := s.db.Members(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire member store: %w", err)
	}
	defer store.Close()

	if err := store.Insert(ctx, member); err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}
	return member, nil
}

// ListAll returns every member, newest first.
func (s *MemberService) ListAll(ctx context.Context) ([]domain.Member, error) {
	store, err := s.db.Members(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire member store: %w", err)
	}
	defer store.Close()

	members, err := store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}
