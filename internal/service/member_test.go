package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/msomdec/ocean-watch/internal/domain"
	"github.com/msomdec/ocean-watch/internal/repository/sqlite"
	"github.com/msomdec/ocean-watch/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemberService(t *testing.T) (*service.MemberService, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Init(context.Background()))
	t.Cleanup(func() { db.Close() })
	return service.NewMemberService(db), db
}

// trackingDB counts acquired and released stores and can fail on demand.
type trackingDB struct {
	mu        sync.Mutex
	acquired  int
	released  int
	insertErr error
	listErr   error
	members   []domain.Member
}

func (d *trackingDB) Init(context.Context) error { return nil }
func (d *trackingDB) Ping(context.Context) error { return nil }
func (d *trackingDB) Close() error               { return nil }

func (d *trackingDB) Members(context.Context) (domain.MemberStore, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.acquired++
	return &trackingStore{db: d}, nil
}

type trackingStore struct {
	db *trackingDB
}

func (s *trackingStore) Insert(_ context.Context, m *domain.Member) error {
	if s.db.insertErr != nil {
		return s.db.insertErr
	}
	m.ID = int64(len(s.db.members) + 1)
	s.db.members = append(s.db.members, *m)
	return nil
}

func (s *trackingStore) ListAll(context.Context) ([]domain.Member, error) {
	if s.db.listErr != nil {
		return nil, s.db.listErr
	}
	return s.db.members, nil
}

func (s *trackingStore) Close() error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.released++
	return nil
}

func TestMemberService_Signup_Success(t *testing.T) {
	svc, _ := newTestMemberService(t)
	ctx := context.Background()

	member, err := svc.Signup(ctx, domain.SignupInput{
		Name:     "Amy",
		Email:    "Amy@Example.com ",
		Interest: "cleanup",
	})
	require.NoError(t, err)

	assert.NotZero(t, member.ID)
	assert.False(t, member.CreatedAt.IsZero())
	assert.Equal(t, "Amy", member.Name)
	assert.Equal(t, "amy@example.com", member.Email)

	members, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "amy@example.com", members[0].Email)
	assert.Equal(t, "cleanup", members[0].Interest)
}

func TestMemberService_Signup_Invalid(t *testing.T) {
	svc, _ := newTestMemberService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, domain.SignupInput{Name: " ", Email: "bad"})
	require.Error(t, err)

	var verr *service.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{service.MsgNameRequired, service.MsgEmailInvalid}, verr.Messages)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	members, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestMemberService_Signup_InvalidSkipsStorage(t *testing.T) {
	db := &trackingDB{}
	svc := service.NewMemberService(db)

	_, err := svc.Signup(context.Background(), domain.SignupInput{})
	require.Error(t, err)
	assert.Zero(t, db.acquired)
}

func TestMemberService_Signup_DuplicateEmail(t *testing.T) {
	svc, _ := newTestMemberService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, domain.SignupInput{Name: "Amy", Email: "amy@example.com"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, domain.SignupInput{Name: "Other Amy", Email: "  AMY@example.com"})
	assert.True(t, errors.Is(err, domain.ErrDuplicateEmail), "got %v", err)

	members, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestMemberService_ListAll_NewestFirst(t *testing.T) {
	svc, _ := newTestMemberService(t)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := svc.Signup(ctx, domain.SignupInput{Name: "N", Email: email})
		require.NoError(t, err)
	}

	members, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, "c@example.com", members[0].Email)
	assert.Equal(t, "a@example.com", members[2].Email)
	for i := 1; i < len(members); i++ {
		assert.False(t, members[i-1].CreatedAt.Before(members[i].CreatedAt))
	}
}

func TestMemberService_ReleasesStoreOnEveryPath(t *testing.T) {
	faultErr := errors.New("disk I/O error")
	db := &trackingDB{}
	svc := service.NewMemberService(db)
	ctx := context.Background()

	_, err := svc.Signup(ctx, domain.SignupInput{Name: "Amy", Email: "amy@example.com"})
	require.NoError(t, err)

	db.insertErr = domain.ErrDuplicateEmail
	_, err = svc.Signup(ctx, domain.SignupInput{Name: "Amy", Email: "amy@example.com"})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	db.insertErr = faultErr
	_, err = svc.Signup(ctx, domain.SignupInput{Name: "Amy", Email: "amy@example.com"})
	require.ErrorIs(t, err, faultErr)
	assert.False(t, errors.Is(err, domain.ErrDuplicateEmail))

	db.listErr = faultErr
	_, err = svc.ListAll(ctx)
	require.ErrorIs(t, err, faultErr)

	assert.Equal(t, 4, db.acquired)
	assert.Equal(t, db.acquired, db.released)
}
