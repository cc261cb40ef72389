package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	return NewService(repo, NewBcryptHasher(bcrypt.MinCost)), repo
}

func TestServiceCreateAndFindByIdentifier(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.Create(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, svc.Verify("secret1", created.PasswordHash))

	byName, err := svc.FindByIdentifier(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byEmail, err := svc.FindByIdentifier(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	// The login path does not fold case.
	_, err = svc.FindByIdentifier(ctx, "ALICE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Create(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "alice", "other@example.com", "secret1")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = svc.Create(ctx, "bob", "alice@example.com", "secret1")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestServiceFindPublicFoldsCase(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	repo.Put(User{ID: 1, Username: "alice", Email: "a@example.com", Slug: "alice-smith"})
	repo.Put(User{ID: 2, Username: "bob", Email: "b@example.com"})

	u, err := svc.FindPublic(ctx, "ALICE-SMITH")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	u, err = svc.FindPublic(ctx, "Bob")
	require.NoError(t, err)
	assert.Equal(t, int64(2), u.ID)

	_, err = svc.FindPublic(ctx, "  ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceUpdateProfileAndTouch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	u, err := svc.Create(ctx, "alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	p := ProfileOf(u)
	p.FullName = "Alice Smith"
	p.Age = 31
	require.NoError(t, svc.UpdateProfile(ctx, u.ID, p))
	require.NoError(t, svc.TouchLastLogin(ctx, u.ID))

	got, err := svc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", got.FullName)
	assert.Equal(t, 31, got.Age)
	assert.NotNil(t, got.LastLogin)
}

func TestServiceUnconfigured(t *testing.T) {
	var svc *Service
	_, err := svc.GetByID(context.Background(), 1)
	assert.Error(t, err)
}
