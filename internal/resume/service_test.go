package resume

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-site/internal/users"
)

func newTestService() (*Service, *users.MemoryRepo, *MemoryRepo) {
	userRepo := users.NewMemoryRepo()
	repo := NewMemoryRepo()
	return NewService(users.NewService(userRepo, nil), repo), userRepo, repo
}

func TestServiceViewBySlugIgnoresCase(t *testing.T) {
	svc, userRepo, _ := newTestService()
	userRepo.Put(users.User{ID: 5, Username: "alice", Slug: "alice-smith", FullName: "Alice"})

	view, err := svc.View(context.Background(), Signals{Slug: "ALICE-SMITH"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), view.User.ID)
	assert.False(t, view.IsOwner)

	view, err = svc.View(context.Background(), Signals{PathSegment: "Alice", ViewerID: 5}, Options{})
	require.NoError(t, err)
	assert.True(t, view.IsOwner)
}

func TestServiceViewIDBeatsPath(t *testing.T) {
	svc, userRepo, _ := newTestService()
	userRepo.Put(users.User{ID: 5, Username: "bob"})
	userRepo.Put(users.User{ID: 6, Username: "alice"})

	view, err := svc.View(context.Background(), Signals{ID: "5", PathSegment: "alice"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "bob", view.User.Username)
}

func TestServiceViewErrors(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.View(context.Background(), Signals{}, Options{})
	assert.ErrorIs(t, err, ErrUnresolved)

	_, err = svc.View(context.Background(), Signals{Slug: "ghost"}, Options{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.View(context.Background(), Signals{ID: "404"}, Options{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newTestService()
	userRepo.Put(users.User{ID: 1, Username: "alice", Email: "alice@example.com", Age: 30})

	msgs, err := svc.UpdateProfile(ctx, 1, ProfileForm{
		Fullname: " Alice <Smith> ",
		Email:    "new@example.com",
		Age:      "31",
		GitHub:   "https://github.com/alice",
	})
	require.NoError(t, err)
	assert.Empty(t, msgs)

	u, err := userRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice <Smith>", u.FullName)
	assert.Equal(t, "new@example.com", u.Email)
	assert.Equal(t, 31, u.Age)
	assert.Equal(t, "https://github.com/alice", u.GitHub)
}

func TestServiceUpdateProfileRejectsAgeAndKeepsRow(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newTestService()
	userRepo.Put(users.User{ID: 1, Username: "alice", Email: "alice@example.com", FullName: "Alice", Age: 30})

	msgs, err := svc.UpdateProfile(ctx, 1, ProfileForm{Fullname: "Mallory", Email: "alice@example.com", Age: "200"})
	assert.ErrorIs(t, err, ErrInvalidProfile)
	require.NotEmpty(t, msgs)
	assert.Contains(t, msgs[0], "valid age")

	u, err := userRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.FullName)
	assert.Equal(t, 30, u.Age)
}

func TestServiceUpdateProfileEmailTaken(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newTestService()
	userRepo.Put(users.User{ID: 1, Username: "alice", Email: "alice@example.com"})
	userRepo.Put(users.User{ID: 2, Username: "bob", Email: "bob@example.com"})

	msgs, err := svc.UpdateProfile(ctx, 1, ProfileForm{Email: "bob@example.com"})
	assert.ErrorIs(t, err, ErrInvalidProfile)
	assert.Equal(t, []string{"Email is already in use"}, msgs)
}

func TestFormOfOmitsZeroAge(t *testing.T) {
	assert.Equal(t, "", FormOf(users.User{}).Age)
	assert.Equal(t, "42", FormOf(users.User{Age: 42}).Age)
}

func TestServiceEditRoundTripIsStable(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newTestService()
	userRepo.Put(users.User{ID: 1, Username: "tom", Email: "tom@example.com"})

	_, err := svc.UpdateProfile(ctx, 1, ProfileForm{
		Fullname: "Tom & Jerry",
		Email:    "tom@example.com",
		Summary:  `Likes "cheese" <and> chases`,
		Age:      "30",
	})
	require.NoError(t, err)

	// Resubmitting the prefilled form must not change anything.
	for i := 0; i < 3; i++ {
		u, err := userRepo.GetByID(ctx, 1)
		require.NoError(t, err)
		_, err = svc.UpdateProfile(ctx, 1, FormOf(u))
		require.NoError(t, err)
	}

	u, err := userRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Tom & Jerry", u.FullName)
	assert.Equal(t, `Likes "cheese" <and> chases`, u.Summary)
	assert.Equal(t, 30, u.Age)
}
