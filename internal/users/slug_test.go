package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugFor(t *testing.T) {
	cases := map[string]string{
		"alice":       "alice",
		"Alice-Smith": "alice-smith",
		" bob42 ":     "bob42",
		"o&#39;neil":  "",
		"jane_doe":    "",
		"-dash":       "",
		"zoë":         "",
		"":            "",
	}
	for in, want := range cases {
		assert.Equal(t, want, SlugFor(in), "SlugFor(%q)", in)
	}
}

func TestServiceCreateAssignsSlug(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	u, err := svc.Create(ctx, "Alice-Smith", "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice-smith", u.Slug)

	found, err := svc.FindPublic(ctx, "alice-smith")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	odd, err := svc.Create(ctx, "o&#39;neil", "oneil@example.com", "secret1")
	require.NoError(t, err)
	assert.Empty(t, odd.Slug)
}

func TestMemoryRepoRejectsNameClaimedAsSlug(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()
	repo.Put(User{ID: 1, Username: "alice", Email: "a@example.com", Slug: "ace"})

	_, err := svc.Create(ctx, "ACE", "b@example.com", "secret1")
	assert.ErrorIs(t, err, ErrAlreadyExists, "a username may not shadow another user's slug")
}
