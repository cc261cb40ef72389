package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("verifies its own hash", func(t *testing.T) {
		for _, p := range []string{"secret1", "pässwörd", "a very long passphrase with spaces"} {
			hash, err := hasher.Hash(p)
			require.NoError(t, err)
			assert.NotEqual(t, p, hash)
			assert.True(t, hasher.Verify(p, hash), "password %q", p)
		}
	})

	t.Run("rejects a different password", func(t *testing.T) {
		hash, err := hasher.Hash("secret1")
		require.NoError(t, err)
		assert.False(t, hasher.Verify("secret2", hash))
		assert.False(t, hasher.Verify("", hash))
	})

	t.Run("salts every hash", func(t *testing.T) {
		h1, err := hasher.Hash("secret1")
		require.NoError(t, err)
		h2, err := hasher.Hash("secret1")
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})

	t.Run("malformed hash is a mismatch", func(t *testing.T) {
		for _, h := range []string{"", "plain", "$2a$10$short", "$argon2id$v=19$garbage"} {
			assert.False(t, hasher.Verify("secret1", h), "hash %q", h)
		}
	})

	t.Run("empty password is refused", func(t *testing.T) {
		_, err := hasher.Hash("")
		assert.ErrorIs(t, err, ErrEmptyPassword)
	})
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).Cost)
	assert.Equal(t, 12, NewBcryptHasher(12).Cost)
}
