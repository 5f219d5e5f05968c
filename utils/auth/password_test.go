package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Parallel()

	t.Run("hashes a valid password", func(t *testing.T) {
		t.Parallel()
		hash, err := HashPassword("correct-horse-battery")
		require.NoError(t, err)
		require.NotEmpty(t, hash)

		// The hash must never equal the plaintext
		assert.NotEqual(t, "correct-horse-battery", hash)
	})

	t.Run("rejects passwords below the minimum length", func(t *testing.T) {
		t.Parallel()
		hash, err := HashPassword("short")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
		assert.Empty(t, hash)
	})

	t.Run("same password hashes differently each time", func(t *testing.T) {
		t.Parallel()
		first, err := HashPassword("correct-horse-battery")
		require.NoError(t, err)
		second, err := HashPassword("correct-horse-battery")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct-horse-battery")
	require.NoError(t, err)

	t.Run("accepts the matching password", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, VerifyPassword(hash, "correct-horse-battery"))
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		t.Parallel()
		err := VerifyPassword(hash, "wrong-password-entirely")
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("rejects an empty password", func(t *testing.T) {
		t.Parallel()
		err := VerifyPassword(hash, "")
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})
}

func TestErrPasswordTooShortNamesTheMinimum(t *testing.T) {
	t.Parallel()

	assert.Contains(t, ErrPasswordTooShort.Error(), "8")
}
