package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager(JWTConfig{
		Secret: testSecret,
		Expiry: time.Hour,
		Issuer: "conecta-api",
	})

	token, err := manager.GenerateToken(42, "mariana", []string{"user", "monitor"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.PersonID)
	assert.Equal(t, "mariana", claims.Username)
	assert.Equal(t, []string{"user", "monitor"}, claims.Roles)
	assert.Equal(t, "conecta-api", claims.Issuer)
	assert.Equal(t, "mariana", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenFailures(t *testing.T) {
	t.Parallel()

	manager := NewJWTManager(JWTConfig{
		Secret: testSecret,
		Expiry: time.Hour,
		Issuer: "conecta-api",
	})

	t.Run("rejects garbage", func(t *testing.T) {
		t.Parallel()
		_, err := manager.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		t.Parallel()
		other := NewJWTManager(JWTConfig{
			Secret: "a-completely-different-secret-value",
			Expiry: time.Hour,
			Issuer: "conecta-api",
		})
		token, err := other.GenerateToken(1, "intruder", []string{"user"})
		require.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		t.Parallel()
		expired := NewJWTManager(JWTConfig{
			Secret: testSecret,
			Expiry: -time.Minute,
			Issuer: "conecta-api",
		})
		token, err := expired.GenerateToken(1, "late", []string{"user"})
		require.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
