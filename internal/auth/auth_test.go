package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestTokenValidator_Validate(t *testing.T) {
	validator := NewTokenValidator("test-secret")

	t.Run("accepts a valid token and extracts the staff identity", func(t *testing.T) {
		tokenString := signedToken(t, "test-secret", jwt.MapClaims{
			"sub":   "staff-1",
			"email": "admin@holaordenes.mx",
			"role":  "admin",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})

		staff, err := validator.Validate(tokenString)

		require.NoError(t, err)
		assert.Equal(t, "staff-1", staff.Uid)
		assert.Equal(t, "admin@holaordenes.mx", staff.Email)
		assert.Equal(t, "admin", staff.Role)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		tokenString := signedToken(t, "other-secret", jwt.MapClaims{"sub": "staff-1"})

		_, err := validator.Validate(tokenString)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		tokenString := signedToken(t, "test-secret", jwt.MapClaims{
			"sub": "staff-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		_, err := validator.Validate(tokenString)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token without a subject", func(t *testing.T) {
		tokenString := signedToken(t, "test-secret", jwt.MapClaims{"email": "x@y.z"})

		_, err := validator.Validate(tokenString)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
