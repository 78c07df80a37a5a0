package auth

import (
	"chat-mirror/errors"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestTokens(t *testing.T) {
	tokens := NewTokens("test_secret_key_long_enough_2026", time.Hour)

	t.Run("should validate a generated token", func(t *testing.T) {
		req := require.New(t)
		token, err := tokens.Generate(42)
		req.NoError(err)

		claims, err := tokens.Validate(token)
		req.NoError(err)
		req.Equal(uint(42), claims.UserID)
		req.Equal("42", claims.Subject)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		req := require.New(t)
		expired, err := NewTokens("test_secret_key_long_enough_2026", -time.Minute).Generate(42)
		req.NoError(err)

		_, err = tokens.Validate(expired)
		req.ErrorIs(err, errors.ErrInvalidToken)
	})

	t.Run("should reject a token signed with another key", func(t *testing.T) {
		req := require.New(t)
		forged, err := NewTokens("another_secret", time.Hour).Generate(42)
		req.NoError(err)

		_, err = tokens.Validate(forged)
		req.ErrorIs(err, errors.ErrInvalidToken)
	})

	t.Run("should reject an unsigned token", func(t *testing.T) {
		req := require.New(t)
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &CustomClaims{UserID: 42}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		req.NoError(err)

		_, err = tokens.Validate(unsigned)
		req.ErrorIs(err, errors.ErrInvalidToken)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		req := require.New(t)
		_, err := tokens.Validate("not.a.token")
		req.ErrorIs(err, errors.ErrInvalidToken)
	})
}

func TestUserIDFromContext(t *testing.T) {
	req := require.New(t)

	_, ok := UserIDFromContext(context.Background())
	req.False(ok)

	id, ok := UserIDFromContext(WithUserID(context.Background(), 7))
	req.True(ok)
	req.Equal(uint(7), id)
}
