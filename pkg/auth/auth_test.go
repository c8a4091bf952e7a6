package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signHS256(t *testing.T, claims jwt.Claims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTValidator_ValidateToken(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SigningMethod: "HS256", SecretKey: testSecret, Issuer: "todos"})
	require.NoError(t, err)

	valid := jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    "todos",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	t.Run("Should accept a valid bearer token", func(t *testing.T) {
		claims, err := validator.ValidateToken("Bearer " + signHS256(t, valid, testSecret))
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.UserID())
	})

	t.Run("Should reject a missing token", func(t *testing.T) {
		_, err := validator.ValidateToken("Bearer ")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		expired := valid
		expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		_, err := validator.ValidateToken(signHS256(t, expired, testSecret))
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Should reject a wrong signature", func(t *testing.T) {
		_, err := validator.ValidateToken(signHS256(t, valid, "other-secret"))
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("Should reject a foreign issuer", func(t *testing.T) {
		foreign := valid
		foreign.Issuer = "elsewhere"
		_, err := validator.ValidateToken(signHS256(t, foreign, testSecret))
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("Should reject a token without subject", func(t *testing.T) {
		anonymous := valid
		anonymous.Subject = ""
		_, err := validator.ValidateToken(signHS256(t, anonymous, testSecret))
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := validator.ValidateToken("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewJWTValidator_Config(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{SigningMethod: "HS256"})
	assert.Error(t, err)

	_, err = NewJWTValidator(JWTConfig{SigningMethod: "RS256"})
	assert.Error(t, err)

	_, err = NewJWTValidator(JWTConfig{SigningMethod: "ES512", SecretKey: "x"})
	assert.Error(t, err)
}

func TestSlidingWindowLimiter(t *testing.T) {
	ctx := context.Background()
	limiter := NewSlidingWindowLimiter(2, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, _ := limiter.Allow(ctx, "k")
	assert.False(t, allowed)

	other, _ := limiter.Allow(ctx, "other")
	assert.True(t, other)

	now = now.Add(61 * time.Second)
	allowed, _ = limiter.Allow(ctx, "k")
	assert.True(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "k"))
}

func TestUserRateLimiter(t *testing.T) {
	limiter := NewUserRateLimiter(1)
	assert.Equal(t, 1, limiter.Limit())

	first, _ := limiter.Allow(context.Background(), "alice")
	second, _ := limiter.Allow(context.Background(), "alice")
	bob, _ := limiter.Allow(context.Background(), "bob")

	assert.True(t, first)
	assert.False(t, second)
	assert.True(t, bob)
}
