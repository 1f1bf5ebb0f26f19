package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/verdant-api/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-jwt-secret-that-is-32-chars-long",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 1440,
	}
}

func newTestService(t *testing.T, now func() time.Time) *hmacJWTService {
	t.Helper()
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err, "Failed to create JWT service")
	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)
	if now != nil {
		impl.timeFunc = now
	}
	return impl
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	cfg.JWTSecret = "too-short"
	_, err := NewJWTService(cfg)
	require.Error(t, err)
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	svc := newTestService(t, func() time.Time { return fixedTime })

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, fixedTime.Add(60*time.Minute), claims.ExpiresAt)
}

func TestValidateTokenExpired(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, func() time.Time { return issuedAt })

	token, err := svc.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	// Move past the lifetime plus the clock skew allowance.
	svc.timeFunc = func() time.Time { return issuedAt.Add(63 * time.Minute) }
	_, err = svc.ValidateToken(context.Background(), token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenMalformed(t *testing.T) {
	t.Parallel()
	svc := newTestService(t, nil)

	_, err := svc.ValidateToken(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenWrongSigningKey(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	token, err := svc.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	cfg := testAuthConfig()
	cfg.JWTSecret = "another-secret-that-is-32-chars-long!!"
	other, err := NewJWTService(cfg)
	require.NoError(t, err)

	_, err = other.ValidateToken(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	svc := newTestService(t, func() time.Time { return fixedTime })

	refresh, err := svc.GenerateRefreshToken(context.Background(), userID)
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)
	assert.Equal(t, fixedTime.Add(1440*time.Minute), claims.ExpiresAt)
}

func TestTokenTypeEnforcement(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, nil)
	userID := uuid.New()

	access, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(context.Background(), userID)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), refresh)
	require.ErrorIs(t, err, ErrWrongTokenType,
		"a refresh token must not pass as an access token")

	_, err = svc.ValidateRefreshToken(context.Background(), access)
	require.ErrorIs(t, err, ErrWrongTokenType,
		"an access token must not pass as a refresh token")
}

func TestBcryptVerifier(t *testing.T) {
	t.Parallel()

	verifier := NewBcryptVerifier()
	hashed := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // "password"

	require.NoError(t, verifier.Compare(hashed, "password"))
	require.Error(t, verifier.Compare(hashed, "wrong-password"))
}
