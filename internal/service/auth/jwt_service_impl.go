package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/verdantlabs/verdant-api/internal/config"
	"github.com/verdantlabs/verdant-api/internal/platform/logger"
)

// tokenKind distinguishes the two token flavors the service issues. The
// kind is embedded in the "type" claim and enforced on validation so a
// refresh token can never stand in for an access token.
type tokenKind string

const (
	accessToken  tokenKind = "access"
	refreshToken tokenKind = "refresh"
)

// expiredErr returns the expiry sentinel for the kind.
func (k tokenKind) expiredErr() error {
	if k == refreshToken {
		return ErrExpiredRefreshToken
	}
	return ErrExpiredToken
}

// invalidErr returns the catch-all sentinel for the kind.
func (k tokenKind) invalidErr() error {
	if k == refreshToken {
		return ErrInvalidRefreshToken
	}
	return ErrInvalidToken
}

// hmacJWTService signs and validates tokens with HMAC-SHA256.
type hmacJWTService struct {
	signingKey           []byte
	tokenLifetime        time.Duration
	refreshTokenLifetime time.Duration
	timeFunc             func() time.Time
	clockSkew            time.Duration
}

// sessionClaims is the wire shape of a token payload.
type sessionClaims struct {
	UserID    uuid.UUID `json:"uid"`
	TokenType string    `json:"type"`
	jwt.RegisteredClaims
}

var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService creates the HMAC token service. Secrets shorter than 32
// characters are rejected outright.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	return &hmacJWTService{
		signingKey:           []byte(cfg.JWTSecret),
		tokenLifetime:        time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		refreshTokenLifetime: time.Duration(cfg.RefreshTokenLifetimeMinutes) * time.Minute,
		timeFunc:             time.Now,
		clockSkew:            2 * time.Minute,
	}, nil
}

// GenerateToken issues a signed access token for the player.
func (s *hmacJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.issue(ctx, userID, accessToken, s.tokenLifetime)
}

// GenerateRefreshToken issues a signed refresh token. Its longer lifetime
// lets clients obtain fresh access tokens without re-authenticating.
func (s *hmacJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.issue(ctx, userID, refreshToken, s.refreshTokenLifetime)
}

// ValidateToken checks an access token and returns its claims.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.parse(ctx, tokenString, accessToken)
}

// ValidateRefreshToken checks a refresh token and returns its claims.
// Failures map to the refresh sentinels, which wrap the base ones.
func (s *hmacJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error) {
	return s.parse(ctx, tokenString, refreshToken)
}

func (s *hmacJWTService) issue(
	ctx context.Context,
	userID uuid.UUID,
	kind tokenKind,
	lifetime time.Duration,
) (string, error) {
	now := s.timeFunc()

	claims := sessionClaims{
		UserID:    userID,
		TokenType: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign token",
			"error", err,
			"user_id", userID,
			"token_type", kind)
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return signed, nil
}

func (s *hmacJWTService) parse(ctx context.Context, tokenString string, kind tokenKind) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	token, err := jwt.ParseWithClaims(
		tokenString,
		&sessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed", "token_type", kind, "reason", "expired")
			return nil, kind.expiredErr()
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token validation failed", "token_type", kind, "reason", "not yet valid")
			if kind == accessToken {
				return nil, ErrTokenNotYetValid
			}
			return nil, kind.invalidErr()
		default:
			log.Debug("token validation failed",
				"token_type", kind,
				"reason", "malformed or bad signature",
				"error_type", fmt.Sprintf("%T", err))
			return nil, kind.invalidErr()
		}
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed", "token_type", kind, "reason", "invalid claims")
		return nil, kind.invalidErr()
	}
	if claims.TokenType != string(kind) {
		log.Debug("token validation failed",
			"token_type", kind,
			"reason", "wrong token type",
			"actual", claims.TokenType)
		return nil, ErrWrongTokenType
	}

	return &Claims{
		UserID:    claims.UserID,
		TokenType: claims.TokenType,
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}
