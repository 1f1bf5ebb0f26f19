package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/verdant-api/internal/api/shared"
	"github.com/verdantlabs/verdant-api/internal/service/auth"
)

// stubJWTService validates exactly one known token.
type stubJWTService struct {
	token  string
	userID uuid.UUID
	err    error
}

func (s *stubJWTService) GenerateToken(context.Context, uuid.UUID) (string, error) {
	return s.token, nil
}

func (s *stubJWTService) ValidateToken(_ context.Context, token string) (*auth.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	if token != s.token {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: s.userID}, nil
}

func (s *stubJWTService) GenerateRefreshToken(context.Context, uuid.UUID) (string, error) {
	return s.token, nil
}

func (s *stubJWTService) ValidateRefreshToken(_ context.Context, token string) (*auth.Claims, error) {
	return s.ValidateToken(context.Background(), token)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	testCases := []struct {
		name       string
		header     string
		svcErr     error
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "malformed", header: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer wrong-token", wantStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer good-token", svcErr: auth.ErrExpiredToken, wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good-token", wantStatus: http.StatusOK},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			jwt := &stubJWTService{token: "good-token", userID: userID, err: tc.svcErr}
			m := NewAuthMiddleware(jwt)

			var gotUserID uuid.UUID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/progression", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			m.Authenticate(next).ServeHTTP(rec, req)

			require.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusOK {
				require.Equal(t, userID, gotUserID)
			} else {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				require.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetUserID(req)
	require.False(t, ok)

	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	got, ok := GetUserID(req.WithContext(ctx))
	require.True(t, ok)
	require.Equal(t, userID, got)
}
