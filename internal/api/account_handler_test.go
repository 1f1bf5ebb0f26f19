package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/verdant-api/internal/domain"
	"github.com/verdantlabs/verdant-api/internal/service"
	"github.com/verdantlabs/verdant-api/internal/store"
)

type stubAccountService struct {
	user *domain.User
	err  error

	changedCurrent string
	changedNew     string
	deleted        uuid.UUID
}

func (s *stubAccountService) GetUser(context.Context, uuid.UUID) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubAccountService) ChangePassword(_ context.Context, _ uuid.UUID, current, updated string) error {
	s.changedCurrent = current
	s.changedNew = updated
	return s.err
}

func (s *stubAccountService) DeleteAccount(_ context.Context, userID uuid.UUID) error {
	s.deleted = userID
	return s.err
}

func TestAccountGet(t *testing.T) {
	t.Parallel()

	user := &domain.User{ID: uuid.New(), Email: "player@example.com", CreatedAt: time.Now().UTC()}
	handler := NewAccountHandler(&stubAccountService{user: user})

	rec := httptest.NewRecorder()
	handler.Get(rec, authedRequest(http.MethodGet, "/api/account", "", user.ID))

	require.Equal(t, http.StatusOK, rec.Code)
	var got accountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, "player@example.com", got.Email)
	require.NotContains(t, rec.Body.String(), "password")
}

func TestAccountGetNotFound(t *testing.T) {
	t.Parallel()

	handler := NewAccountHandler(&stubAccountService{err: store.ErrUserNotFound})
	rec := httptest.NewRecorder()
	handler.Get(rec, authedRequest(http.MethodGet, "/api/account", "", uuid.New()))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccountChangePassword(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"current_password":"old-password-value","new_password":"new-password-value"}`,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "wrong current password",
			body:       `{"current_password":"not-the-password","new_password":"new-password-value"}`,
			serviceErr: service.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "new password too short",
			body:       `{"current_password":"old-password-value","new_password":"short"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing current password",
			body:       `{"new_password":"new-password-value"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			stub := &stubAccountService{err: tc.serviceErr}
			handler := NewAccountHandler(stub)

			rec := httptest.NewRecorder()
			handler.ChangePassword(rec, authedRequest(http.MethodPut, "/api/account/password", tc.body, uuid.New()))

			require.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusNoContent {
				require.Equal(t, "old-password-value", stub.changedCurrent)
				require.Equal(t, "new-password-value", stub.changedNew)
			}
			if tc.wantStatus == http.StatusBadRequest {
				require.Empty(t, stub.changedNew, "validation failures never reach the service")
				require.NotContains(t, strings.ToLower(rec.Body.String()), "short", "the response never echoes password values")
			}
		})
	}
}

func TestAccountDelete(t *testing.T) {
	t.Parallel()

	stub := &stubAccountService{}
	handler := NewAccountHandler(stub)
	userID := uuid.New()

	rec := httptest.NewRecorder()
	handler.Delete(rec, authedRequest(http.MethodDelete, "/api/account", "", userID))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, userID, stub.deleted)
}
