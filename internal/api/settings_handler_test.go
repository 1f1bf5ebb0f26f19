package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/verdant-api/internal/domain"
)

type stubSettingsService struct {
	settings *domain.Settings
	err      error
	updated  *domain.Settings
}

func (s *stubSettingsService) GetSettings(context.Context, uuid.UUID) (*domain.Settings, error) {
	return s.settings, s.err
}

func (s *stubSettingsService) UpdateSettings(_ context.Context, _ uuid.UUID, settings *domain.Settings) (*domain.Settings, error) {
	s.updated = settings
	return settings, s.err
}

func TestSettingsGet(t *testing.T) {
	t.Parallel()

	handler := NewSettingsHandler(&stubSettingsService{settings: domain.NewSettings()})
	rec := httptest.NewRecorder()
	handler.Get(rec, authedRequest(http.MethodGet, "/api/settings", "", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Settings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "en", got.Language)
}

func TestSettingsUpdate(t *testing.T) {
	t.Parallel()

	stub := &stubSettingsService{}
	handler := NewSettingsHandler(stub)

	body := `{"sound_enabled":false,"theme":"dark","language":"es"}`
	rec := httptest.NewRecorder()
	handler.Update(rec, authedRequest(http.MethodPut, "/api/settings", body, uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.updated)
	require.False(t, stub.updated.SoundEnabled)
	require.Equal(t, "dark", stub.updated.Theme)
}
