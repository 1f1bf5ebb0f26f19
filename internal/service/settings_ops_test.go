package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/verdant-api/internal/domain"
)

func TestGetSettingsDefaults(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestGameService(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	settings, err := svc.GetSettings(context.Background(), uuid.New())
	require.NoError(t, err)
	require.True(t, settings.SoundEnabled)
	require.Equal(t, "en", settings.Language)
	require.Equal(t, "light", settings.Theme)
}

func TestUpdateSettingsRoundTrip(t *testing.T) {
	t.Parallel()
	svc, fakes, _ := newTestGameService(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	userID := uuid.New()
	ctx := context.Background()

	settings := domain.NewSettings()
	settings.MusicEnabled = false
	settings.Theme = "dark"
	settings.Language = "es"

	_, err := svc.UpdateSettings(ctx, userID, settings)
	require.NoError(t, err)

	stored, err := fakes.settings.Get(ctx, userID)
	require.NoError(t, err)
	require.False(t, stored.MusicEnabled)
	require.Equal(t, "dark", stored.Theme)
	require.Equal(t, "es", stored.Language)
}
