package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/verdantlabs/verdant-api/internal/domain"
)

// GetSettings returns the user's preferences, falling back to defaults when
// none have been saved.
func (s *GameService) GetSettings(ctx context.Context, userID uuid.UUID) (*domain.Settings, error) {
	settings, err := loadSettings(ctx, s.stores.Settings, userID)
	if err != nil {
		return nil, NewGameServiceError("get settings", "failed to load settings", err)
	}
	return settings, nil
}

// UpdateSettings replaces the user's preferences wholesale. The engine does
// not interpret them; it persists the document and hands it back.
func (s *GameService) UpdateSettings(ctx context.Context, userID uuid.UUID, settings *domain.Settings) (*domain.Settings, error) {
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.txStores(tx).Settings.Save(ctx, userID, settings)
	})
	if err != nil {
		return nil, NewGameServiceError("update settings", "failed to save settings", err)
	}
	return settings, nil
}
