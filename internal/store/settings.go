package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/verdantlabs/verdant-api/internal/domain"
)

// SettingsStore persists per-user app preferences.
type SettingsStore interface {
	// Get retrieves the user's settings.
	// Returns ErrStateNotFound when the user has never saved any.
	Get(ctx context.Context, userID uuid.UUID) (*domain.Settings, error)

	// Save writes the settings, creating the record on first save.
	Save(ctx context.Context, userID uuid.UUID, settings *domain.Settings) error

	// WithTx returns a SettingsStore bound to the provided transaction.
	WithTx(tx *sql.Tx) SettingsStore
}
