package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/verdantlabs/verdant-api/internal/domain"
)

// AchievementStore persists the per-user achievement ledger.
type AchievementStore interface {
	// Get retrieves the user's achievement state.
	// Returns ErrStateNotFound when the user has never saved one.
	Get(ctx context.Context, userID uuid.UUID) (*domain.AchievementState, error)

	// Save writes the achievement state, creating the record on first save.
	Save(ctx context.Context, userID uuid.UUID, state *domain.AchievementState) error

	// WithTx returns an AchievementStore bound to the provided transaction.
	WithTx(tx *sql.Tx) AchievementStore
}
