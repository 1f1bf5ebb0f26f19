package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/verdantlabs/verdant-api/internal/domain"
)

// LearningStore persists the per-user learning state: completed lessons and
// units, the review queue and any in-flight lesson session.
type LearningStore interface {
	// Get retrieves the user's learning state.
	// Returns ErrStateNotFound when the user has never saved one.
	Get(ctx context.Context, userID uuid.UUID) (*domain.LearningState, error)

	// Save writes the learning state, creating the record on first save.
	Save(ctx context.Context, userID uuid.UUID, state *domain.LearningState) error

	// WithTx returns a LearningStore bound to the provided transaction.
	WithTx(tx *sql.Tx) LearningStore
}
