package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/verdantlabs/verdant-api/internal/domain"
)

// ProgressionStore persists the per-user progression ledger.
type ProgressionStore interface {
	// Get retrieves the user's progression ledger.
	// Returns ErrStateNotFound when the user has never saved one.
	Get(ctx context.Context, userID uuid.UUID) (*domain.ProgressionState, error)

	// Save writes the ledger, creating the record on first save and
	// bumping its version on every subsequent one.
	Save(ctx context.Context, userID uuid.UUID, state *domain.ProgressionState) error

	// WithTx returns a ProgressionStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ProgressionStore
}
