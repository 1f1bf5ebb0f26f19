package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/verdantlabs/verdant-api/internal/domain"
)

// DiscoveryStore persists the per-user discovery ledger and exploration gate.
type DiscoveryStore interface {
	// Get retrieves the user's discovery state.
	// Returns ErrStateNotFound when the user has never saved one.
	Get(ctx context.Context, userID uuid.UUID) (*domain.DiscoveryState, error)

	// Save writes the discovery state, creating the record on first save.
	Save(ctx context.Context, userID uuid.UUID, state *domain.DiscoveryState) error

	// WithTx returns a DiscoveryStore bound to the provided transaction.
	WithTx(tx *sql.Tx) DiscoveryStore
}
