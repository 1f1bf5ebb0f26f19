package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/verdantlabs/verdant-api/internal/api/shared"
	"github.com/verdantlabs/verdant-api/internal/domain"
	"github.com/verdantlabs/verdant-api/internal/service"
)

// DiscoveryService is the slice of the game service the discovery
// endpoints consume.
type DiscoveryService interface {
	Explore(ctx context.Context, userID uuid.UUID) (*service.EncounterView, error)
	ClaimDiscovery(ctx context.Context, userID uuid.UUID) (*service.ClaimResult, error)
	CancelExploration(ctx context.Context, userID uuid.UUID) error
	ListDiscoveries(ctx context.Context, userID uuid.UUID) (*domain.DiscoveryState, *service.ExploreStatus, error)
	CurrentConditions(ctx context.Context) domain.Conditions
}

// DiscoveryHandler handles exploration and discovery API requests.
type DiscoveryHandler struct {
	service DiscoveryService
}

// NewDiscoveryHandler creates a DiscoveryHandler.
func NewDiscoveryHandler(service DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{service: service}
}

// Explore handles POST /explore.
func (h *DiscoveryHandler) Explore(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	view, err := h.service.Explore(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// Claim handles POST /explore/claim.
func (h *DiscoveryHandler) Claim(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	result, err := h.service.ClaimDiscovery(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Cancel handles DELETE /explore/current.
func (h *DiscoveryHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.CancelExploration(r.Context(), userID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// discoveriesResponse is the payload for the discovery list endpoint.
type discoveriesResponse struct {
	Discoveries []domain.Discovery     `json:"discoveries"`
	Unique      int                    `json:"unique_count"`
	RarityCount map[domain.Rarity]int  `json:"rarity_counts"`
	Status      *service.ExploreStatus `json:"status"`
}

// List handles GET /discoveries.
func (h *DiscoveryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	state, status, err := h.service.ListDiscoveries(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	discoveries := state.Discoveries
	if discoveries == nil {
		discoveries = []domain.Discovery{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, discoveriesResponse{
		Discoveries: discoveries,
		Unique:      state.UniqueDiscoveryCount(),
		RarityCount: state.RarityCounts,
		Status:      status,
	})
}

// Conditions handles GET /explore/conditions.
func (h *DiscoveryHandler) Conditions(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.service.CurrentConditions(r.Context()))
}
