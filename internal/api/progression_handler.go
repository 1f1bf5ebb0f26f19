package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/verdantlabs/verdant-api/internal/api/shared"
	"github.com/verdantlabs/verdant-api/internal/service"
)

// ProgressionService is the slice of the game service the progression
// endpoints consume.
type ProgressionService interface {
	GetProgression(ctx context.Context, userID uuid.UUID) (*service.ProgressionView, error)
	RefillHearts(ctx context.Context, userID uuid.UUID) (*service.ProgressionView, error)
	BuyStreakFreeze(ctx context.Context, userID uuid.UUID) (*service.ProgressionView, error)
	SetDailyGoal(ctx context.Context, userID uuid.UUID, goal int) (*service.ProgressionView, error)
	ResetProgress(ctx context.Context, userID uuid.UUID) error
}

// ProgressionHandler handles progression ledger API requests.
type ProgressionHandler struct {
	service ProgressionService
}

// NewProgressionHandler creates a ProgressionHandler.
func NewProgressionHandler(service ProgressionService) *ProgressionHandler {
	return &ProgressionHandler{service: service}
}

// Get handles GET /progression.
func (h *ProgressionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetProgression(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// RefillHearts handles POST /progression/hearts/refill.
func (h *ProgressionHandler) RefillHearts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	view, err := h.service.RefillHearts(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// BuyStreakFreeze handles POST /progression/streak-freezes.
func (h *ProgressionHandler) BuyStreakFreeze(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	view, err := h.service.BuyStreakFreeze(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// SetDailyGoal handles PUT /progression/daily-goal.
func (h *ProgressionHandler) SetDailyGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req SetDailyGoalRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	view, err := h.service.SetDailyGoal(r.Context(), userID, req.Goal)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// Reset handles POST /progression/reset. It wipes every container, not
// just the ledger.
func (h *ProgressionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.ResetProgress(r.Context(), userID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
