package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/verdantlabs/verdant-api/internal/api/shared"
	"github.com/verdantlabs/verdant-api/internal/domain"
	"github.com/verdantlabs/verdant-api/internal/service"
)

// AchievementService is the slice of the game service the achievement
// endpoints consume.
type AchievementService interface {
	ListAchievements(ctx context.Context, userID uuid.UUID) ([]service.AchievementView, error)
	RecentAchievements(ctx context.Context, userID uuid.UUID) ([]domain.Achievement, error)
	AcknowledgeAchievements(ctx context.Context, userID uuid.UUID) error
}

// AchievementHandler handles achievement API requests.
type AchievementHandler struct {
	service AchievementService
}

// NewAchievementHandler creates an AchievementHandler.
func NewAchievementHandler(service AchievementService) *AchievementHandler {
	return &AchievementHandler{service: service}
}

// List handles GET /achievements.
func (h *AchievementHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	views, err := h.service.ListAchievements(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, views)
}

// Recent handles GET /achievements/recent.
func (h *AchievementHandler) Recent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	recent, err := h.service.RecentAchievements(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if recent == nil {
		recent = []domain.Achievement{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, recent)
}

// Acknowledge handles POST /achievements/acknowledge.
func (h *AchievementHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.AcknowledgeAchievements(r.Context(), userID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
