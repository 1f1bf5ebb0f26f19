package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/verdantlabs/verdant-api/internal/api/shared"
	"github.com/verdantlabs/verdant-api/internal/domain"
)

// SettingsService is the slice of the game service the settings endpoints
// consume.
type SettingsService interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, settings *domain.Settings) (*domain.Settings, error)
}

// SettingsHandler handles user preference API requests.
type SettingsHandler struct {
	service SettingsService
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(service SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// Get handles GET /settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	settings, err := h.service.GetSettings(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}

// Update handles PUT /settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var settings domain.Settings
	if err := shared.DecodeJSON(r, &settings); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	updated, err := h.service.UpdateSettings(r.Context(), userID, &settings)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}
