package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/verdantlabs/verdant-api/internal/api/shared"
)

// requireUserID extracts the authenticated user's UUID from the request
// context, where the auth middleware placed it. Writes a 401 response and
// returns false when it is missing.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}
