package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/verdantlabs/verdant-api/internal/api/shared"
	"github.com/verdantlabs/verdant-api/internal/domain"
	"github.com/verdantlabs/verdant-api/internal/service"
)

// LessonService is the slice of the game service the lesson endpoints
// consume.
type LessonService interface {
	StartLesson(ctx context.Context, userID uuid.UUID, lessonID string) (*domain.ActiveLesson, error)
	SubmitAnswer(ctx context.Context, userID uuid.UUID, challengeID string, correct bool, timeSpent time.Duration) (*service.AnswerResult, error)
	CompleteLesson(ctx context.Context, userID uuid.UUID) (*service.LessonSummary, error)
	AbandonLesson(ctx context.Context, userID uuid.UUID) error
	CompleteUnit(ctx context.Context, userID uuid.UUID, unitID string) (*service.LessonSummary, error)
	DueReviews(ctx context.Context, userID uuid.UUID) ([]domain.ReviewEntry, error)
}

// LessonHandler handles lesson session and review queue API requests.
type LessonHandler struct {
	service LessonService
}

// NewLessonHandler creates a LessonHandler.
func NewLessonHandler(service LessonService) *LessonHandler {
	return &LessonHandler{service: service}
}

// Start handles POST /lessons.
func (h *LessonHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req StartLessonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	active, err := h.service.StartLesson(r.Context(), userID, req.LessonID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, active)
}

// SubmitAnswer handles POST /lessons/current/answers.
func (h *LessonHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.service.SubmitAnswer(r.Context(), userID, req.ChallengeID,
		*req.Correct, time.Duration(req.TimeSpentMs)*time.Millisecond)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Complete handles POST /lessons/current/complete.
func (h *LessonHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.service.CompleteLesson(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// Abandon handles DELETE /lessons/current.
func (h *LessonHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.AbandonLesson(r.Context(), userID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteUnit handles POST /units/complete.
func (h *LessonHandler) CompleteUnit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CompleteUnitRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	summary, err := h.service.CompleteUnit(r.Context(), userID, req.UnitID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// DueReviews handles GET /reviews/due.
func (h *LessonHandler) DueReviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	due, err := h.service.DueReviews(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if due == nil {
		due = []domain.ReviewEntry{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, due)
}
