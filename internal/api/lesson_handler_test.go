package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/verdant-api/internal/domain"
	"github.com/verdantlabs/verdant-api/internal/service"
)

type stubLessonService struct {
	active  *domain.ActiveLesson
	answer  *service.AnswerResult
	summary *service.LessonSummary
	due     []domain.ReviewEntry
	err     error

	gotLessonID    string
	gotChallengeID string
	gotCorrect     bool
	gotTimeSpent   time.Duration
	gotUnitID      string
}

func (s *stubLessonService) StartLesson(_ context.Context, _ uuid.UUID, lessonID string) (*domain.ActiveLesson, error) {
	s.gotLessonID = lessonID
	return s.active, s.err
}

func (s *stubLessonService) SubmitAnswer(_ context.Context, _ uuid.UUID, challengeID string, correct bool, timeSpent time.Duration) (*service.AnswerResult, error) {
	s.gotChallengeID = challengeID
	s.gotCorrect = correct
	s.gotTimeSpent = timeSpent
	return s.answer, s.err
}

func (s *stubLessonService) CompleteLesson(context.Context, uuid.UUID) (*service.LessonSummary, error) {
	return s.summary, s.err
}

func (s *stubLessonService) AbandonLesson(context.Context, uuid.UUID) error {
	return s.err
}

func (s *stubLessonService) CompleteUnit(_ context.Context, _ uuid.UUID, unitID string) (*service.LessonSummary, error) {
	s.gotUnitID = unitID
	return s.summary, s.err
}

func (s *stubLessonService) DueReviews(context.Context, uuid.UUID) ([]domain.ReviewEntry, error) {
	return s.due, s.err
}

func TestLessonStart(t *testing.T) {
	t.Parallel()

	stub := &stubLessonService{active: &domain.ActiveLesson{LessonID: "lesson-1"}}
	handler := NewLessonHandler(stub)

	rec := httptest.NewRecorder()
	handler.Start(rec, authedRequest(http.MethodPost, "/api/lessons", `{"lesson_id":"lesson-1"}`, uuid.New()))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "lesson-1", stub.gotLessonID)
}

func TestLessonStartValidation(t *testing.T) {
	t.Parallel()

	handler := NewLessonHandler(&stubLessonService{})
	rec := httptest.NewRecorder()
	handler.Start(rec, authedRequest(http.MethodPost, "/api/lessons", `{}`, uuid.New()))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLessonStartConflicts(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
	}{
		{name: "no hearts", err: service.ErrNoHearts},
		{name: "in progress", err: service.ErrLessonInProgress},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			handler := NewLessonHandler(&stubLessonService{err: tc.err})
			rec := httptest.NewRecorder()
			handler.Start(rec, authedRequest(http.MethodPost, "/api/lessons", `{"lesson_id":"lesson-1"}`, uuid.New()))
			require.Equal(t, http.StatusConflict, rec.Code)
		})
	}
}

func TestSubmitAnswerPayload(t *testing.T) {
	t.Parallel()

	stub := &stubLessonService{answer: &service.AnswerResult{Correct: false, HeartsLeft: 4}}
	handler := NewLessonHandler(stub)

	body := `{"challenge_id":"ch-1","correct":false,"time_spent_ms":3500}`
	rec := httptest.NewRecorder()
	handler.SubmitAnswer(rec, authedRequest(http.MethodPost, "/api/lessons/current/answers", body, uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ch-1", stub.gotChallengeID)
	require.False(t, stub.gotCorrect, "an explicit false must survive validation")
	require.Equal(t, 3500*time.Millisecond, stub.gotTimeSpent)

	var got service.AnswerResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, 4, got.HeartsLeft)
}

func TestSubmitAnswerMissingCorrect(t *testing.T) {
	t.Parallel()

	handler := NewLessonHandler(&stubLessonService{})
	rec := httptest.NewRecorder()
	handler.SubmitAnswer(rec, authedRequest(http.MethodPost, "/api/lessons/current/answers",
		`{"challenge_id":"ch-1"}`, uuid.New()))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompleteLessonWithoutSessionMapsToConflict(t *testing.T) {
	t.Parallel()

	handler := NewLessonHandler(&stubLessonService{err: service.ErrNoActiveLesson})
	rec := httptest.NewRecorder()
	handler.Complete(rec, authedRequest(http.MethodPost, "/api/lessons/current/complete", "", uuid.New()))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestCompleteUnitHandler(t *testing.T) {
	t.Parallel()

	stub := &stubLessonService{summary: &service.LessonSummary{Rewards: &service.RewardSummary{TotalXP: 130}}}
	handler := NewLessonHandler(stub)

	rec := httptest.NewRecorder()
	handler.CompleteUnit(rec, authedRequest(http.MethodPost, "/api/units/complete", `{"unit_id":"unit-1"}`, uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "unit-1", stub.gotUnitID)
}

func TestDueReviewsEmptyListNotNull(t *testing.T) {
	t.Parallel()

	handler := NewLessonHandler(&stubLessonService{})
	rec := httptest.NewRecorder()
	handler.DueReviews(rec, authedRequest(http.MethodGet, "/api/reviews/due", "", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "[]\n", rec.Body.String(), "an empty queue serializes as an empty array")
}
