// Package review implements the learning tracker: the lesson session state
// machine and the spaced-repetition review queue for missed challenges.
//
// The session moves Idle -> InProgress -> {Completed, Abandoned} -> Idle.
// Operations called outside the state they expect degrade to no-ops rather
// than corrupting the tracker.
package review

import (
	"sort"
	"time"

	"github.com/verdantlabs/verdant-api/internal/domain"
)

// reviewIntervals is the escalation ladder, in days, indexed by how many
// times the challenge has been attempted since it first entered the queue.
// Successes climb the ladder; any failure collapses back to the first rung.
var reviewIntervals = [...]int{1, 3, 7, 14, 30}

// Tracker applies learning operations to a LearningState.
type Tracker struct{}

// NewTracker creates a Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// StartLesson opens a lesson session. Returns false when a session is
// already in progress; the caller must complete or abandon it first.
func (t *Tracker) StartLesson(st *domain.LearningState, lessonID string, now time.Time) bool {
	if st.ActiveLesson != nil {
		return false
	}

	st.ActiveLesson = &domain.ActiveLesson{
		LessonID:  lessonID,
		StartedAt: now,
		Answers:   []domain.AnswerRecord{},
	}
	return true
}

// CompleteChallenge records an answered challenge in the active session and
// updates the review queue. A no-op returning false when no session is in
// progress.
//
// Queue semantics: a wrong answer inserts the challenge (or resets an
// existing entry) to review one day out. A correct answer only matters for
// challenges already in the queue; it advances them along the interval
// ladder. Challenges never missed are not tracked at all.
func (t *Tracker) CompleteChallenge(
	st *domain.LearningState,
	challengeID string,
	correct bool,
	timeSpent time.Duration,
	now time.Time,
) bool {
	if st.ActiveLesson == nil {
		return false
	}

	lesson := st.ActiveLesson
	lesson.Answers = append(lesson.Answers, domain.AnswerRecord{
		ChallengeID: challengeID,
		Correct:     correct,
		TimeSpentMs: timeSpent.Milliseconds(),
	})
	lesson.ChallengeIndex++
	if correct {
		lesson.CorrectAnswers++
	} else {
		lesson.WrongAnswers++
	}

	if !correct {
		t.recordMiss(st, challengeID, lesson.LessonID, now)
	} else if entry := st.ReviewFor(challengeID); entry != nil {
		t.advance(entry, now)
	}

	return true
}

// recordMiss resets or inserts a queue entry at the one-day rung.
func (t *Tracker) recordMiss(st *domain.LearningState, challengeID, lessonID string, now time.Time) {
	next := now.AddDate(0, 0, reviewIntervals[0])

	if entry := st.ReviewFor(challengeID); entry != nil {
		entry.NextReviewAt = next
		entry.AttemptCount++
		return
	}

	st.ReviewQueue = append(st.ReviewQueue, domain.ReviewEntry{
		ChallengeID:  challengeID,
		LessonID:     lessonID,
		NextReviewAt: next,
		AttemptCount: 1,
	})
}

// advance moves an existing entry up the ladder after a correct answer.
func (t *Tracker) advance(entry *domain.ReviewEntry, now time.Time) {
	idx := entry.AttemptCount
	if idx > len(reviewIntervals)-1 {
		idx = len(reviewIntervals) - 1
	}
	entry.NextReviewAt = now.AddDate(0, 0, reviewIntervals[idx])
	entry.AttemptCount++
}

// CompleteLesson closes the active session, marks the lesson completed
// (idempotently) and returns the results summary. Returns nil when no
// session is in progress. A session with zero answered challenges completes
// with zero accuracy and does not count as perfect.
func (t *Tracker) CompleteLesson(st *domain.LearningState, now time.Time) *domain.LessonResults {
	if st.ActiveLesson == nil {
		return nil
	}

	lesson := st.ActiveLesson
	total := len(lesson.Answers)

	accuracy := 0.0
	if total > 0 {
		accuracy = float64(lesson.CorrectAnswers) / float64(total) * 100
	}

	results := &domain.LessonResults{
		LessonID:        lesson.LessonID,
		CorrectAnswers:  lesson.CorrectAnswers,
		WrongAnswers:    lesson.WrongAnswers,
		TotalChallenges: total,
		Accuracy:        accuracy,
		TotalTimeMs:     now.Sub(lesson.StartedAt).Milliseconds(),
		IsPerfect:       total > 0 && lesson.WrongAnswers == 0,
		Answers:         lesson.Answers,
	}

	if !st.HasCompletedLesson(lesson.LessonID) {
		st.CompletedLessons = append(st.CompletedLessons, lesson.LessonID)
	}
	st.ActiveLesson = nil

	return results
}

// AbandonLesson discards the active session without recording completion.
// Review queue entries accrued during the session are kept; the miss
// happened regardless of how the lesson ended.
func (t *Tracker) AbandonLesson(st *domain.LearningState) bool {
	if st.ActiveLesson == nil {
		return false
	}
	st.ActiveLesson = nil
	return true
}

// CompleteUnit marks a unit as completed. Unit completion is explicit and
// never inferred from lesson completion.
func (t *Tracker) CompleteUnit(st *domain.LearningState, unitID string) bool {
	if st.HasCompletedUnit(unitID) {
		return false
	}
	st.MarkUnitCompleted(unitID)
	return true
}

// DueReviews returns the queue entries due at or before now, soonest first.
func (t *Tracker) DueReviews(st *domain.LearningState, now time.Time) []domain.ReviewEntry {
	var due []domain.ReviewEntry
	for _, entry := range st.ReviewQueue {
		if !entry.NextReviewAt.After(now) {
			due = append(due, entry)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		return due[i].NextReviewAt.Before(due[j].NextReviewAt)
	})
	return due
}

// Reset clears all learning progress.
func (t *Tracker) Reset(st *domain.LearningState) {
	*st = *domain.NewLearningState()
}
