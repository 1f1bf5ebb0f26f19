package domain

import "time"

// AnswerRecord captures a single answered challenge within a lesson session.
type AnswerRecord struct {
	ChallengeID string `json:"challenge_id"`
	Correct     bool   `json:"correct"`
	TimeSpentMs int64  `json:"time_spent_ms"`
}

// ActiveLesson is the transient state of a lesson in progress. It exists
// only between StartLesson and CompleteLesson/AbandonLesson.
type ActiveLesson struct {
	LessonID       string         `json:"lesson_id"`
	ChallengeIndex int            `json:"challenge_index"`
	CorrectAnswers int            `json:"correct_answers"`
	WrongAnswers   int            `json:"wrong_answers"`
	StartedAt      time.Time      `json:"started_at"`
	Answers        []AnswerRecord `json:"answers"`
}

// ReviewEntry schedules a previously-missed challenge for spaced-repetition
// review. At most one entry exists per challenge ID.
type ReviewEntry struct {
	ChallengeID  string    `json:"challenge_id"`
	LessonID     string    `json:"lesson_id"`
	NextReviewAt time.Time `json:"next_review_at"`
	AttemptCount int       `json:"attempt_count"`
}

// LearningState tracks lesson and unit completion plus the review queue.
type LearningState struct {
	CompletedLessons []string      `json:"completed_lessons"`
	CompletedUnits   []string      `json:"completed_units"`
	ReviewQueue      []ReviewEntry `json:"review_queue"`
	ActiveLesson     *ActiveLesson `json:"active_lesson,omitempty"`
}

// NewLearningState returns an empty tracker.
func NewLearningState() *LearningState {
	return &LearningState{}
}

// HasCompletedLesson reports whether the lesson ID has been completed.
func (s *LearningState) HasCompletedLesson(lessonID string) bool {
	return containsString(s.CompletedLessons, lessonID)
}

// HasCompletedUnit reports whether the unit ID has been completed.
func (s *LearningState) HasCompletedUnit(unitID string) bool {
	return containsString(s.CompletedUnits, unitID)
}

// MarkUnitCompleted records a unit as completed. Idempotent.
func (s *LearningState) MarkUnitCompleted(unitID string) {
	if s.HasCompletedUnit(unitID) {
		return
	}
	s.CompletedUnits = append(s.CompletedUnits, unitID)
}

// ReviewFor returns the review queue entry for the challenge, or nil.
// The pointer addresses the live slice element so callers may mutate it.
func (s *LearningState) ReviewFor(challengeID string) *ReviewEntry {
	for i := range s.ReviewQueue {
		if s.ReviewQueue[i].ChallengeID == challengeID {
			return &s.ReviewQueue[i]
		}
	}
	return nil
}

// LessonResults is the summary produced when a lesson session completes.
type LessonResults struct {
	LessonID        string         `json:"lesson_id"`
	CorrectAnswers  int            `json:"correct_answers"`
	WrongAnswers    int            `json:"wrong_answers"`
	TotalChallenges int            `json:"total_challenges"`
	Accuracy        float64        `json:"accuracy"`
	TotalTimeMs     int64          `json:"total_time_ms"`
	IsPerfect       bool           `json:"is_perfect"`
	Answers         []AnswerRecord `json:"answers"`
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
