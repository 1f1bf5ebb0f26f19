package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/verdantlabs/verdant-api/internal/domain"
	"github.com/verdantlabs/verdant-api/internal/domain/progression"
)

// AnswerResult reports the effects of one submitted answer.
type AnswerResult struct {
	Correct      bool           `json:"correct"`
	HeartsLeft   int            `json:"hearts_left"`
	Rewards      *RewardSummary `json:"rewards,omitempty"`
	ReviewedDue  bool           `json:"reviewed_due"`
	ChallengeIdx int            `json:"challenge_index"`
}

// LessonSummary is the result of completing a lesson, combining the session
// results with the rewards, streak outcome and any achievements unlocked.
type LessonSummary struct {
	Results      *domain.LessonResults    `json:"results"`
	Rewards      *RewardSummary           `json:"rewards"`
	Streak       progression.StreakUpdate `json:"streak"`
	Achievements []domain.Achievement     `json:"achievements,omitempty"`
}

// StartLesson opens a lesson session. Requires at least one heart after lazy
// regeneration (ErrNoHearts) and no session already in progress
// (ErrLessonInProgress). Starting costs nothing; hearts are only lost on
// wrong answers.
func (s *GameService) StartLesson(ctx context.Context, userID uuid.UUID, lessonID string) (*domain.ActiveLesson, error) {
	now := s.timeFunc()

	var active *domain.ActiveLesson
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		stores := s.txStores(tx)

		prog, err := loadProgression(ctx, stores.Progression, userID)
		if err != nil {
			return err
		}
		progChanged := s.refresh(prog, now)
		if prog.Hearts <= 0 {
			if progChanged {
				if err := stores.Progression.Save(ctx, userID, prog); err != nil {
					return err
				}
			}
			return ErrNoHearts
		}

		learning, err := loadLearning(ctx, stores.Learning, userID)
		if err != nil {
			return err
		}
		if !s.tracker.StartLesson(learning, lessonID, now) {
			return ErrLessonInProgress
		}

		if progChanged {
			if err := stores.Progression.Save(ctx, userID, prog); err != nil {
				return err
			}
		}
		if err := stores.Learning.Save(ctx, userID, learning); err != nil {
			return err
		}
		active = learning.ActiveLesson
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "lesson started",
		"user_id", userID.String(), "lesson_id", lessonID)
	return active, nil
}

// SubmitAnswer records one answered challenge in the active session.
// A wrong answer costs a heart and schedules the challenge for review one
// day out. A correct answer on a challenge already in the review queue
// advances it along the interval ladder and pays the review XP reward.
// Returns ErrNoActiveLesson when no session is in progress.
func (s *GameService) SubmitAnswer(
	ctx context.Context,
	userID uuid.UUID,
	challengeID string,
	correct bool,
	timeSpent time.Duration,
) (*AnswerResult, error) {
	now := s.timeFunc()

	var result *AnswerResult
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		stores := s.txStores(tx)

		learning, err := loadLearning(ctx, stores.Learning, userID)
		if err != nil {
			return err
		}
		if learning.ActiveLesson == nil {
			return ErrNoActiveLesson
		}

		prog, err := loadProgression(ctx, stores.Progression, userID)
		if err != nil {
			return err
		}
		s.refresh(prog, now)

		// The queue membership check runs before the tracker records the
		// answer so a miss inserted by this very answer does not count as
		// an answered review.
		wasDue := learning.ReviewFor(challengeID) != nil

		s.tracker.CompleteChallenge(learning, challengeID, correct, timeSpent, now)

		result = &AnswerResult{
			Correct:      correct,
			ChallengeIdx: learning.ActiveLesson.ChallengeIndex,
		}

		if correct {
			if wasDue {
				// The streak machine runs before any XP award; the award
				// stamps the activity time and would otherwise hide a day
				// boundary from a later check.
				s.progression.CheckAndUpdateStreak(prog, now)
				sum := &RewardSummary{}
				s.award(prog, sum, AwardCorrectAnswer, s.progression.Params().Rewards.CorrectAnswer, now)
				result.Rewards = sum
				result.ReviewedDue = true
			}
		} else {
			s.progression.LoseHeart(prog, now)
		}
		result.HeartsLeft = prog.Hearts

		if err := stores.Progression.Save(ctx, userID, prog); err != nil {
			return err
		}
		return stores.Learning.Save(ctx, userID, learning)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CompleteLesson closes the active session and settles everything that
// hangs off a finished lesson: completion XP with the perfect bonus, the
// streak state machine with its increment bonus, the hour-of-day trackers
// and a fresh achievement evaluation. Returns ErrNoActiveLesson when no
// session is in progress.
func (s *GameService) CompleteLesson(ctx context.Context, userID uuid.UUID) (*LessonSummary, error) {
	now := s.timeFunc()

	var summary *LessonSummary
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		stores := s.txStores(tx)

		learning, err := loadLearning(ctx, stores.Learning, userID)
		if err != nil {
			return err
		}
		results := s.tracker.CompleteLesson(learning, now)
		if results == nil {
			return ErrNoActiveLesson
		}

		prog, err := loadProgression(ctx, stores.Progression, userID)
		if err != nil {
			return err
		}
		s.refresh(prog, now)

		// The streak machine must see the pre-lesson activity stamp;
		// awarding XP first would stamp it to now and read as a same-day
		// no-op forever.
		streak := s.progression.CheckAndUpdateStreak(prog, now)

		rewards := &RewardSummary{}
		table := s.progression.Params().Rewards
		s.award(prog, rewards, AwardLessonComplete, table.LessonComplete, now)
		if results.IsPerfect {
			s.award(prog, rewards, AwardPerfectBonus, table.PerfectBonus, now)
		}
		if streak.Action == progression.StreakIncrement {
			s.award(prog, rewards, AwardStreakBonus, table.StreakBonus, now)
		}

		ach, err := loadAchievements(ctx, stores.Achievement, userID)
		if err != nil {
			return err
		}
		if results.IsPerfect {
			ach.Trackers.PerfectLessons++
		}
		switch hour := now.Hour(); {
		case hour < 8:
			ach.Trackers.EarlyBirdCount++
		case hour >= 22:
			ach.Trackers.NightOwlCount++
		}

		discovery, err := loadDiscovery(ctx, stores.Discovery, userID)
		if err != nil {
			return err
		}
		unlocked := s.evaluateAchievements(ctx, userID, prog, learning, discovery, ach, now)

		if err := stores.Learning.Save(ctx, userID, learning); err != nil {
			return err
		}
		if err := stores.Progression.Save(ctx, userID, prog); err != nil {
			return err
		}
		if err := stores.Achievement.Save(ctx, userID, ach); err != nil {
			return err
		}

		summary = &LessonSummary{
			Results:      results,
			Rewards:      rewards,
			Streak:       streak,
			Achievements: unlocked,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "lesson completed",
		"user_id", userID.String(),
		"lesson_id", summary.Results.LessonID,
		"perfect", summary.Results.IsPerfect,
		"xp", summary.Rewards.TotalXP)
	return summary, nil
}

// AbandonLesson discards the active session. Hearts already lost and review
// entries already scheduled stay lost and scheduled. Returns
// ErrNoActiveLesson when no session is in progress.
func (s *GameService) AbandonLesson(ctx context.Context, userID uuid.UUID) error {
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		stores := s.txStores(tx)

		learning, err := loadLearning(ctx, stores.Learning, userID)
		if err != nil {
			return err
		}
		if !s.tracker.AbandonLesson(learning) {
			return ErrNoActiveLesson
		}
		return stores.Learning.Save(ctx, userID, learning)
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "lesson abandoned", "user_id", userID.String())
	return nil
}

// CompleteUnit marks a unit as finished and pays the unit reward. Unit
// completion is explicit, never inferred from lessons. Returns
// ErrUnitAlreadyCompleted on a repeat.
func (s *GameService) CompleteUnit(ctx context.Context, userID uuid.UUID, unitID string) (*LessonSummary, error) {
	now := s.timeFunc()

	var summary *LessonSummary
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		stores := s.txStores(tx)

		learning, err := loadLearning(ctx, stores.Learning, userID)
		if err != nil {
			return err
		}
		if !s.tracker.CompleteUnit(learning, unitID) {
			return ErrUnitAlreadyCompleted
		}

		prog, err := loadProgression(ctx, stores.Progression, userID)
		if err != nil {
			return err
		}
		s.refresh(prog, now)

		streak := s.progression.CheckAndUpdateStreak(prog, now)

		rewards := &RewardSummary{}
		s.award(prog, rewards, AwardUnitComplete, s.progression.Params().Rewards.UnitComplete, now)

		ach, err := loadAchievements(ctx, stores.Achievement, userID)
		if err != nil {
			return err
		}
		discovery, err := loadDiscovery(ctx, stores.Discovery, userID)
		if err != nil {
			return err
		}
		unlocked := s.evaluateAchievements(ctx, userID, prog, learning, discovery, ach, now)

		if err := stores.Learning.Save(ctx, userID, learning); err != nil {
			return err
		}
		if err := stores.Progression.Save(ctx, userID, prog); err != nil {
			return err
		}
		if err := stores.Achievement.Save(ctx, userID, ach); err != nil {
			return err
		}

		summary = &LessonSummary{Rewards: rewards, Streak: streak, Achievements: unlocked}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "unit completed",
		"user_id", userID.String(), "unit_id", unitID)
	return summary, nil
}

// DueReviews returns the review queue entries due now, soonest first.
func (s *GameService) DueReviews(ctx context.Context, userID uuid.UUID) ([]domain.ReviewEntry, error) {
	learning, err := loadLearning(ctx, s.stores.Learning, userID)
	if err != nil {
		return nil, NewGameServiceError("due reviews", "failed to load learning state", err)
	}
	return s.tracker.DueReviews(learning, s.timeFunc()), nil
}
