package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/verdantlabs/verdant-api/internal/domain"
	"github.com/verdantlabs/verdant-api/internal/domain/progression"
)

// XP award reasons reported in reward breakdowns.
const (
	AwardCorrectAnswer  = "correct_answer"
	AwardLessonComplete = "lesson_complete"
	AwardPerfectBonus   = "perfect_bonus"
	AwardUnitComplete   = "unit_complete"
	AwardDailyGoal      = "daily_goal"
	AwardStreakBonus    = "streak_bonus"
	AwardDiscovery      = "discovery"
)

// XPAward is one line of a reward breakdown.
type XPAward struct {
	Reason string `json:"reason"`
	Amount int    `json:"amount"`
}

// RewardSummary aggregates the XP effects of one user action.
type RewardSummary struct {
	Awards       []XPAward `json:"awards"`
	TotalXP      int       `json:"total_xp"`
	LeveledUp    bool      `json:"leveled_up"`
	Level        int       `json:"level"`
	DailyGoalMet bool      `json:"daily_goal_met"`
}

// award credits one XP line item and folds the outcome into the summary.
// Crossing the daily goal from incomplete to complete appends the one-time
// goal bonus; the bonus itself cannot cross again within the same day.
func (s *GameService) award(st *domain.ProgressionState, sum *RewardSummary, reason string, amount int, now time.Time) {
	if amount <= 0 {
		return
	}

	wasComplete := st.IsDailyGoalComplete()

	res := s.progression.AddXP(st, amount, now)
	sum.Awards = append(sum.Awards, XPAward{Reason: reason, Amount: amount})
	sum.TotalXP += amount
	sum.LeveledUp = sum.LeveledUp || res.LeveledUp
	sum.Level = res.Level

	if !wasComplete && st.IsDailyGoalComplete() {
		sum.DailyGoalMet = true
		bonus := s.progression.Params().Rewards.DailyGoal
		goalRes := s.progression.AddXP(st, bonus, now)
		sum.Awards = append(sum.Awards, XPAward{Reason: AwardDailyGoal, Amount: bonus})
		sum.TotalXP += bonus
		sum.LeveledUp = sum.LeveledUp || goalRes.LeveledUp
		sum.Level = goalRes.Level
	}
}

// ProgressionView is the read model for the progression ledger: the stored
// state plus everything derived from it at request time.
type ProgressionView struct {
	State        *domain.ProgressionState  `json:"state"`
	Level        progression.LevelProgress `json:"level"`
	NextHeartIn  time.Duration             `json:"next_heart_in"`
	Regenerating bool                      `json:"regenerating"`
	StreakAtRisk bool                      `json:"streak_at_risk"`
}

func (s *GameService) viewOf(st *domain.ProgressionState, now time.Time) *ProgressionView {
	nextIn, regenerating := s.progression.TimeUntilNextHeart(st, now)
	return &ProgressionView{
		State:        st,
		Level:        progression.ProgressForXP(st.XP),
		NextHeartIn:  nextIn,
		Regenerating: regenerating,
		StreakAtRisk: s.progression.IsStreakAtRisk(st, now),
	}
}

// GetProgression returns the ledger with lazy heart regeneration and the
// daily reset applied. The refreshed state is persisted only when either
// effect actually fired, so polling stays write-free.
func (s *GameService) GetProgression(ctx context.Context, userID uuid.UUID) (*ProgressionView, error) {
	now := s.timeFunc()

	var view *ProgressionView
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		stores := s.txStores(tx)
		state, err := loadProgression(ctx, stores.Progression, userID)
		if err != nil {
			return err
		}
		if s.refresh(state, now) {
			if err := stores.Progression.Save(ctx, userID, state); err != nil {
				return err
			}
		}
		view = s.viewOf(state, now)
		return nil
	})
	if err != nil {
		return nil, NewGameServiceError("get progression", "failed to load progression", err)
	}
	return view, nil
}

// RefillHearts restores the heart pool to full in exchange for gems.
// Returns ErrHeartsFull when the pool is already full after lazy
// regeneration, and ErrInsufficientGems when the balance is short.
func (s *GameService) RefillHearts(ctx context.Context, userID uuid.UUID) (*ProgressionView, error) {
	now := s.timeFunc()

	var view *ProgressionView
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		stores := s.txStores(tx)
		state, err := loadProgression(ctx, stores.Progression, userID)
		if err != nil {
			return err
		}
		s.refresh(state, now)

		if state.Hearts >= state.MaxHearts {
			return ErrHeartsFull
		}
		if !s.progression.RefillHearts(state) {
			return ErrInsufficientGems
		}

		if err := stores.Progression.Save(ctx, userID, state); err != nil {
			return err
		}
		view = s.viewOf(state, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "hearts refilled", "user_id", userID.String())
	return view, nil
}

// BuyStreakFreeze purchases one streak freeze token for gems. Returns
// ErrInsufficientGems when the balance is short.
func (s *GameService) BuyStreakFreeze(ctx context.Context, userID uuid.UUID) (*ProgressionView, error) {
	now := s.timeFunc()

	var view *ProgressionView
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		stores := s.txStores(tx)
		state, err := loadProgression(ctx, stores.Progression, userID)
		if err != nil {
			return err
		}
		s.refresh(state, now)

		if !s.progression.BuyStreakFreeze(state) {
			return ErrInsufficientGems
		}

		if err := stores.Progression.Save(ctx, userID, state); err != nil {
			return err
		}
		view = s.viewOf(state, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "streak freeze purchased", "user_id", userID.String())
	return view, nil
}

// SetDailyGoal updates the daily XP goal. Non-positive goals return
// ErrInvalidDailyGoal.
func (s *GameService) SetDailyGoal(ctx context.Context, userID uuid.UUID, goal int) (*ProgressionView, error) {
	now := s.timeFunc()

	var view *ProgressionView
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		stores := s.txStores(tx)
		state, err := loadProgression(ctx, stores.Progression, userID)
		if err != nil {
			return err
		}
		s.refresh(state, now)

		if !s.progression.SetDailyGoal(state, goal) {
			return ErrInvalidDailyGoal
		}

		if err := stores.Progression.Save(ctx, userID, state); err != nil {
			return err
		}
		view = s.viewOf(state, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ResetProgress wipes every container back to first-launch defaults in one
// transaction. There is no partial reset.
func (s *GameService) ResetProgress(ctx context.Context, userID uuid.UUID) error {
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		stores := s.txStores(tx)

		if err := stores.Progression.Save(ctx, userID, domain.NewProgressionState()); err != nil {
			return err
		}
		if err := stores.Learning.Save(ctx, userID, domain.NewLearningState()); err != nil {
			return err
		}
		if err := stores.Discovery.Save(ctx, userID, domain.NewDiscoveryState()); err != nil {
			return err
		}
		if err := stores.Achievement.Save(ctx, userID, domain.NewAchievementState()); err != nil {
			return err
		}
		return stores.Settings.Save(ctx, userID, domain.NewSettings())
	})
	if err != nil {
		return NewGameServiceError("reset progress", "failed to reset containers", err)
	}

	s.logger.InfoContext(ctx, "progress reset", "user_id", userID.String())
	return nil
}
