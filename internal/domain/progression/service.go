// Package progression implements the progression ledger algorithms:
// level derivation from XP, time-anchored heart regeneration, the streak
// state machine and daily goal bookkeeping.
//
// Operations take the ledger state and the current time as explicit
// arguments. Time-based effects are recomputed from stored timestamps, so
// results are identical whether an operation is polled every second or
// once after an hour.
package progression

import (
	"time"

	"github.com/verdantlabs/verdant-api/internal/domain"
)

// StreakAction identifies which branch of the streak state machine fired.
type StreakAction string

const (
	StreakStart     StreakAction = "START"
	StreakNone      StreakAction = "NONE"
	StreakIncrement StreakAction = "INCREMENT"
	StreakUseFreeze StreakAction = "USE_FREEZE"
	StreakReset     StreakAction = "RESET"
)

// XPResult reports the outcome of an XP award.
type XPResult struct {
	Amount    int  `json:"amount"`
	LeveledUp bool `json:"leveled_up"`
	Level     int  `json:"level"`
}

// StreakUpdate reports the outcome of a streak check.
type StreakUpdate struct {
	Action StreakAction `json:"action"`
	Streak int          `json:"streak"`
}

// Service applies progression operations to a ledger using a fixed set of
// tuning parameters.
type Service struct {
	params *Params
}

// NewService creates a Service with the given parameters.
func NewService(params *Params) *Service {
	if params == nil {
		params = NewDefaultParams()
	}
	return &Service{params: params}
}

// NewDefaultService creates a Service with the default tuning.
func NewDefaultService() *Service {
	return NewService(NewDefaultParams())
}

// Params exposes the service tuning for callers that need the reward table.
func (s *Service) Params() *Params {
	return s.params
}

// AddXP credits the amount to the lifetime total and today's earned XP,
// stamps the activity time (XP gain keeps the streak alive) and reports
// whether the level derived from the new total increased. Negative amounts
// are ignored.
func (s *Service) AddXP(st *domain.ProgressionState, amount int, now time.Time) XPResult {
	oldLevel := LevelForXP(st.XP)
	if amount > 0 {
		st.XP += amount
		st.DailyXPEarned += amount
		t := now
		st.LastActivityAt = &t
	}
	newLevel := LevelForXP(st.XP)

	return XPResult{
		Amount:    amount,
		LeveledUp: newLevel > oldLevel,
		Level:     newLevel,
	}
}

// LoseHeart removes one heart. Returns false without mutation when the pool
// is already empty. The regeneration anchor is only set when no
// regeneration is pending, so partial progress toward the next heart
// survives later losses.
func (s *Service) LoseHeart(st *domain.ProgressionState, now time.Time) bool {
	if st.Hearts <= 0 {
		return false
	}

	st.Hearts--
	if st.LastHeartLossAt == nil {
		t := now
		st.LastHeartLossAt = &t
	}
	return true
}

// RegenerateHearts grants one heart per whole regeneration interval elapsed
// since the anchor, capped at the pool size, and returns the number
// granted. When the cap is reached the anchor is cleared; otherwise it
// advances by exactly the intervals consumed, preserving partial progress.
// Calling this repeatedly within the same instant never double-grants.
func (s *Service) RegenerateHearts(st *domain.ProgressionState, now time.Time) int {
	if st.Hearts >= st.MaxHearts || st.LastHeartLossAt == nil {
		return 0
	}

	elapsed := now.Sub(*st.LastHeartLossAt)
	if elapsed < s.params.HeartRegenInterval {
		return 0
	}

	regen := int(elapsed / s.params.HeartRegenInterval)
	if max := st.MaxHearts - st.Hearts; regen > max {
		regen = max
	}

	st.Hearts += regen
	if st.Hearts >= st.MaxHearts {
		st.LastHeartLossAt = nil
	} else {
		t := st.LastHeartLossAt.Add(time.Duration(regen) * s.params.HeartRegenInterval)
		st.LastHeartLossAt = &t
	}
	return regen
}

// TimeUntilNextHeart returns the remaining portion of the current
// regeneration interval. The second return is false when the pool is full
// or no regeneration is pending.
func (s *Service) TimeUntilNextHeart(st *domain.ProgressionState, now time.Time) (time.Duration, bool) {
	if st.Hearts >= st.MaxHearts || st.LastHeartLossAt == nil {
		return 0, false
	}

	elapsed := now.Sub(*st.LastHeartLossAt)
	inCycle := elapsed % s.params.HeartRegenInterval
	return s.params.HeartRegenInterval - inCycle, true
}

// RefillHearts restores the pool to full for the configured gem cost. The
// purchase is all-or-nothing: it fails without mutation when the pool is
// already full or the balance is short.
func (s *Service) RefillHearts(st *domain.ProgressionState) bool {
	if st.Hearts >= st.MaxHearts {
		return false
	}
	if !st.SpendGems(s.params.HeartRefillCost) {
		return false
	}

	st.Hearts = st.MaxHearts
	st.LastHeartLossAt = nil
	return true
}

// CheckAndUpdateStreak runs the streak state machine against the calendar
// day gap between the last recorded activity and now:
//
//	no prior activity        -> START, streak 1
//	same day                 -> NONE
//	one day gap              -> INCREMENT
//	two day gap, freeze held -> USE_FREEZE (streak preserved, freeze spent)
//	anything longer          -> RESET to 1, freezes never cover it
//
// Every branch except NONE stamps the activity time.
func (s *Service) CheckAndUpdateStreak(st *domain.ProgressionState, now time.Time) StreakUpdate {
	if st.LastActivityAt == nil {
		st.CurrentStreak = 1
		if st.LongestStreak < 1 {
			st.LongestStreak = 1
		}
		t := now
		st.LastActivityAt = &t
		return StreakUpdate{Action: StreakStart, Streak: 1}
	}

	gap := calendarDaysBetween(*st.LastActivityAt, now)

	switch {
	case gap == 0:
		return StreakUpdate{Action: StreakNone, Streak: st.CurrentStreak}

	case gap == 1:
		st.CurrentStreak++
		if st.CurrentStreak > st.LongestStreak {
			st.LongestStreak = st.CurrentStreak
		}
		t := now
		st.LastActivityAt = &t
		return StreakUpdate{Action: StreakIncrement, Streak: st.CurrentStreak}

	case gap == 2 && st.StreakFreezes > 0:
		st.StreakFreezes--
		t := now
		st.LastActivityAt = &t
		return StreakUpdate{Action: StreakUseFreeze, Streak: st.CurrentStreak}

	default:
		st.CurrentStreak = 1
		t := now
		st.LastActivityAt = &t
		return StreakUpdate{Action: StreakReset, Streak: 1}
	}
}

// IsStreakAtRisk reports whether enough time has passed since the last
// activity that the streak is in danger of lapsing.
func (s *Service) IsStreakAtRisk(st *domain.ProgressionState, now time.Time) bool {
	if st.LastActivityAt == nil {
		return false
	}
	return now.Sub(*st.LastActivityAt) >= s.params.StreakRiskThreshold
}

// BuyStreakFreeze purchases one freeze token for the configured gem cost.
func (s *Service) BuyStreakFreeze(st *domain.ProgressionState) bool {
	if !st.SpendGems(s.params.StreakFreezeCost) {
		return false
	}
	st.AddStreakFreeze()
	return true
}

// CheckDailyReset zeroes today's earned XP when the calendar date has
// advanced past the last reset. Returns true when a reset happened.
func (s *Service) CheckDailyReset(st *domain.ProgressionState, now time.Time) bool {
	today := startOfDay(now)

	if st.LastDailyReset == nil {
		st.LastDailyReset = &today
		return false
	}

	if !today.After(startOfDay(*st.LastDailyReset)) {
		return false
	}

	st.DailyXPEarned = 0
	st.LastDailyReset = &today
	return true
}

// SetDailyGoal updates the daily XP goal. Non-positive goals are rejected.
func (s *Service) SetDailyGoal(st *domain.ProgressionState, goal int) bool {
	if goal <= 0 {
		return false
	}
	st.DailyXPGoal = goal
	return true
}

// Reset restores the ledger to first-launch defaults.
func (s *Service) Reset(st *domain.ProgressionState) {
	*st = *domain.NewProgressionState()
}

// calendarDaysBetween counts whole local calendar days between two
// instants, not 24-hour windows: 23:59 to 00:01 the next day is one day.
// The dates are re-anchored in UTC before subtracting so DST transitions
// cannot shift the count.
func calendarDaysBetween(from, to time.Time) int {
	fy, fm, fd := from.In(to.Location()).Date()
	ty, tm, td := to.Date()
	fromDay := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	toDay := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay) / (24 * time.Hour))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
