package domain

import "time"

// Progression defaults applied at first launch and on explicit reset.
const (
	DefaultMaxHearts     = 5
	DefaultStartingGems  = 50
	DefaultStreakFreezes = 1
	DefaultDailyXPGoal   = 50
)

// ProgressionState is the per-user progression ledger: lifetime XP, the
// heart pool, spendable gems, streak counters and the daily XP goal.
//
// The level is intentionally absent. It is always derived from XP by the
// progression package, never stored as independent state.
type ProgressionState struct {
	XP        int `json:"xp"`
	Hearts    int `json:"hearts"`
	MaxHearts int `json:"max_hearts"`
	Gems      int `json:"gems"`

	// LastHeartLossAt anchors heart regeneration. Nil means the pool is
	// full or no regeneration is pending.
	LastHeartLossAt *time.Time `json:"last_heart_loss_at,omitempty"`

	CurrentStreak  int        `json:"current_streak"`
	LongestStreak  int        `json:"longest_streak"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
	StreakFreezes  int        `json:"streak_freezes"`

	DailyXPGoal    int        `json:"daily_xp_goal"`
	DailyXPEarned  int        `json:"daily_xp_earned"`
	LastDailyReset *time.Time `json:"last_daily_reset,omitempty"`
}

// NewProgressionState returns a ledger with first-launch defaults: no XP,
// full hearts, the starting gem balance and one free streak freeze.
func NewProgressionState() *ProgressionState {
	return &ProgressionState{
		Hearts:        DefaultMaxHearts,
		MaxHearts:     DefaultMaxHearts,
		Gems:          DefaultStartingGems,
		StreakFreezes: DefaultStreakFreezes,
		DailyXPGoal:   DefaultDailyXPGoal,
	}
}

// AddGems credits the gem balance. Negative amounts are ignored.
func (s *ProgressionState) AddGems(amount int) {
	if amount <= 0 {
		return
	}
	s.Gems += amount
}

// SpendGems debits the gem balance if it covers the amount. The debit is
// all-or-nothing: on an insufficient balance nothing changes and false is
// returned.
func (s *ProgressionState) SpendGems(amount int) bool {
	if amount < 0 || s.Gems < amount {
		return false
	}
	s.Gems -= amount
	return true
}

// AddStreakFreeze grants one streak freeze token.
func (s *ProgressionState) AddStreakFreeze() {
	s.StreakFreezes++
}

// IsDailyGoalComplete reports whether today's earned XP has reached the goal.
func (s *ProgressionState) IsDailyGoalComplete() bool {
	return s.DailyXPEarned >= s.DailyXPGoal
}
