package progression

import "time"

// RewardTable lists the XP awarded for each kind of activity.
type RewardTable struct {
	CorrectAnswer  int
	LessonComplete int
	PerfectBonus   int
	UnitComplete   int
	DailyGoal      int
	StreakBonus    int
}

// Params defines the configurable constants of the progression ledger.
type Params struct {
	// MaxHearts is the size of the heart pool.
	MaxHearts int

	// HeartRegenInterval is how long one heart takes to regenerate.
	HeartRegenInterval time.Duration

	// HeartRefillCost is the gem price of an instant full refill.
	HeartRefillCost int

	// StreakFreezeCost is the gem price of one streak freeze token.
	StreakFreezeCost int

	// StreakRiskThreshold is how long after the last activity the streak
	// is flagged as at risk. It sits before the day rollover so clients
	// can warn the user in time.
	StreakRiskThreshold time.Duration

	// Rewards is the XP reward table.
	Rewards RewardTable
}

// NewDefaultParams returns the standard game tuning.
func NewDefaultParams() *Params {
	return &Params{
		MaxHearts:           5,
		HeartRegenInterval:  30 * time.Minute,
		HeartRefillCost:     10,
		StreakFreezeCost:    10,
		StreakRiskThreshold: 20 * time.Hour,
		Rewards: RewardTable{
			CorrectAnswer:  10,
			LessonComplete: 50,
			PerfectBonus:   25,
			UnitComplete:   100,
			DailyGoal:      30,
			StreakBonus:    5,
		},
	}
}
