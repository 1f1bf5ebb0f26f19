package achievement

import (
	"time"

	"github.com/verdantlabs/verdant-api/internal/domain"
)

// Evaluate checks every locked achievement against the stats snapshot and
// unlocks those whose predicate is satisfied, stamping each with now.
// Returns the newly unlocked definitions in catalog order. Already-unlocked
// achievements are never re-unlocked and never returned, so evaluation is
// idempotent for a given snapshot.
func Evaluate(st *domain.AchievementState, stats domain.StatsSnapshot, now time.Time) []domain.Achievement {
	var unlocked []domain.Achievement
	for _, a := range catalog {
		if st.IsUnlocked(a.ID) {
			continue
		}
		if !satisfied(a.Requirement, stats) {
			continue
		}
		if st.Unlock(a.ID, now) {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}

// satisfied applies a requirement predicate to the snapshot. Unknown
// requirement types never unlock.
func satisfied(req domain.Requirement, stats domain.StatsSnapshot) bool {
	switch req.Type {
	case domain.RequireStreak:
		return stats.CurrentStreak >= req.Threshold
	case domain.RequireLessons:
		return stats.CompletedLessons >= req.Threshold
	case domain.RequireDiscoveries:
		return stats.UniqueDiscoveries >= req.Threshold
	case domain.RequireLevel:
		return stats.Level >= req.Threshold
	case domain.RequirePerfect:
		return stats.PerfectLessons >= req.Threshold
	case domain.RequireUnits:
		return stats.CompletedUnits >= req.Threshold
	case domain.RequireRarity:
		return stats.HasRarity(req.Rarity)
	case domain.RequireTime:
		switch req.TimeOfDay {
		case domain.TimeMorning:
			return stats.IsEarlyBird
		case domain.TimeNight:
			return stats.IsNightOwl
		}
		return false
	default:
		return false
	}
}
