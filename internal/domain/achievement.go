package domain

import "time"

// RequirementType identifies which stat an achievement's predicate checks.
type RequirementType string

const (
	RequireStreak      RequirementType = "streak"
	RequireLessons     RequirementType = "lessons"
	RequireDiscoveries RequirementType = "discoveries"
	RequireLevel       RequirementType = "level"
	RequirePerfect     RequirementType = "perfect"
	RequireUnits       RequirementType = "units"
	RequireRarity      RequirementType = "rarity"
	RequireTime        RequirementType = "time"
)

// Requirement is an achievement's typed unlock predicate. Threshold is used
// by the counting types, Rarity by RequireRarity and TimeOfDay by
// RequireTime.
type Requirement struct {
	Type      RequirementType `json:"type"`
	Threshold int             `json:"threshold,omitempty"`
	Rarity    Rarity          `json:"rarity,omitempty"`
	TimeOfDay TimeOfDay       `json:"time_of_day,omitempty"`
}

// Achievement is a static achievement definition.
type Achievement struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Requirement Requirement `json:"requirement"`
}

// AchievementUnlock records when an achievement was unlocked.
type AchievementUnlock struct {
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// ProgressTrackers counts events that feed achievement predicates but are
// not derivable from the other containers.
type ProgressTrackers struct {
	PerfectLessons int `json:"perfect_lessons"`
	EarlyBirdCount int `json:"early_bird_count"`
	NightOwlCount  int `json:"night_owl_count"`
}

// AchievementState holds unlocked achievements and the queue of unlocks
// awaiting acknowledgment by the client. Unlocks only grow; nothing short
// of an explicit reset removes one.
type AchievementState struct {
	Unlocked         []AchievementUnlock `json:"unlocked"`
	RecentlyUnlocked []string            `json:"recently_unlocked"`
	Trackers         ProgressTrackers    `json:"trackers"`
}

// NewAchievementState returns an empty achievement ledger.
func NewAchievementState() *AchievementState {
	return &AchievementState{}
}

// IsUnlocked reports whether the achievement has been unlocked.
func (s *AchievementState) IsUnlocked(achievementID string) bool {
	for i := range s.Unlocked {
		if s.Unlocked[i].AchievementID == achievementID {
			return true
		}
	}
	return false
}

// Unlock records the achievement with the given timestamp and queues it for
// notification. Returns false without mutation if it was already unlocked.
func (s *AchievementState) Unlock(achievementID string, now time.Time) bool {
	if s.IsUnlocked(achievementID) {
		return false
	}
	s.Unlocked = append(s.Unlocked, AchievementUnlock{
		AchievementID: achievementID,
		UnlockedAt:    now,
	})
	s.RecentlyUnlocked = append(s.RecentlyUnlocked, achievementID)
	return true
}

// ClearRecentlyUnlocked drains the notification queue.
func (s *AchievementState) ClearRecentlyUnlocked() {
	s.RecentlyUnlocked = nil
}

// UnlockedCount returns the number of unlocked achievements.
func (s *AchievementState) UnlockedCount() int {
	return len(s.Unlocked)
}

// StatsSnapshot aggregates the cross-container stats achievement predicates
// are evaluated against. It is assembled fresh after every mutation.
type StatsSnapshot struct {
	CurrentStreak      int      `json:"current_streak"`
	CompletedLessons   int      `json:"completed_lessons"`
	UniqueDiscoveries  int      `json:"unique_discoveries"`
	Level              int      `json:"level"`
	PerfectLessons     int      `json:"perfect_lessons"`
	CompletedUnits     int      `json:"completed_units"`
	DiscoveredRarities []Rarity `json:"discovered_rarities"`
	IsEarlyBird        bool     `json:"is_early_bird"`
	IsNightOwl         bool     `json:"is_night_owl"`
}

// HasRarity reports whether the snapshot includes the rarity tier.
func (s StatsSnapshot) HasRarity(r Rarity) bool {
	for _, have := range s.DiscoveredRarities {
		if have == r {
			return true
		}
	}
	return false
}
