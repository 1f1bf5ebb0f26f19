// Package achievement holds the static achievement catalog and the batch
// evaluator that checks every locked achievement against a stats snapshot.
package achievement

import "github.com/verdantlabs/verdant-api/internal/domain"

// Category names group achievements for display.
const (
	CategoryStreak    = "streak"
	CategoryLearning  = "learning"
	CategoryDiscovery = "discovery"
	CategoryProgress  = "progress"
	CategorySpecial   = "special"
)

// catalog is the full achievement definition table. Order is display order;
// evaluation visits every entry regardless.
var catalog = []domain.Achievement{
	{
		ID:          "streak-3",
		Title:       "Getting Started",
		Description: "Maintain a 3-day streak",
		Category:    CategoryStreak,
		Requirement: domain.Requirement{Type: domain.RequireStreak, Threshold: 3},
	},
	{
		ID:          "streak-7",
		Title:       "Week Warrior",
		Description: "Maintain a 7-day streak",
		Category:    CategoryStreak,
		Requirement: domain.Requirement{Type: domain.RequireStreak, Threshold: 7},
	},
	{
		ID:          "streak-30",
		Title:       "Dedicated Explorer",
		Description: "Maintain a 30-day streak",
		Category:    CategoryStreak,
		Requirement: domain.Requirement{Type: domain.RequireStreak, Threshold: 30},
	},
	{
		ID:          "first-lesson",
		Title:       "First Steps",
		Description: "Complete your first lesson",
		Category:    CategoryLearning,
		Requirement: domain.Requirement{Type: domain.RequireLessons, Threshold: 1},
	},
	{
		ID:          "lessons-10",
		Title:       "Quick Learner",
		Description: "Complete 10 lessons",
		Category:    CategoryLearning,
		Requirement: domain.Requirement{Type: domain.RequireLessons, Threshold: 10},
	},
	{
		ID:          "lessons-50",
		Title:       "Knowledge Seeker",
		Description: "Complete 50 lessons",
		Category:    CategoryLearning,
		Requirement: domain.Requirement{Type: domain.RequireLessons, Threshold: 50},
	},
	{
		ID:          "perfect-lesson",
		Title:       "Perfectionist",
		Description: "Complete a lesson with no mistakes",
		Category:    CategoryLearning,
		Requirement: domain.Requirement{Type: domain.RequirePerfect, Threshold: 1},
	},
	{
		ID:          "first-discovery",
		Title:       "Nature Observer",
		Description: "Make your first discovery",
		Category:    CategoryDiscovery,
		Requirement: domain.Requirement{Type: domain.RequireDiscoveries, Threshold: 1},
	},
	{
		ID:          "discoveries-10",
		Title:       "Wildlife Watcher",
		Description: "Discover 10 unique species",
		Category:    CategoryDiscovery,
		Requirement: domain.Requirement{Type: domain.RequireDiscoveries, Threshold: 10},
	},
	{
		ID:          "discoveries-25",
		Title:       "Eco Expert",
		Description: "Discover 25 unique species",
		Category:    CategoryDiscovery,
		Requirement: domain.Requirement{Type: domain.RequireDiscoveries, Threshold: 25},
	},
	{
		ID:          "rare-discovery",
		Title:       "Rare Find",
		Description: "Discover a rare species",
		Category:    CategoryDiscovery,
		Requirement: domain.Requirement{Type: domain.RequireRarity, Rarity: domain.RarityRare},
	},
	{
		ID:          "legendary-discovery",
		Title:       "Legendary Encounter",
		Description: "Discover a legendary species",
		Category:    CategoryDiscovery,
		Requirement: domain.Requirement{Type: domain.RequireRarity, Rarity: domain.RarityLegendary},
	},
	{
		ID:          "level-5",
		Title:       "Rising Star",
		Description: "Reach level 5",
		Category:    CategoryProgress,
		Requirement: domain.Requirement{Type: domain.RequireLevel, Threshold: 5},
	},
	{
		ID:          "level-10",
		Title:       "Experienced Explorer",
		Description: "Reach level 10",
		Category:    CategoryProgress,
		Requirement: domain.Requirement{Type: domain.RequireLevel, Threshold: 10},
	},
	{
		ID:          "level-25",
		Title:       "Master Naturalist",
		Description: "Reach level 25",
		Category:    CategoryProgress,
		Requirement: domain.Requirement{Type: domain.RequireLevel, Threshold: 25},
	},
	{
		ID:          "early-bird",
		Title:       "Early Bird",
		Description: "Complete a lesson before 8am",
		Category:    CategorySpecial,
		Requirement: domain.Requirement{Type: domain.RequireTime, TimeOfDay: domain.TimeMorning},
	},
	{
		ID:          "night-owl",
		Title:       "Night Owl",
		Description: "Complete a lesson after 10pm",
		Category:    CategorySpecial,
		Requirement: domain.Requirement{Type: domain.RequireTime, TimeOfDay: domain.TimeNight},
	},
	{
		ID:          "first-unit",
		Title:       "Unit Complete",
		Description: "Complete your first unit",
		Category:    CategoryLearning,
		Requirement: domain.Requirement{Type: domain.RequireUnits, Threshold: 1},
	},
}

// Catalog returns the achievement definition table in display order.
func Catalog() []domain.Achievement {
	out := make([]domain.Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// ByID looks up a definition. The boolean is false for unknown IDs.
func ByID(id string) (domain.Achievement, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Achievement{}, false
}

// ByCategory returns the definitions in the given category, in display order.
func ByCategory(category string) []domain.Achievement {
	var out []domain.Achievement
	for _, a := range catalog {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// TotalCount returns the size of the catalog.
func TotalCount() int {
	return len(catalog)
}
