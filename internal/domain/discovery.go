package domain

import "time"

// TimeOfDay partitions the wall-clock day into the four windows species
// activity is keyed on.
type TimeOfDay string

const (
	TimeMorning TimeOfDay = "morning"
	TimeDay     TimeOfDay = "day"
	TimeEvening TimeOfDay = "evening"
	TimeNight   TimeOfDay = "night"
)

// Weather is the simulated weather condition. Each refresh is an
// independent draw; there is no persistence or day-to-day continuity.
type Weather string

const (
	WeatherClear  Weather = "clear"
	WeatherCloudy Weather = "cloudy"
	WeatherRainy  Weather = "rainy"
)

// Rarity is a species' rarity tier, controlling encounter weight.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists all tiers from most to least frequent.
var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityLegendary}

// Conditions is the environmental snapshot at the moment of an encounter.
type Conditions struct {
	TimeOfDay TimeOfDay `json:"time_of_day"`
	Weather   Weather   `json:"weather"`
}

// Discovery is one recorded encounter claim. The log is append-only and
// re-discovering a known species appends another record with IsNew false.
type Discovery struct {
	SpeciesID    string     `json:"species_id"`
	DiscoveredAt time.Time  `json:"discovered_at"`
	Rarity       Rarity     `json:"rarity"`
	Conditions   Conditions `json:"conditions"`
	IsNew        bool       `json:"is_new"`
}

// Encounter is a resolved but not yet claimed exploration result.
type Encounter struct {
	SpeciesID  string     `json:"species_id"`
	Conditions Conditions `json:"conditions"`
}

// DiscoveryState tracks the discovery ledger and the exploration gate.
type DiscoveryState struct {
	Discoveries       []Discovery    `json:"discoveries"`
	LastExploreAt     *time.Time     `json:"last_explore_at,omitempty"`
	IsExploring       bool           `json:"is_exploring"`
	CurrentEncounter  *Encounter     `json:"current_encounter,omitempty"`
	TotalExplorations int            `json:"total_explorations"`
	RarityCounts      map[Rarity]int `json:"rarity_counts"`
}

// NewDiscoveryState returns an empty ledger with zeroed rarity counters.
func NewDiscoveryState() *DiscoveryState {
	return &DiscoveryState{
		RarityCounts: map[Rarity]int{
			RarityCommon:    0,
			RarityUncommon:  0,
			RarityRare:      0,
			RarityLegendary: 0,
		},
	}
}

// HasDiscovered reports whether the species appears anywhere in the log.
func (s *DiscoveryState) HasDiscovered(speciesID string) bool {
	for i := range s.Discoveries {
		if s.Discoveries[i].SpeciesID == speciesID {
			return true
		}
	}
	return false
}

// DiscoveryOf returns the first (original) discovery record for the
// species, or nil if it has never been discovered.
func (s *DiscoveryState) DiscoveryOf(speciesID string) *Discovery {
	for i := range s.Discoveries {
		if s.Discoveries[i].SpeciesID == speciesID {
			return &s.Discoveries[i]
		}
	}
	return nil
}

// UniqueDiscoveries returns the earliest record per distinct species, in
// first-discovery order.
func (s *DiscoveryState) UniqueDiscoveries() []Discovery {
	seen := make(map[string]bool, len(s.Discoveries))
	unique := make([]Discovery, 0, len(s.Discoveries))
	for _, d := range s.Discoveries {
		if seen[d.SpeciesID] {
			continue
		}
		seen[d.SpeciesID] = true
		unique = append(unique, d)
	}
	return unique
}

// UniqueDiscoveryCount returns the number of distinct species discovered.
func (s *DiscoveryState) UniqueDiscoveryCount() int {
	seen := make(map[string]bool, len(s.Discoveries))
	for _, d := range s.Discoveries {
		seen[d.SpeciesID] = true
	}
	return len(seen)
}

// DiscoveriesByRarity returns the unique discoveries of the given tier.
func (s *DiscoveryState) DiscoveriesByRarity(r Rarity) []Discovery {
	var out []Discovery
	for _, d := range s.UniqueDiscoveries() {
		if d.Rarity == r {
			out = append(out, d)
		}
	}
	return out
}

// DiscoveredRarities lists the tiers with at least one unique discovery.
func (s *DiscoveryState) DiscoveredRarities() []Rarity {
	var out []Rarity
	for _, r := range Rarities {
		if s.RarityCounts[r] > 0 {
			out = append(out, r)
		}
	}
	return out
}
