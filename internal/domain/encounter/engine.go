package encounter

import (
	"math/rand"
	"time"

	"github.com/verdantlabs/verdant-api/internal/domain"
)

// DefaultExploreCooldown is the minimum gap between exploration attempts.
const DefaultExploreCooldown = 5 * time.Second

// Engine applies exploration operations to a DiscoveryState. It owns the
// cooldown gate and the encounter roll; claiming rewards is left to the
// caller, which knows about XP and achievements.
type Engine struct {
	cooldown time.Duration
}

// NewEngine creates an Engine with the given cooldown. Non-positive values
// fall back to the default.
func NewEngine(cooldown time.Duration) *Engine {
	if cooldown <= 0 {
		cooldown = DefaultExploreCooldown
	}
	return &Engine{cooldown: cooldown}
}

// NewDefaultEngine creates an Engine with the default cooldown.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultExploreCooldown)
}

// CanExplore reports whether a new exploration may start: no exploration in
// progress and the cooldown since the last attempt has elapsed.
func (e *Engine) CanExplore(st *domain.DiscoveryState, now time.Time) bool {
	if st.IsExploring {
		return false
	}
	if st.LastExploreAt == nil {
		return true
	}
	return now.Sub(*st.LastExploreAt) >= e.cooldown
}

// TimeUntilNextExplore returns how long until the cooldown gate opens, zero
// when exploration is already allowed. An in-progress exploration reports
// zero too; it blocks on IsExploring, not on time.
func (e *Engine) TimeUntilNextExplore(st *domain.DiscoveryState, now time.Time) time.Duration {
	if st.LastExploreAt == nil {
		return 0
	}
	remaining := e.cooldown - now.Sub(*st.LastExploreAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// StartExploration opens the gate, rolls environmental conditions and
// selects a species among those active right now, weighted by rarity. The
// resulting encounter is stored on the state for a later claim or cancel.
// Returns nil, false when the gate is closed or no species is active.
//
// The attempt counter and cooldown stamp advance even when the roll finds
// no active species; the player spent the attempt either way.
func (e *Engine) StartExploration(
	st *domain.DiscoveryState,
	catalog []domain.Species,
	rng *rand.Rand,
	now time.Time,
) (*domain.Encounter, bool) {
	if !e.CanExplore(st, now) {
		return nil, false
	}

	t := now
	st.LastExploreAt = &t
	st.TotalExplorations++

	conditions := ConditionsAt(now, rng)
	species, ok := Roll(CandidatesFor(catalog, conditions.TimeOfDay), rng)
	if !ok {
		return nil, false
	}

	st.IsExploring = true
	st.CurrentEncounter = &domain.Encounter{
		SpeciesID:  species.ID,
		Conditions: conditions,
	}
	return st.CurrentEncounter, true
}

// ClaimEncounter converts the pending encounter into a discovery record,
// clearing the encounter and the exploring flag. The log is append-only:
// re-discovering a known species appends a record with IsNew false and does
// not touch the rarity counters. Returns nil, false when there is no
// pending encounter or its species is unknown.
func (e *Engine) ClaimEncounter(st *domain.DiscoveryState, now time.Time) (*domain.Discovery, bool) {
	if st.CurrentEncounter == nil {
		return nil, false
	}

	species, err := domain.SpeciesByID(st.CurrentEncounter.SpeciesID)
	if err != nil {
		return nil, false
	}

	isNew := !st.HasDiscovered(species.ID)
	discovery := domain.Discovery{
		SpeciesID:    species.ID,
		DiscoveredAt: now,
		Rarity:       species.Rarity,
		Conditions:   st.CurrentEncounter.Conditions,
		IsNew:        isNew,
	}

	st.Discoveries = append(st.Discoveries, discovery)
	if isNew {
		if st.RarityCounts == nil {
			st.RarityCounts = make(map[domain.Rarity]int)
		}
		st.RarityCounts[species.Rarity]++
	}
	st.CurrentEncounter = nil
	st.IsExploring = false

	return &st.Discoveries[len(st.Discoveries)-1], true
}

// CancelExploration abandons the pending encounter. The cooldown stamp and
// the attempt counter stay; walking away does not refund the attempt.
func (e *Engine) CancelExploration(st *domain.DiscoveryState) bool {
	if !st.IsExploring && st.CurrentEncounter == nil {
		return false
	}
	st.IsExploring = false
	st.CurrentEncounter = nil
	return true
}

// Reset clears the discovery ledger and the exploration gate.
func (e *Engine) Reset(st *domain.DiscoveryState) {
	*st = *domain.NewDiscoveryState()
}
