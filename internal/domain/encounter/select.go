package encounter

import (
	"math/rand"

	"github.com/verdantlabs/verdant-api/internal/domain"
)

// rarityWeights controls how often each tier is encountered.
var rarityWeights = map[domain.Rarity]int{
	domain.RarityCommon:    50,
	domain.RarityUncommon:  30,
	domain.RarityRare:      15,
	domain.RarityLegendary: 5,
}

// Weight returns the encounter weight for a rarity tier. Unknown tiers
// weigh zero and can never be selected.
func Weight(r domain.Rarity) int {
	return rarityWeights[r]
}

// CandidatesFor filters the catalog down to species active during the given
// time of day. List order follows the catalog and is the selection
// tie-break order.
func CandidatesFor(catalog []domain.Species, t domain.TimeOfDay) []domain.Species {
	var candidates []domain.Species
	for _, s := range catalog {
		if s.ActiveDuring(t) {
			candidates = append(candidates, s)
		}
	}
	return candidates
}

// SelectByWeight resolves a cumulative-weight draw over the candidates.
// The draw must lie in [0, totalWeight); the walk subtracts each
// candidate's weight in list order and stops at the first candidate that
// drives the remainder below zero. Each candidate thus owns the half-open
// interval [cumulativeBefore, cumulativeAfter): a draw landing exactly on
// a boundary belongs to the next candidate. With weights 50/50 a draw of
// 50 selects the second.
//
// The boolean is false when there are no candidates or no positive weight.
func SelectByWeight(candidates []domain.Species, draw float64) (domain.Species, bool) {
	if len(candidates) == 0 {
		return domain.Species{}, false
	}

	total := TotalWeight(candidates)
	if total <= 0 {
		return domain.Species{}, false
	}

	remainder := draw
	for _, s := range candidates {
		remainder -= float64(Weight(s.Rarity))
		if remainder < 0 {
			return s, true
		}
	}

	// draw >= totalWeight; out of contract, fall back to the last candidate.
	return candidates[len(candidates)-1], true
}

// TotalWeight sums the candidates' rarity weights.
func TotalWeight(candidates []domain.Species) int {
	total := 0
	for _, s := range candidates {
		total += Weight(s.Rarity)
	}
	return total
}

// Roll draws a uniform value in [0, totalWeight) and resolves it with
// SelectByWeight.
func Roll(candidates []domain.Species, rng *rand.Rand) (domain.Species, bool) {
	total := TotalWeight(candidates)
	if total <= 0 {
		return domain.Species{}, false
	}
	return SelectByWeight(candidates, rng.Float64()*float64(total))
}
