package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/verdantlabs/verdant-api/internal/domain"
	"github.com/verdantlabs/verdant-api/internal/domain/encounter"
)

// EncounterView describes a pending encounter with the species details the
// client needs to render it.
type EncounterView struct {
	Species    domain.Species    `json:"species"`
	Conditions domain.Conditions `json:"conditions"`
	IsNew      bool              `json:"is_new"`
}

// ClaimResult is the outcome of claiming an encounter: the discovery record,
// the XP paid for it and any achievements it unlocked.
type ClaimResult struct {
	Discovery    *domain.Discovery    `json:"discovery"`
	Rewards      *RewardSummary       `json:"rewards"`
	Achievements []domain.Achievement `json:"achievements,omitempty"`
}

// ExploreStatus reports whether the gate is open and, if not, how long
// until it opens.
type ExploreStatus struct {
	CanExplore  bool          `json:"can_explore"`
	IsExploring bool          `json:"is_exploring"`
	NextIn      time.Duration `json:"next_in"`
}

// Explore rolls a wildlife encounter. Returns ErrAlreadyExploring when an
// unclaimed encounter is pending, ErrCooldownActive while the gate is
// closed, and ErrNoEncounter when no species is active at this hour. The
// attempt is spent and persisted even on an empty roll.
func (s *GameService) Explore(ctx context.Context, userID uuid.UUID) (*EncounterView, error) {
	now := s.timeFunc()

	var view *EncounterView
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		stores := s.txStores(tx)

		state, err := loadDiscovery(ctx, stores.Discovery, userID)
		if err != nil {
			return err
		}
		if state.IsExploring {
			return ErrAlreadyExploring
		}
		if !s.engine.CanExplore(state, now) {
			return ErrCooldownActive
		}

		enc, ok := s.engine.StartExploration(state, domain.SpeciesCatalog(), s.rng, now)
		if !ok {
			// The empty roll still consumed the attempt.
			if err := stores.Discovery.Save(ctx, userID, state); err != nil {
				return err
			}
			return ErrNoEncounter
		}

		if err := stores.Discovery.Save(ctx, userID, state); err != nil {
			return err
		}

		species, err := domain.SpeciesByID(enc.SpeciesID)
		if err != nil {
			return err
		}
		view = &EncounterView{
			Species:    species,
			Conditions: enc.Conditions,
			IsNew:      !state.HasDiscovered(species.ID),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "encounter rolled",
		"user_id", userID.String(),
		"species_id", view.Species.ID,
		"rarity", string(view.Species.Rarity))
	return view, nil
}

// ClaimDiscovery converts the pending encounter into a discovery record and
// pays the species XP. The XP is paid on every claim, including
// re-discoveries of a known species. Returns ErrNoEncounter when nothing is
// pending.
func (s *GameService) ClaimDiscovery(ctx context.Context, userID uuid.UUID) (*ClaimResult, error) {
	now := s.timeFunc()

	var result *ClaimResult
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		stores := s.txStores(tx)

		state, err := loadDiscovery(ctx, stores.Discovery, userID)
		if err != nil {
			return err
		}

		discovery, ok := s.engine.ClaimEncounter(state, now)
		if !ok {
			return ErrNoEncounter
		}

		species, err := domain.SpeciesByID(discovery.SpeciesID)
		if err != nil {
			return err
		}

		prog, err := loadProgression(ctx, stores.Progression, userID)
		if err != nil {
			return err
		}
		s.refresh(prog, now)

		// Claiming counts as activity, so the streak machine runs before
		// the award stamps the activity time.
		s.progression.CheckAndUpdateStreak(prog, now)

		rewards := &RewardSummary{}
		s.award(prog, rewards, AwardDiscovery, species.XP, now)

		ach, err := loadAchievements(ctx, stores.Achievement, userID)
		if err != nil {
			return err
		}
		learning, err := loadLearning(ctx, stores.Learning, userID)
		if err != nil {
			return err
		}
		unlocked := s.evaluateAchievements(ctx, userID, prog, learning, state, ach, now)

		if err := stores.Discovery.Save(ctx, userID, state); err != nil {
			return err
		}
		if err := stores.Progression.Save(ctx, userID, prog); err != nil {
			return err
		}
		if err := stores.Achievement.Save(ctx, userID, ach); err != nil {
			return err
		}

		result = &ClaimResult{
			Discovery:    discovery,
			Rewards:      rewards,
			Achievements: unlocked,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "discovery claimed",
		"user_id", userID.String(),
		"species_id", result.Discovery.SpeciesID,
		"is_new", result.Discovery.IsNew)
	return result, nil
}

// CancelExploration walks away from the pending encounter. The cooldown is
// not refunded. Returns ErrNoEncounter when nothing is pending.
func (s *GameService) CancelExploration(ctx context.Context, userID uuid.UUID) error {
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		stores := s.txStores(tx)

		state, err := loadDiscovery(ctx, stores.Discovery, userID)
		if err != nil {
			return err
		}
		if !s.engine.CancelExploration(state) {
			return ErrNoEncounter
		}
		return stores.Discovery.Save(ctx, userID, state)
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "exploration cancelled", "user_id", userID.String())
	return nil
}

// ListDiscoveries returns the discovery ledger together with the gate
// status.
func (s *GameService) ListDiscoveries(ctx context.Context, userID uuid.UUID) (*domain.DiscoveryState, *ExploreStatus, error) {
	state, err := loadDiscovery(ctx, s.stores.Discovery, userID)
	if err != nil {
		return nil, nil, NewGameServiceError("list discoveries", "failed to load discovery state", err)
	}

	now := s.timeFunc()
	status := &ExploreStatus{
		CanExplore:  !state.IsExploring && s.engine.CanExplore(state, now),
		IsExploring: state.IsExploring,
		NextIn:      s.engine.TimeUntilNextExplore(state, now),
	}
	return state, status, nil
}

// CurrentConditions reports the time of day and a fresh weather roll.
// Weather is rolled per request, not stored; only the conditions captured
// on an encounter persist.
func (s *GameService) CurrentConditions(ctx context.Context) domain.Conditions {
	return encounter.ConditionsAt(s.timeFunc(), s.rng)
}
