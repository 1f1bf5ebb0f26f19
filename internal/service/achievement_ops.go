package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/verdantlabs/verdant-api/internal/domain"
	"github.com/verdantlabs/verdant-api/internal/domain/achievement"
)

// AchievementView pairs a catalog definition with the user's unlock state.
type AchievementView struct {
	domain.Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// ListAchievements returns the full catalog merged with the user's unlock
// records, in catalog order.
func (s *GameService) ListAchievements(ctx context.Context, userID uuid.UUID) ([]AchievementView, error) {
	state, err := loadAchievements(ctx, s.stores.Achievement, userID)
	if err != nil {
		return nil, NewGameServiceError("list achievements", "failed to load achievement state", err)
	}

	unlockedAt := make(map[string]time.Time, len(state.Unlocked))
	for _, u := range state.Unlocked {
		unlockedAt[u.AchievementID] = u.UnlockedAt
	}

	catalog := achievement.Catalog()
	views := make([]AchievementView, 0, len(catalog))
	for _, def := range catalog {
		view := AchievementView{Achievement: def}
		if at, ok := unlockedAt[def.ID]; ok {
			view.Unlocked = true
			at := at
			view.UnlockedAt = &at
		}
		views = append(views, view)
	}
	return views, nil
}

// RecentAchievements returns the unlock notifications awaiting
// acknowledgment, resolved to their catalog definitions.
func (s *GameService) RecentAchievements(ctx context.Context, userID uuid.UUID) ([]domain.Achievement, error) {
	state, err := loadAchievements(ctx, s.stores.Achievement, userID)
	if err != nil {
		return nil, NewGameServiceError("recent achievements", "failed to load achievement state", err)
	}

	var recent []domain.Achievement
	for _, id := range state.RecentlyUnlocked {
		if def, ok := achievement.ByID(id); ok {
			recent = append(recent, def)
		}
	}
	return recent, nil
}

// AcknowledgeAchievements drains the notification queue. The unlocks
// themselves are untouched.
func (s *GameService) AcknowledgeAchievements(ctx context.Context, userID uuid.UUID) error {
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		stores := s.txStores(tx)

		state, err := loadAchievements(ctx, stores.Achievement, userID)
		if err != nil {
			return err
		}
		if len(state.RecentlyUnlocked) == 0 {
			return nil
		}
		state.ClearRecentlyUnlocked()
		return stores.Achievement.Save(ctx, userID, state)
	})
	if err != nil {
		return NewGameServiceError("acknowledge achievements", "failed to clear notifications", err)
	}
	return nil
}
