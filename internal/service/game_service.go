package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/verdantlabs/verdant-api/internal/domain"
	"github.com/verdantlabs/verdant-api/internal/domain/achievement"
	"github.com/verdantlabs/verdant-api/internal/domain/encounter"
	"github.com/verdantlabs/verdant-api/internal/domain/progression"
	"github.com/verdantlabs/verdant-api/internal/domain/review"
	"github.com/verdantlabs/verdant-api/internal/store"
)

// GameStores bundles the per-container persistence interfaces the game
// service operates on.
type GameStores struct {
	Progression store.ProgressionStore
	Learning    store.LearningStore
	Discovery   store.DiscoveryStore
	Achievement store.AchievementStore
	Settings    store.SettingsStore
}

// GameService orchestrates the progression engine: it sequences the
// cross-container effects of each user action (originating container first,
// then dependents, then achievement evaluation on a fresh snapshot) inside a
// single database transaction.
type GameService struct {
	db     *sql.DB
	stores GameStores

	progression *progression.Service
	tracker     *review.Tracker
	engine      *encounter.Engine

	logger *slog.Logger

	// timeFunc and rng are injectable for deterministic tests.
	timeFunc func() time.Time
	rng      *rand.Rand

	// runTx wraps mutations in a transaction. Tests replace it to run
	// against fake stores without a database.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// GameServiceOption customizes a GameService.
type GameServiceOption func(*GameService)

// WithTimeFunc injects the clock.
func WithTimeFunc(fn func() time.Time) GameServiceOption {
	return func(s *GameService) { s.timeFunc = fn }
}

// WithRand injects the random source used for encounters and weather.
func WithRand(rng *rand.Rand) GameServiceOption {
	return func(s *GameService) { s.rng = rng }
}

// WithProgressionParams overrides the progression tuning.
func WithProgressionParams(params *progression.Params) GameServiceOption {
	return func(s *GameService) { s.progression = progression.NewService(params) }
}

// WithExploreCooldown overrides the exploration cooldown.
func WithExploreCooldown(cooldown time.Duration) GameServiceOption {
	return func(s *GameService) { s.engine = encounter.NewEngine(cooldown) }
}

// withTxRunner replaces the transaction runner. Exposed to tests in this
// package only.
func withTxRunner(fn func(ctx context.Context, fn store.TxFn) error) GameServiceOption {
	return func(s *GameService) { s.runTx = fn }
}

// NewGameService creates a GameService. The db connection is used for
// transaction boundaries; the stores must be backed by the same database.
func NewGameService(db *sql.DB, stores GameStores, logger *slog.Logger, opts ...GameServiceOption) *GameService {
	if logger == nil {
		logger = slog.Default()
	}

	s := &GameService{
		db:          db,
		stores:      stores,
		progression: progression.NewDefaultService(),
		tracker:     review.NewTracker(),
		engine:      encounter.NewDefaultEngine(),
		logger:      logger.With(slog.String("component", "game_service")),
		timeFunc:    time.Now,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.runTx == nil {
		s.runTx = func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, s.db, fn)
		}
	}

	return s
}

// txStores returns the stores bound to the transaction. A nil transaction
// (used by tests with fake stores) returns the stores unchanged.
func (s *GameService) txStores(tx *sql.Tx) GameStores {
	if tx == nil {
		return s.stores
	}
	return GameStores{
		Progression: s.stores.Progression.WithTx(tx),
		Learning:    s.stores.Learning.WithTx(tx),
		Discovery:   s.stores.Discovery.WithTx(tx),
		Achievement: s.stores.Achievement.WithTx(tx),
		Settings:    s.stores.Settings.WithTx(tx),
	}
}

// Container loaders fall back to first-launch defaults when the user has no
// saved record yet, so every read path works for brand-new accounts.

func loadProgression(ctx context.Context, st store.ProgressionStore, userID uuid.UUID) (*domain.ProgressionState, error) {
	state, err := st.Get(ctx, userID)
	if errors.Is(err, store.ErrStateNotFound) {
		return domain.NewProgressionState(), nil
	}
	return state, err
}

func loadLearning(ctx context.Context, st store.LearningStore, userID uuid.UUID) (*domain.LearningState, error) {
	state, err := st.Get(ctx, userID)
	if errors.Is(err, store.ErrStateNotFound) {
		return domain.NewLearningState(), nil
	}
	return state, err
}

func loadDiscovery(ctx context.Context, st store.DiscoveryStore, userID uuid.UUID) (*domain.DiscoveryState, error) {
	state, err := st.Get(ctx, userID)
	if errors.Is(err, store.ErrStateNotFound) {
		return domain.NewDiscoveryState(), nil
	}
	return state, err
}

func loadAchievements(ctx context.Context, st store.AchievementStore, userID uuid.UUID) (*domain.AchievementState, error) {
	state, err := st.Get(ctx, userID)
	if errors.Is(err, store.ErrStateNotFound) {
		return domain.NewAchievementState(), nil
	}
	return state, err
}

func loadSettings(ctx context.Context, st store.SettingsStore, userID uuid.UUID) (*domain.Settings, error) {
	settings, err := st.Get(ctx, userID)
	if errors.Is(err, store.ErrStateNotFound) {
		return domain.NewSettings(), nil
	}
	return settings, err
}

// refresh applies the lazy time-based effects (heart regeneration, daily
// reset) to a loaded progression ledger. Callers persist the ledger if they
// mutate it further; pure reads persist only when refresh changed something.
func (s *GameService) refresh(state *domain.ProgressionState, now time.Time) bool {
	regenerated := s.progression.RegenerateHearts(state, now)
	reset := s.progression.CheckDailyReset(state, now)
	return regenerated > 0 || reset
}

// statsSnapshot aggregates the cross-container stats for achievement
// evaluation. It is assembled fresh after the originating mutation so the
// evaluator always sees the post-mutation world.
func statsSnapshot(
	prog *domain.ProgressionState,
	learning *domain.LearningState,
	discovery *domain.DiscoveryState,
	ach *domain.AchievementState,
) domain.StatsSnapshot {
	return domain.StatsSnapshot{
		CurrentStreak:      prog.CurrentStreak,
		CompletedLessons:   len(learning.CompletedLessons),
		UniqueDiscoveries:  discovery.UniqueDiscoveryCount(),
		Level:              progression.LevelForXP(prog.XP),
		PerfectLessons:     ach.Trackers.PerfectLessons,
		CompletedUnits:     len(learning.CompletedUnits),
		DiscoveredRarities: discovery.DiscoveredRarities(),
		IsEarlyBird:        ach.Trackers.EarlyBirdCount > 0,
		IsNightOwl:         ach.Trackers.NightOwlCount > 0,
	}
}

// evaluateAchievements runs the batch evaluator against a fresh snapshot and
// returns the newly unlocked definitions.
func (s *GameService) evaluateAchievements(
	ctx context.Context,
	userID uuid.UUID,
	prog *domain.ProgressionState,
	learning *domain.LearningState,
	discovery *domain.DiscoveryState,
	ach *domain.AchievementState,
	now time.Time,
) []domain.Achievement {
	unlocked := achievement.Evaluate(ach, statsSnapshot(prog, learning, discovery, ach), now)
	if len(unlocked) > 0 {
		s.logger.InfoContext(ctx, "achievements unlocked",
			slog.String("user_id", userID.String()),
			slog.Int("count", len(unlocked)))
	}
	return unlocked
}
