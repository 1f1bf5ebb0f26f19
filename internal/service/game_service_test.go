package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/verdant-api/internal/domain"
	"github.com/verdantlabs/verdant-api/internal/store"
)

// The fakes below persist container state in memory through JSON round
// trips, so a mutation that is never saved is visible as a test failure the
// same way it would be against the real database.

func cloneState[T any](t *testing.T, v *T) *T {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	out := new(T)
	require.NoError(t, json.Unmarshal(raw, out))
	return out
}

type fakeContainerStore[T any] struct {
	t      *testing.T
	states map[uuid.UUID]*T
}

func newFakeContainerStore[T any](t *testing.T) *fakeContainerStore[T] {
	return &fakeContainerStore[T]{t: t, states: make(map[uuid.UUID]*T)}
}

func (f *fakeContainerStore[T]) Get(_ context.Context, userID uuid.UUID) (*T, error) {
	st, ok := f.states[userID]
	if !ok {
		return nil, store.ErrStateNotFound
	}
	return cloneState(f.t, st), nil
}

func (f *fakeContainerStore[T]) Save(_ context.Context, userID uuid.UUID, state *T) error {
	f.states[userID] = cloneState(f.t, state)
	return nil
}

type fakeProgressionStore struct{ *fakeContainerStore[domain.ProgressionState] }
type fakeLearningStore struct{ *fakeContainerStore[domain.LearningState] }
type fakeDiscoveryStore struct{ *fakeContainerStore[domain.DiscoveryState] }
type fakeAchievementStore struct{ *fakeContainerStore[domain.AchievementState] }
type fakeSettingsStore struct{ *fakeContainerStore[domain.Settings] }

func (f fakeProgressionStore) WithTx(*sql.Tx) store.ProgressionStore { return f }
func (f fakeLearningStore) WithTx(*sql.Tx) store.LearningStore       { return f }
func (f fakeDiscoveryStore) WithTx(*sql.Tx) store.DiscoveryStore     { return f }
func (f fakeAchievementStore) WithTx(*sql.Tx) store.AchievementStore { return f }
func (f fakeSettingsStore) WithTx(*sql.Tx) store.SettingsStore       { return f }

type fakeGameStores struct {
	progression fakeProgressionStore
	learning    fakeLearningStore
	discovery   fakeDiscoveryStore
	achievement fakeAchievementStore
	settings    fakeSettingsStore
}

func newFakeGameStores(t *testing.T) *fakeGameStores {
	return &fakeGameStores{
		progression: fakeProgressionStore{newFakeContainerStore[domain.ProgressionState](t)},
		learning:    fakeLearningStore{newFakeContainerStore[domain.LearningState](t)},
		discovery:   fakeDiscoveryStore{newFakeContainerStore[domain.DiscoveryState](t)},
		achievement: fakeAchievementStore{newFakeContainerStore[domain.AchievementState](t)},
		settings:    fakeSettingsStore{newFakeContainerStore[domain.Settings](t)},
	}
}

func (f *fakeGameStores) stores() GameStores {
	return GameStores{
		Progression: f.progression,
		Learning:    f.learning,
		Discovery:   f.discovery,
		Achievement: f.achievement,
		Settings:    f.settings,
	}
}

// fakeClock lets tests move time forward between calls.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestGameService(t *testing.T, start time.Time) (*GameService, *fakeGameStores, *fakeClock) {
	t.Helper()

	fakes := newFakeGameStores(t)
	clock := &fakeClock{now: start}

	svc := NewGameService(nil, fakes.stores(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithTimeFunc(clock.Now),
		WithRand(rand.New(rand.NewSource(1))),
		withTxRunner(func(ctx context.Context, fn store.TxFn) error {
			return fn(ctx, nil)
		}),
	)
	return svc, fakes, clock
}

func TestGetProgressionFirstLaunchDefaults(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestGameService(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	userID := uuid.New()

	view, err := svc.GetProgression(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 0, view.State.XP)
	require.Equal(t, domain.DefaultMaxHearts, view.State.Hearts)
	require.Equal(t, domain.DefaultStartingGems, view.State.Gems)
	require.Equal(t, 1, view.Level.Level)
	require.False(t, view.Regenerating)
	require.False(t, view.StreakAtRisk)
}

func TestGetProgressionPersistsLazyRegeneration(t *testing.T) {
	t.Parallel()
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, fakes, clock := newTestGameService(t, start)
	userID := uuid.New()

	st := domain.NewProgressionState()
	st.Hearts = 2
	lost := start.Add(-65 * time.Minute)
	st.LastHeartLossAt = &lost
	require.NoError(t, fakes.progression.Save(context.Background(), userID, st))

	view, err := svc.GetProgression(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 4, view.State.Hearts, "two hearts regenerate in 65 minutes")

	// The refreshed state was written back.
	clock.Advance(time.Second)
	stored, err := fakes.progression.Get(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, 4, stored.Hearts)
}

func TestResetProgressWipesAllContainers(t *testing.T) {
	t.Parallel()
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, fakes, _ := newTestGameService(t, start)
	userID := uuid.New()
	ctx := context.Background()

	st := domain.NewProgressionState()
	st.XP = 500
	require.NoError(t, fakes.progression.Save(ctx, userID, st))
	learning := domain.NewLearningState()
	learning.CompletedLessons = []string{"l1"}
	require.NoError(t, fakes.learning.Save(ctx, userID, learning))

	require.NoError(t, svc.ResetProgress(ctx, userID))

	prog, err := fakes.progression.Get(ctx, userID)
	require.NoError(t, err)
	require.Zero(t, prog.XP)
	require.Equal(t, domain.DefaultStartingGems, prog.Gems)

	ln, err := fakes.learning.Get(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, ln.CompletedLessons)
}

func TestAwardDailyGoalBonusOnce(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _, _ := newTestGameService(t, now)

	st := domain.NewProgressionState()
	st.DailyXPGoal = 60

	sum := &RewardSummary{}
	svc.award(st, sum, AwardLessonComplete, 50, now)
	require.False(t, sum.DailyGoalMet)
	require.Equal(t, 50, sum.TotalXP)

	// Crossing the goal pays the one-time bonus.
	svc.award(st, sum, AwardLessonComplete, 50, now)
	require.True(t, sum.DailyGoalMet)
	require.Equal(t, 130, sum.TotalXP, "50 + 50 + 30 goal bonus")
	require.Equal(t, 130, st.XP)

	// Further awards the same day do not pay it again.
	svc.award(st, sum, AwardLessonComplete, 50, now)
	require.Equal(t, 180, sum.TotalXP)
}
