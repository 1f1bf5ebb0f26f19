package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAchievementUnlock(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	st := NewAchievementState()
	require.False(t, st.IsUnlocked("streak-3"))

	require.True(t, st.Unlock("streak-3", now))
	require.True(t, st.IsUnlocked("streak-3"))
	require.Equal(t, 1, st.UnlockedCount())
	require.Equal(t, []string{"streak-3"}, st.RecentlyUnlocked)
	require.Equal(t, now, st.Unlocked[0].UnlockedAt)

	// A second unlock of the same achievement changes nothing.
	require.False(t, st.Unlock("streak-3", now.Add(time.Hour)))
	require.Equal(t, 1, st.UnlockedCount())
	require.Equal(t, now, st.Unlocked[0].UnlockedAt)
}

func TestClearRecentlyUnlocked(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	st := NewAchievementState()
	st.Unlock("first-lesson", now)
	st.Unlock("first-unit", now)
	require.Len(t, st.RecentlyUnlocked, 2)

	st.ClearRecentlyUnlocked()
	require.Empty(t, st.RecentlyUnlocked)
	require.Equal(t, 2, st.UnlockedCount(), "clearing notifications keeps the unlocks")
}

func TestStatsSnapshotHasRarity(t *testing.T) {
	t.Parallel()

	stats := StatsSnapshot{DiscoveredRarities: []Rarity{RarityCommon, RarityRare}}
	require.True(t, stats.HasRarity(RarityRare))
	require.False(t, stats.HasRarity(RarityLegendary))
}
