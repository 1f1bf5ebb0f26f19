package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/verdant-api/internal/domain"
	"github.com/verdantlabs/verdant-api/internal/service"
)

type stubDiscoveryService struct {
	view       *service.EncounterView
	claim      *service.ClaimResult
	state      *domain.DiscoveryState
	status     *service.ExploreStatus
	conditions domain.Conditions
	err        error
}

func (s *stubDiscoveryService) Explore(context.Context, uuid.UUID) (*service.EncounterView, error) {
	return s.view, s.err
}

func (s *stubDiscoveryService) ClaimDiscovery(context.Context, uuid.UUID) (*service.ClaimResult, error) {
	return s.claim, s.err
}

func (s *stubDiscoveryService) CancelExploration(context.Context, uuid.UUID) error {
	return s.err
}

func (s *stubDiscoveryService) ListDiscoveries(context.Context, uuid.UUID) (*domain.DiscoveryState, *service.ExploreStatus, error) {
	return s.state, s.status, s.err
}

func (s *stubDiscoveryService) CurrentConditions(context.Context) domain.Conditions {
	return s.conditions
}

func TestExploreHandler(t *testing.T) {
	t.Parallel()

	stub := &stubDiscoveryService{view: &service.EncounterView{
		Species:    domain.Species{ID: "toucan", Rarity: domain.RarityUncommon, XP: 30},
		Conditions: domain.Conditions{TimeOfDay: domain.TimeDay, Weather: domain.WeatherClear},
		IsNew:      true,
	}}
	handler := NewDiscoveryHandler(stub)

	rec := httptest.NewRecorder()
	handler.Explore(rec, authedRequest(http.MethodPost, "/api/explore", "", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	var got service.EncounterView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "toucan", got.Species.ID)
	require.True(t, got.IsNew)
}

func TestExploreErrorMapping(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "cooldown", err: service.ErrCooldownActive, wantStatus: http.StatusTooManyRequests},
		{name: "already exploring", err: service.ErrAlreadyExploring, wantStatus: http.StatusConflict},
		{name: "nothing active", err: service.ErrNoEncounter, wantStatus: http.StatusConflict},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			handler := NewDiscoveryHandler(&stubDiscoveryService{err: tc.err})
			rec := httptest.NewRecorder()
			handler.Explore(rec, authedRequest(http.MethodPost, "/api/explore", "", uuid.New()))
			require.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestClaimHandler(t *testing.T) {
	t.Parallel()

	stub := &stubDiscoveryService{claim: &service.ClaimResult{
		Discovery: &domain.Discovery{SpeciesID: "jaguar", Rarity: domain.RarityLegendary, IsNew: true},
		Rewards:   &service.RewardSummary{TotalXP: 130},
	}}
	handler := NewDiscoveryHandler(stub)

	rec := httptest.NewRecorder()
	handler.Claim(rec, authedRequest(http.MethodPost, "/api/explore/claim", "", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	var got service.ClaimResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "jaguar", got.Discovery.SpeciesID)
	require.Equal(t, 130, got.Rewards.TotalXP)
}

func TestDiscoveryList(t *testing.T) {
	t.Parallel()

	state := domain.NewDiscoveryState()
	state.Discoveries = []domain.Discovery{
		{SpeciesID: "iguana", DiscoveredAt: time.Now().UTC(), Rarity: domain.RarityCommon, IsNew: true},
	}
	state.RarityCounts[domain.RarityCommon] = 1

	handler := NewDiscoveryHandler(&stubDiscoveryService{
		state:  state,
		status: &service.ExploreStatus{CanExplore: true},
	})

	rec := httptest.NewRecorder()
	handler.List(rec, authedRequest(http.MethodGet, "/api/discoveries", "", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Contains(t, got, "discoveries")
	require.Contains(t, got, "unique_count")
	require.Contains(t, got, "status")
}

func TestDiscoveryListEmptyNotNull(t *testing.T) {
	t.Parallel()

	handler := NewDiscoveryHandler(&stubDiscoveryService{
		state:  domain.NewDiscoveryState(),
		status: &service.ExploreStatus{CanExplore: true},
	})

	rec := httptest.NewRecorder()
	handler.List(rec, authedRequest(http.MethodGet, "/api/discoveries", "", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Discoveries []domain.Discovery `json:"discoveries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.Discoveries)
	require.Empty(t, got.Discoveries)
}

func TestConditionsHandler(t *testing.T) {
	t.Parallel()

	handler := NewDiscoveryHandler(&stubDiscoveryService{
		conditions: domain.Conditions{TimeOfDay: domain.TimeNight, Weather: domain.WeatherRainy},
	})

	rec := httptest.NewRecorder()
	handler.Conditions(rec, authedRequest(http.MethodGet, "/api/explore/conditions", "", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.Conditions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, domain.TimeNight, got.TimeOfDay)
}
