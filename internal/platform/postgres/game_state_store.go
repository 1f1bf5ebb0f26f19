package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/verdantlabs/verdant-api/internal/domain"
	"github.com/verdantlabs/verdant-api/internal/platform/logger"
	"github.com/verdantlabs/verdant-api/internal/store"
)

// Container names identify the independently versioned state records in the
// game_states table.
const (
	containerProgression = "progression"
	containerLearning    = "learning"
	containerDiscovery   = "discovery"
	containerAchievement = "achievement"
	containerSettings    = "settings"
)

// stateBlobStore reads and writes one JSONB state record per (user,
// container) pair. Every save bumps the record's version; containers evolve
// independently so a progression write never touches the discovery record.
type stateBlobStore struct {
	db store.DBTX
}

func (s stateBlobStore) withTx(tx *sql.Tx) stateBlobStore {
	return stateBlobStore{db: tx}
}

// load unmarshals the user's record for the container into dest.
// Returns store.ErrStateNotFound when no record exists yet.
func (s stateBlobStore) load(ctx context.Context, userID uuid.UUID, container string, dest any) error {
	query := `
		SELECT state
		FROM game_states
		WHERE user_id = $1 AND container = $2
	`

	var raw []byte
	err := s.db.QueryRowContext(ctx, query, userID, container).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return store.ErrStateNotFound
		}
		return fmt.Errorf("failed to load %s state: %w", container, MapError(err))
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode %s state: %w", container, err)
	}
	return nil
}

// save upserts the user's record for the container, bumping its version.
func (s stateBlobStore) save(ctx context.Context, userID uuid.UUID, container string, state any) error {
	log := logger.FromContext(ctx)

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode %s state: %w", container, err)
	}

	query := `
		INSERT INTO game_states (user_id, container, version, state, created_at, updated_at)
		VALUES ($1, $2, 1, $3, $4, $4)
		ON CONFLICT (user_id, container)
		DO UPDATE SET
			state = EXCLUDED.state,
			version = game_states.version + 1,
			updated_at = EXCLUDED.updated_at
	`

	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx, query, userID, container, raw, now); err != nil {
		log.Error("failed to save game state",
			"user_id", userID,
			"container", container,
			"error", err)
		return fmt.Errorf("failed to save %s state: %w", container, MapError(err))
	}

	return nil
}

// PostgresProgressionStore implements store.ProgressionStore on the
// game_states table.
type PostgresProgressionStore struct {
	blob stateBlobStore
}

// NewPostgresProgressionStore creates a ProgressionStore backed by the given
// connection.
func NewPostgresProgressionStore(db store.DBTX) *PostgresProgressionStore {
	return &PostgresProgressionStore{blob: stateBlobStore{db: db}}
}

var _ store.ProgressionStore = (*PostgresProgressionStore)(nil)

// Get implements store.ProgressionStore.Get
func (s *PostgresProgressionStore) Get(ctx context.Context, userID uuid.UUID) (*domain.ProgressionState, error) {
	var state domain.ProgressionState
	if err := s.blob.load(ctx, userID, containerProgression, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Save implements store.ProgressionStore.Save
func (s *PostgresProgressionStore) Save(ctx context.Context, userID uuid.UUID, state *domain.ProgressionState) error {
	return s.blob.save(ctx, userID, containerProgression, state)
}

// WithTx implements store.ProgressionStore.WithTx
func (s *PostgresProgressionStore) WithTx(tx *sql.Tx) store.ProgressionStore {
	return &PostgresProgressionStore{blob: s.blob.withTx(tx)}
}

// PostgresLearningStore implements store.LearningStore on the game_states
// table.
type PostgresLearningStore struct {
	blob stateBlobStore
}

// NewPostgresLearningStore creates a LearningStore backed by the given
// connection.
func NewPostgresLearningStore(db store.DBTX) *PostgresLearningStore {
	return &PostgresLearningStore{blob: stateBlobStore{db: db}}
}

var _ store.LearningStore = (*PostgresLearningStore)(nil)

// Get implements store.LearningStore.Get
func (s *PostgresLearningStore) Get(ctx context.Context, userID uuid.UUID) (*domain.LearningState, error) {
	var state domain.LearningState
	if err := s.blob.load(ctx, userID, containerLearning, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Save implements store.LearningStore.Save
func (s *PostgresLearningStore) Save(ctx context.Context, userID uuid.UUID, state *domain.LearningState) error {
	return s.blob.save(ctx, userID, containerLearning, state)
}

// WithTx implements store.LearningStore.WithTx
func (s *PostgresLearningStore) WithTx(tx *sql.Tx) store.LearningStore {
	return &PostgresLearningStore{blob: s.blob.withTx(tx)}
}

// PostgresDiscoveryStore implements store.DiscoveryStore on the game_states
// table.
type PostgresDiscoveryStore struct {
	blob stateBlobStore
}

// NewPostgresDiscoveryStore creates a DiscoveryStore backed by the given
// connection.
func NewPostgresDiscoveryStore(db store.DBTX) *PostgresDiscoveryStore {
	return &PostgresDiscoveryStore{blob: stateBlobStore{db: db}}
}

var _ store.DiscoveryStore = (*PostgresDiscoveryStore)(nil)

// Get implements store.DiscoveryStore.Get
func (s *PostgresDiscoveryStore) Get(ctx context.Context, userID uuid.UUID) (*domain.DiscoveryState, error) {
	var state domain.DiscoveryState
	if err := s.blob.load(ctx, userID, containerDiscovery, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Save implements store.DiscoveryStore.Save
func (s *PostgresDiscoveryStore) Save(ctx context.Context, userID uuid.UUID, state *domain.DiscoveryState) error {
	return s.blob.save(ctx, userID, containerDiscovery, state)
}

// WithTx implements store.DiscoveryStore.WithTx
func (s *PostgresDiscoveryStore) WithTx(tx *sql.Tx) store.DiscoveryStore {
	return &PostgresDiscoveryStore{blob: s.blob.withTx(tx)}
}

// PostgresAchievementStore implements store.AchievementStore on the
// game_states table.
type PostgresAchievementStore struct {
	blob stateBlobStore
}

// NewPostgresAchievementStore creates an AchievementStore backed by the
// given connection.
func NewPostgresAchievementStore(db store.DBTX) *PostgresAchievementStore {
	return &PostgresAchievementStore{blob: stateBlobStore{db: db}}
}

var _ store.AchievementStore = (*PostgresAchievementStore)(nil)

// Get implements store.AchievementStore.Get
func (s *PostgresAchievementStore) Get(ctx context.Context, userID uuid.UUID) (*domain.AchievementState, error) {
	var state domain.AchievementState
	if err := s.blob.load(ctx, userID, containerAchievement, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Save implements store.AchievementStore.Save
func (s *PostgresAchievementStore) Save(ctx context.Context, userID uuid.UUID, state *domain.AchievementState) error {
	return s.blob.save(ctx, userID, containerAchievement, state)
}

// WithTx implements store.AchievementStore.WithTx
func (s *PostgresAchievementStore) WithTx(tx *sql.Tx) store.AchievementStore {
	return &PostgresAchievementStore{blob: s.blob.withTx(tx)}
}

// PostgresSettingsStore implements store.SettingsStore on the game_states
// table.
type PostgresSettingsStore struct {
	blob stateBlobStore
}

// NewPostgresSettingsStore creates a SettingsStore backed by the given
// connection.
func NewPostgresSettingsStore(db store.DBTX) *PostgresSettingsStore {
	return &PostgresSettingsStore{blob: stateBlobStore{db: db}}
}

var _ store.SettingsStore = (*PostgresSettingsStore)(nil)

// Get implements store.SettingsStore.Get
func (s *PostgresSettingsStore) Get(ctx context.Context, userID uuid.UUID) (*domain.Settings, error) {
	var settings domain.Settings
	if err := s.blob.load(ctx, userID, containerSettings, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save implements store.SettingsStore.Save
func (s *PostgresSettingsStore) Save(ctx context.Context, userID uuid.UUID, settings *domain.Settings) error {
	return s.blob.save(ctx, userID, containerSettings, settings)
}

// WithTx implements store.SettingsStore.WithTx
func (s *PostgresSettingsStore) WithTx(tx *sql.Tx) store.SettingsStore {
	return &PostgresSettingsStore{blob: s.blob.withTx(tx)}
}
