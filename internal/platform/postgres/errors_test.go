package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/verdant-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	require.NoError(t, MapError(nil))

	err := MapError(fmt.Errorf("scan: %w", sql.ErrNoRows))
	require.ErrorIs(t, err, store.ErrNotFound)

	err = MapError(&pgconn.PgError{Code: uniqueViolationCode})
	require.ErrorIs(t, err, store.ErrDuplicate)

	err = MapError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "game_states_user_id_fkey"})
	require.ErrorIs(t, err, store.ErrInvalidEntity)
	require.Contains(t, err.Error(), "game_states_user_id_fkey")

	plain := errors.New("connection reset")
	require.Equal(t, plain, MapError(plain))
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	require.True(t, IsUniqueViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	require.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolationCode})))
	require.False(t, IsUniqueViolation(errors.New("other")))
	require.False(t, IsUniqueViolation(nil))
}
