package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelErrorWrapping(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, ErrUserNotFound, ErrNotFound)
	require.ErrorIs(t, ErrStateNotFound, ErrNotFound)
	require.ErrorIs(t, ErrEmailExists, ErrDuplicate)

	require.True(t, IsNotFoundError(ErrUserNotFound))
	require.True(t, IsNotFoundError(fmt.Errorf("lookup: %w", ErrStateNotFound)))
	require.False(t, IsNotFoundError(ErrEmailExists))

	require.True(t, IsDuplicateError(ErrEmailExists))
	require.False(t, IsDuplicateError(ErrUserNotFound))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := NewStoreError("progression", "save", "could not write state", cause)

	require.Contains(t, err.Error(), "save operation on progression failed")
	require.Contains(t, err.Error(), "connection refused")
	require.ErrorIs(t, err, cause)

	bare := NewStoreError("user", "create", "validation failed", nil)
	require.Equal(t, "create operation on user failed: validation failed", bare.Error())
}
