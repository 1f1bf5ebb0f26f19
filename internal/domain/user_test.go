package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("player@example.com", "correct-horse-battery")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, user.ID)
	require.Equal(t, "player@example.com", user.Email)
	require.False(t, user.CreatedAt.IsZero())
	require.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid", email: "a@b.co", password: "a-long-enough-password"},
		{name: "empty email", email: "", password: "a-long-enough-password", wantErr: ErrEmptyEmail},
		{name: "missing at sign", email: "nobody.example.com", password: "a-long-enough-password", wantErr: ErrInvalidEmail},
		{name: "missing domain dot", email: "nobody@example", password: "a-long-enough-password", wantErr: ErrInvalidEmail},
		{name: "short password", email: "a@b.co", password: "tooshort", wantErr: ErrPasswordTooShort},
		{name: "long password", email: "a@b.co", password: strings.Repeat("x", 73), wantErr: ErrPasswordTooLong},
		{name: "empty password without hash", email: "a@b.co", password: "", wantErr: ErrEmptyPassword},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			user := &User{ID: uuid.New(), Email: tc.email, Password: tc.password}
			err := user.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestUserValidateHashedOnly(t *testing.T) {
	t.Parallel()

	user := &User{ID: uuid.New(), Email: "a@b.co", HashedPassword: "$2a$10$abcdef"}
	require.NoError(t, user.Validate(), "a stored user carries only the hash")
}

func TestUserValidateEmptyID(t *testing.T) {
	t.Parallel()

	user := &User{Email: "a@b.co", Password: "a-long-enough-password"}
	require.ErrorIs(t, user.Validate(), ErrEmptyUserID)
}
