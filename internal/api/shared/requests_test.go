package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type startLessonPayload struct {
		LessonID string `json:"lesson_id"`
	}

	tests := []struct {
		name        string
		body        string
		errContains string
	}{
		{
			name: "valid payload",
			body: `{"lesson_id": "forest-1"}`,
		},
		{
			name:        "trailing comma",
			body:        `{"lesson_id": "forest-1",}`,
			errContains: "invalid character",
		},
		{
			name:        "empty body",
			body:        "",
			errContains: "EOF",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/api/lessons", strings.NewReader(tc.body))

			var payload startLessonPayload
			err := DecodeJSON(req, &payload)
			if tc.errContains != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.errContains)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "forest-1", payload.LessonID)
		})
	}
}

type brokenBody struct{}

func (brokenBody) Read(p []byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestDecodeJSONReadFailure(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/lessons", brokenBody{})

	var payload struct{}
	err := DecodeJSON(req, &payload)
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection reset")
}

// dailyGoalPayload opts out of tag validation with its own Validate method.
type dailyGoalPayload struct {
	DailyGoalXP int `validate:"required"`
}

func (p *dailyGoalPayload) Validate() error {
	if p.DailyGoalXP < 0 {
		return errors.New("daily goal must not be negative")
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	type taggedPayload struct {
		LessonID string `validate:"required"`
	}

	tests := []struct {
		name    string
		req     interface{}
		wantErr bool
	}{
		{
			name:    "tagged payload passing",
			req:     &taggedPayload{LessonID: "forest-1"},
			wantErr: false,
		},
		{
			name:    "tagged payload failing",
			req:     &taggedPayload{},
			wantErr: true,
		},
		{
			name: "custom Validate takes precedence over tags",
			// The required tag would reject the zero value, but the
			// custom method allows it.
			req:     &dailyGoalPayload{DailyGoalXP: 0},
			wantErr: false,
		},
		{
			name:    "custom Validate rejecting",
			req:     &dailyGoalPayload{DailyGoalXP: -10},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateRequest(tc.req)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
