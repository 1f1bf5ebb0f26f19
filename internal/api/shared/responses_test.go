package shared

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTracedRequest(t *testing.T, traceID string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/progression", nil)
	if traceID != "" {
		req = req.WithContext(context.WithValue(req.Context(), TraceIDKey, traceID))
	}
	return req
}

// captureLogs swaps the default logger for one writing to the returned
// builder, restoring the original when the test ends. Tests using it must
// not run in parallel.
func captureLogs(t *testing.T) *strings.Builder {
	t.Helper()
	var buf strings.Builder
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	t.Cleanup(func() { slog.SetDefault(old) })
	return &buf
}

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	RespondWithJSON(w, newTracedRequest(t, ""), http.StatusOK, map[string]interface{}{
		"xp":    1250,
		"level": 5,
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, float64(1250), body["xp"])
	require.Equal(t, float64(5), body["level"])
}

type selfReferential struct {
	Self *selfReferential
}

func TestRespondWithJSONEncodingFailure(t *testing.T) {
	buf := captureLogs(t)

	data := &selfReferential{}
	data.Self = data

	w := httptest.NewRecorder()
	RespondWithJSON(w, newTracedRequest(t, ""), http.StatusOK, data)

	// The status was already written; the failure only surfaces in logs.
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, buf.String(), "failed to encode JSON response")
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	RespondWithError(w, newTracedRequest(t, "trace-abc"), http.StatusConflict, "No hearts remaining")

	require.Equal(t, http.StatusConflict, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "No hearts remaining", resp.Error)
	require.Equal(t, "trace-abc", resp.TraceID)
	require.NotContains(t, w.Body.String(), `"Code"`)
}

func TestRespondWithErrorNoTraceID(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	RespondWithError(w, newTracedRequest(t, ""), http.StatusUnauthorized, "Unauthorized")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Unauthorized", resp.Error)
	require.Empty(t, resp.TraceID)
}

func TestRespondWithErrorAndLogLevels(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		message   string
		wantLevel string
	}{
		{
			name:      "server fault logs at error",
			status:    http.StatusInternalServerError,
			message:   "Internal server error",
			wantLevel: "ERROR",
		},
		{
			name:      "client error logs at debug",
			status:    http.StatusBadRequest,
			message:   "Invalid daily goal",
			wantLevel: "DEBUG",
		},
		{
			name:      "refill cooldown logs at warn",
			status:    http.StatusTooManyRequests,
			message:   "Hearts were refilled recently",
			wantLevel: "WARN",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := captureLogs(t)

			w := httptest.NewRecorder()
			cause := errors.New("session lookup failed for player 1d2c3b4a-0000-0000-0000-000000000000")
			RespondWithErrorAndLog(w, newTracedRequest(t, "trace-xyz"), tc.status, tc.message, cause)

			require.Equal(t, tc.status, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Equal(t, tc.message, resp.Error)
			require.Equal(t, "trace-xyz", resp.TraceID)

			logs := buf.String()
			require.Contains(t, logs, tc.wantLevel)
			require.Contains(t, logs, "trace_id=trace-xyz")
			require.Contains(t, logs, "error_type=")
			require.NotContains(t, logs, "1d2c3b4a", "raw identifiers must not reach logs")
			require.NotContains(t, w.Body.String(), "session lookup failed")
		})
	}
}

func TestRespondWithErrorAndLogNilError(t *testing.T) {
	buf := captureLogs(t)

	w := httptest.NewRecorder()
	RespondWithErrorAndLog(w, newTracedRequest(t, "trace-nil"), http.StatusNotFound, "Player not found", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.NotContains(t, buf.String(), "error_type=")
}
