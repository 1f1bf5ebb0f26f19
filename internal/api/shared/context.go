package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"
)

// ContextKey is the type for request-scoped values stored by this package.
type ContextKey string

const (
	// UserIDContextKey carries the authenticated player's ID, set by the
	// auth middleware.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey carries the per-request trace ID, set by the trace
	// middleware.
	TraceIDKey ContextKey = "traceID"
)

// traceIDBytes yields 32 hex characters per trace ID.
const traceIDBytes = 16

// SetTraceID returns a context carrying a fresh trace ID.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, NewTraceID())
}

// GetTraceID returns the trace ID from the context, or the empty string
// when none was set.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// NewTraceID returns a random 32-character hex ID for log correlation.
// If the system entropy source fails, the ID degrades to a
// timestamp-derived value; it must never be a constant, or every request
// in the logs would collapse into one.
func NewTraceID() string {
	b := make([]byte, traceIDBytes)
	if _, err := rand.Read(b); err != nil {
		now := time.Now()
		binary.BigEndian.PutUint64(b[:8], uint64(now.UnixNano()))
		binary.BigEndian.PutUint32(b[8:12], uint32(now.Nanosecond()))
		binary.BigEndian.PutUint32(b[12:], uint32(now.Unix()))
	}
	return hex.EncodeToString(b)
}
