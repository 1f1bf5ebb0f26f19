// Package service provides application-level services orchestrating the
// progression engine across its state containers.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for
// with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrNoHearts indicates the user has no hearts left to start a lesson.
	// API layer should map this to HTTP 409 Conflict.
	ErrNoHearts = errors.New("no hearts remaining")

	// ErrHeartsFull indicates a refill was requested with the pool already full.
	ErrHeartsFull = errors.New("hearts already full")

	// ErrInsufficientGems indicates the gem balance does not cover a purchase.
	ErrInsufficientGems = errors.New("insufficient gems")

	// ErrLessonInProgress indicates a lesson session is already open.
	ErrLessonInProgress = errors.New("a lesson is already in progress")

	// ErrNoActiveLesson indicates an operation that needs an open lesson
	// session found none.
	ErrNoActiveLesson = errors.New("no lesson in progress")

	// ErrUnitAlreadyCompleted indicates the unit was completed before.
	ErrUnitAlreadyCompleted = errors.New("unit already completed")

	// ErrCooldownActive indicates the exploration cooldown has not elapsed.
	ErrCooldownActive = errors.New("exploration cooldown active")

	// ErrAlreadyExploring indicates an exploration is already in progress.
	ErrAlreadyExploring = errors.New("exploration already in progress")

	// ErrNoEncounter indicates there is no pending encounter to act on, or
	// an exploration found no species active right now.
	ErrNoEncounter = errors.New("no encounter available")

	// ErrInvalidDailyGoal indicates a non-positive daily XP goal.
	ErrInvalidDailyGoal = errors.New("daily goal must be positive")

	// ErrInvalidCredentials indicates a failed login attempt. The API layer
	// must not reveal whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// GameServiceError is a custom error type for unexpected game service
// failures (storage, encoding), carrying the operation for diagnostics.
type GameServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for GameServiceError.
func (e *GameServiceError) Error() string {
	if e.Err != nil {
		return "game service " + e.Operation + " failed: " + e.Message + ": " + e.Err.Error()
	}
	return "game service " + e.Operation + " failed: " + e.Message
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *GameServiceError) Unwrap() error {
	return e.Err
}

// NewGameServiceError creates a new GameServiceError.
func NewGameServiceError(operation, message string, err error) *GameServiceError {
	return &GameServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
