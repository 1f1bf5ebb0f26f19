package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/verdantlabs/verdant-api/internal/service"
	"github.com/verdantlabs/verdant-api/internal/service/auth"
	"github.com/verdantlabs/verdant-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrStateNotFound):
		return http.StatusNotFound

	// Conflict errors: the request is well-formed but the game state
	// refuses it.
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, service.ErrNoHearts),
		errors.Is(err, service.ErrHeartsFull),
		errors.Is(err, service.ErrInsufficientGems),
		errors.Is(err, service.ErrLessonInProgress),
		errors.Is(err, service.ErrNoActiveLesson),
		errors.Is(err, service.ErrUnitAlreadyCompleted),
		errors.Is(err, service.ErrAlreadyExploring),
		errors.Is(err, service.ErrNoEncounter):
		return http.StatusConflict

	// The gate simply is not open yet.
	case errors.Is(err, service.ErrCooldownActive):
		return http.StatusTooManyRequests

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrInvalidDailyGoal):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Unknown errors collapse to a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrStateNotFound):
		return "Game state not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, service.ErrNoHearts):
		return "No hearts remaining"

	case errors.Is(err, service.ErrHeartsFull):
		return "Hearts are already full"

	case errors.Is(err, service.ErrInsufficientGems):
		return "Not enough gems"

	case errors.Is(err, service.ErrLessonInProgress):
		return "A lesson is already in progress"

	case errors.Is(err, service.ErrNoActiveLesson):
		return "No lesson in progress"

	case errors.Is(err, service.ErrUnitAlreadyCompleted):
		return "Unit already completed"

	case errors.Is(err, service.ErrCooldownActive):
		return "Exploration is on cooldown"

	case errors.Is(err, service.ErrAlreadyExploring):
		return "An encounter is already pending"

	case errors.Is(err, service.ErrNoEncounter):
		return "No encounter to act on"

	case errors.Is(err, service.ErrInvalidDailyGoal):
		return "Daily goal must be a positive number"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError reduces a validator error to a user-friendly
// message naming only the offending field and rule.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'LoginRequest.Email' Error:Field validation for
		// 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly messages.
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gte", "lte", "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
