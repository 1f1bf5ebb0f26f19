// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidRarity is returned when a rarity tier is not one of the
	// known values.
	ErrInvalidRarity = errors.New("invalid rarity tier")

	// ErrInvalidTimeOfDay is returned when a time-of-day value is not one
	// of the known values.
	ErrInvalidTimeOfDay = errors.New("invalid time of day")

	// ErrUnknownSpecies is returned when a species ID does not exist in
	// the catalog.
	ErrUnknownSpecies = errors.New("unknown species")

	// ErrUnknownAchievement is returned when an achievement ID does not
	// exist in the definition table.
	ErrUnknownAchievement = errors.New("unknown achievement")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
