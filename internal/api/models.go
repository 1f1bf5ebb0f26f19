package api

import (
	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT used for API authorization.
	AccessToken string `json:"token"`

	// RefreshToken is the JWT used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires.
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// ChangePasswordRequest replaces the account password. The new password
// follows the registration length rules.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required,min=1"`
	NewPassword     string `json:"new_password"     validate:"required,min=12,max=72"`
}

// StartLessonRequest opens a lesson session.
type StartLessonRequest struct {
	LessonID string `json:"lesson_id" validate:"required"`
}

// SubmitAnswerRequest records one answered challenge. Correct is a pointer
// so an explicit false survives required-field validation.
type SubmitAnswerRequest struct {
	ChallengeID string `json:"challenge_id"  validate:"required"`
	Correct     *bool  `json:"correct"       validate:"required"`
	TimeSpentMs int64  `json:"time_spent_ms" validate:"gte=0"`
}

// CompleteUnitRequest marks a unit as finished.
type CompleteUnitRequest struct {
	UnitID string `json:"unit_id" validate:"required"`
}

// SetDailyGoalRequest updates the daily XP goal.
type SetDailyGoalRequest struct {
	Goal int `json:"goal" validate:"required,gt=0"`
}
