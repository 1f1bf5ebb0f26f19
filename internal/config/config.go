package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Game     GameConfig     `mapstructure:"game"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes controls how long issued access tokens stay valid.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`

	// RefreshTokenLifetimeMinutes controls how long refresh tokens stay valid.
	RefreshTokenLifetimeMinutes int `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`

	// BcryptCost is the work factor for password hashing. Zero means the
	// bcrypt default.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"omitempty,gte=4,lte=31"`
}

// GameConfig tunes the progression engine. All fields have sensible
// defaults; deployments rarely need to touch them.
type GameConfig struct {
	// HeartRegenMinutes is the interval for regenerating one heart.
	HeartRegenMinutes int `mapstructure:"heart_regen_minutes" validate:"omitempty,gt=0"`

	// ExploreCooldownSeconds gates repeat exploration attempts.
	ExploreCooldownSeconds int `mapstructure:"explore_cooldown_seconds" validate:"omitempty,gt=0"`
}

// HeartRegenInterval returns the configured regeneration interval, or zero
// when unset so callers fall back to the engine default.
func (g GameConfig) HeartRegenInterval() time.Duration {
	return time.Duration(g.HeartRegenMinutes) * time.Minute
}

// ExploreCooldown returns the configured exploration cooldown, or zero when
// unset so callers fall back to the engine default.
func (g GameConfig) ExploreCooldown() time.Duration {
	return time.Duration(g.ExploreCooldownSeconds) * time.Second
}
