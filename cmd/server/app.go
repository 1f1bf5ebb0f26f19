package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/verdantlabs/verdant-api/internal/config"
	"github.com/verdantlabs/verdant-api/internal/domain/progression"
	"github.com/verdantlabs/verdant-api/internal/platform/postgres"
	"github.com/verdantlabs/verdant-api/internal/service"
	"github.com/verdantlabs/verdant-api/internal/service/auth"
	"github.com/verdantlabs/verdant-api/internal/store"
)

// application holds the shared application dependencies so wiring and
// cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier

	gameService *service.GameService
	userService service.UserService
}

// newApplication creates an application with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	bcryptCost := cfg.Auth.BcryptCost
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	app.userStore = postgres.NewPostgresUserStore(db, bcryptCost)

	app.userService = service.NewUserService(app.userStore, db, app.passwordVerifier, logger)

	stores := service.GameStores{
		Progression: postgres.NewPostgresProgressionStore(db),
		Learning:    postgres.NewPostgresLearningStore(db),
		Discovery:   postgres.NewPostgresDiscoveryStore(db),
		Achievement: postgres.NewPostgresAchievementStore(db),
		Settings:    postgres.NewPostgresSettingsStore(db),
	}

	var gameOpts []service.GameServiceOption
	if interval := cfg.Game.HeartRegenInterval(); interval > 0 {
		params := progression.NewDefaultParams()
		params.HeartRegenInterval = interval
		gameOpts = append(gameOpts, service.WithProgressionParams(params))
	}
	if cooldown := cfg.Game.ExploreCooldown(); cooldown > 0 {
		gameOpts = append(gameOpts, service.WithExploreCooldown(cooldown))
	}
	app.gameService = service.NewGameService(db, stores, logger, gameOpts...)

	logger.Info("application initialized")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown completes.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// tokenLifetime converts the configured access token lifetime for handler
// use.
func (app *application) tokenLifetime() time.Duration {
	return time.Duration(app.config.Auth.TokenLifetimeMinutes) * time.Minute
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
