package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/verdantlabs/verdant-api/internal/api"
	apiMiddleware "github.com/verdantlabs/verdant-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.tokenLifetime(),
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	progressionHandler := api.NewProgressionHandler(app.gameService)
	lessonHandler := api.NewLessonHandler(app.gameService)
	discoveryHandler := api.NewDiscoveryHandler(app.gameService)
	achievementHandler := api.NewAchievementHandler(app.gameService)
	settingsHandler := api.NewSettingsHandler(app.gameService)
	accountHandler := api.NewAccountHandler(app.userService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Everything else requires a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Progression ledger
			r.Get("/progression", progressionHandler.Get)
			r.Post("/progression/hearts/refill", progressionHandler.RefillHearts)
			r.Post("/progression/streak-freezes", progressionHandler.BuyStreakFreeze)
			r.Put("/progression/daily-goal", progressionHandler.SetDailyGoal)
			r.Post("/progression/reset", progressionHandler.Reset)

			// Lesson sessions and the review queue
			r.Post("/lessons", lessonHandler.Start)
			r.Post("/lessons/current/answers", lessonHandler.SubmitAnswer)
			r.Post("/lessons/current/complete", lessonHandler.Complete)
			r.Delete("/lessons/current", lessonHandler.Abandon)
			r.Post("/units/complete", lessonHandler.CompleteUnit)
			r.Get("/reviews/due", lessonHandler.DueReviews)

			// Exploration and discoveries
			r.Post("/explore", discoveryHandler.Explore)
			r.Post("/explore/claim", discoveryHandler.Claim)
			r.Delete("/explore/current", discoveryHandler.Cancel)
			r.Get("/explore/conditions", discoveryHandler.Conditions)
			r.Get("/discoveries", discoveryHandler.List)

			// Achievements
			r.Get("/achievements", achievementHandler.List)
			r.Get("/achievements/recent", achievementHandler.Recent)
			r.Post("/achievements/acknowledge", achievementHandler.Acknowledge)

			// Preferences
			r.Get("/settings", settingsHandler.Get)
			r.Put("/settings", settingsHandler.Update)

			// Account
			r.Get("/account", accountHandler.Get)
			r.Put("/account/password", accountHandler.ChangePassword)
			r.Delete("/account", accountHandler.Delete)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
