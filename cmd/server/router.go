package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/minimono-api/internal/api"
	apiMiddleware "github.com/phrazzld/minimono-api/internal/api/middleware"
	"github.com/phrazzld/minimono-api/internal/api/shared"
)

const healthTimeout = 2 * time.Second

// setupRouter builds the HTTP routes and middleware chain.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(app.metrics.Middleware)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", app.health)
	r.Handle("/metrics", app.metrics.Handler())

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	handler := api.NewHandler(app.mediator, app.content,
		api.WithErrorDetails(app.config.Server.IsDevelopment()),
		api.WithLogger(app.logger),
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		handler.Routes(r)
	})

	return r
}

// health reports whether the server can reach its database.
func (app *application) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := app.db.PingContext(ctx); err != nil {
		app.logger.Warn("health check failed", "error", err)
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
