// Package router sets up the HTTP routes and middleware chains for the
// SheetPress API. Reads are public; mutations require a verified admin
// session.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"sheetpress/internal/auth"
	"sheetpress/internal/handlers"
	"sheetpress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(manager *auth.Manager, authHandlers *handlers.Auth, postHandlers *handlers.Posts) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadSession(manager))

	// Health check, no auth.
	r.Get("/health", healthHandler)

	// Login attempts are rate-limited per IP to slow credential guessing.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Get("/login", authHandlers.Session)
			r.With(loginLimiter.Middleware).Post("/login", authHandlers.Login)
			r.Post("/logout", authHandlers.Logout)
		})

		// Public published view for the site frontend.
		r.Get("/published", postHandlers.ListPublished)

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandlers.List)
			r.Get("/slug/{slug}", postHandlers.GetBySlug)
			r.Get("/{id}", postHandlers.Get)

			// Mutations require an authenticated admin session.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSession)
				r.Post("/", postHandlers.Create)
				r.Put("/{id}", postHandlers.Update)
				r.Delete("/{id}", postHandlers.Delete)
			})
		})
	})

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
