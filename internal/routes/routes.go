// Package routes wires the HTTP handlers into a chi router.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"TOURMAP_BACK-END/internal/config"
	"TOURMAP_BACK-END/internal/handlers"
	"TOURMAP_BACK-END/internal/middleware"
	"TOURMAP_BACK-END/internal/utils"
)

// Handlers groups every handler the router mounts
type Handlers struct {
	Auth       *handlers.AuthHandler
	Dashboard  *handlers.DashboardHandler
	Highlights *handlers.HighlightsHandler
	Feedback   *handlers.FeedbackHandler
	Users      *handlers.UsersHandler
	Tours      *handlers.ToursHandler
	Map        *handlers.MapHandler
	Health     *handlers.HealthHandler
}

// NewRouter configures all application routes. API routes live under
// cfg.Server.BasePath; health probes and the swagger UI stay at the root.
func NewRouter(cfg *config.Config, h Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check routes
	r.Get("/healthz", h.Health.HealthCheck)
	r.Get("/livez", h.Health.LivenessCheck)
	r.Get("/readyz", h.Health.ReadinessCheck)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route(cfg.Server.BasePath, func(r chi.Router) {
		authn := middleware.AuthMiddleware(&cfg.JWT)

		// Public routes
		r.Post("/auth", h.Auth.Register)
		r.Post("/auth/tokens", h.Auth.Login)

		r.With(middleware.OptionalAuth(&cfg.JWT)).Get("/highlights", h.Highlights.List)
		r.Get("/highlights/{id}", h.Highlights.Get)
		r.Get("/highlights/{id}/feedbacks", h.Feedback.ListByHighlight)

		r.Get("/tours", h.Tours.List)
		r.With(middleware.OptionalAuth(&cfg.JWT)).Get("/tours/{id}", h.Tours.Get)
		r.Get("/tours/{id}/feedbacks", h.Feedback.ListByTour)
		r.Get("/tours/{id}/map/highlights", h.Tours.MapHighlights)

		r.Get("/map/highlights", h.Map.Highlights)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authn)

			r.Get("/test/protected", h.Auth.Protected)

			r.Post("/highlights", h.Highlights.Create)
			r.Post("/highlights/{id}/feedbacks", h.Feedback.CreateForHighlight)
			r.Post("/tours/{id}/feedbacks", h.Feedback.CreateForTour)

			r.Put("/feedbacks/{id}", h.Feedback.Update)
			r.Delete("/feedbacks/{id}", h.Feedback.Delete)

			r.Get("/users/{id}/feedbacks", h.Users.ListFeedbacks)
			r.Delete("/users/{id}/feedbacks/{feedbackId}", h.Users.DeleteFeedback)

			r.Post("/userDashboard/update-username", h.Dashboard.UpdateUsername)
			r.Post("/userDashboard/update-password", h.Dashboard.UpdatePassword)
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Use(middleware.AdminOnly)

			r.Get("/test/adminprotected", h.Auth.AdminProtected)

			r.Get("/highlights/suggestions", h.Highlights.ListSuggestions)
			r.Put("/highlights/{id}", h.Highlights.Update)
			r.Put("/highlights/{id}/approve", h.Highlights.Approve)
			r.Delete("/highlights/{id}", h.Highlights.Delete)

			r.Post("/tours", h.Tours.Create)
			r.Put("/tours/{id}", h.Tours.Update)
			r.Delete("/tours/{id}", h.Tours.Delete)

			r.Put("/feedbacks/{id}/approve", h.Feedback.Approve)

			r.Get("/users", h.Users.List)
			r.Get("/users/{id}", h.Users.Get)
			r.Delete("/users/{id}", h.Users.Delete)
			r.Put("/users/{id}/verify", h.Users.Verify)
		})
	})

	// Root route
	r.Get("/", rootHandler)

	return r
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("Tourmap backend is running."))
}
