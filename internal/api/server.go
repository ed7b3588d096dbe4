package api

import (
	"net/http"
	"time"

	"github.com/archguru/advisor-backend/internal/api/docs"
	"github.com/archguru/advisor-backend/internal/api/middleware"
	wizardapi "github.com/archguru/advisor-backend/internal/api/wizard"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(wizardHandler *wizardapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                  // Recover from panics
	r.Use(chimiddleware.RequestID)                  // Add request ID
	r.Use(middleware.Logger(logger))                // Log requests
	r.Use(middleware.CORS)                          // Handle CORS
	r.Use(chimiddleware.Timeout(300 * time.Second)) // Completion calls can be slow

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	wizardapi.RegisterRoutes(r, wizardHandler)

	return r
}
