// Package router assembles the HTTP middleware stack and routes.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"github.com/hapkiduki/loadplan-go/internal/application/dto"
	"github.com/hapkiduki/loadplan-go/internal/application/port"
	"github.com/hapkiduki/loadplan-go/internal/infrastructure/config"
	"github.com/hapkiduki/loadplan-go/internal/interfaces/http/handler"
	"github.com/hapkiduki/loadplan-go/internal/interfaces/http/middleware"
)

// Deps are the collaborators the router wires together.
type Deps struct {
	Server     config.ServerConfig
	RateLimit  config.RateLimitConfig
	Version    string
	StartedAt  time.Time
	Logger     port.Logger
	Calculator handler.Calculator
}

// New builds the API handler.
//
// Parameters:
//   - d: configuration, logger and application service
//
// Returns:
//   - http.Handler: the fully assembled router
func New(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = port.NopLogger{}
	}

	r := chi.NewRouter()

	// Order matters! Middleware is executed in the order added.
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recoverer(log))
	if d.Server.WriteTimeout > 0 {
		r.Use(middleware.Timeout(d.Server.WriteTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Server.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-API-Version"},
		MaxAge:         300,
	}))
	if d.RateLimit.Enabled {
		r.Use(middleware.RateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: d.RateLimit.RequestsPerSecond,
			Burst:             d.RateLimit.Burst,
			IdleTTL:           10 * time.Minute,
			KeyFunc:           middleware.ClientIP,
		}))
	}
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.APIVersion(d.Version))
	r.Use(middleware.MaxBodySize(d.Server.MaxRequestSize))
	r.Use(middleware.ContentTypeJSON)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	health := handler.NewHealthHandler(d.Version, d.StartedAt, map[string]handler.Pinger{
		"history": d.Calculator,
	})
	r.Get("/health", health.Health)
	r.Get("/ready", health.Ready)

	calc := handler.NewCalculationHandler(d.Calculator, log)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/containers", calc.Containers)
		r.Mount("/calculations", calc.Routes())
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, r, http.StatusNotFound, dto.CodeNotFound, "The requested resource was not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "The requested method is not allowed for this resource")
	})

	return r
}
