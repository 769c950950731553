// Package api provides the HTTP API server and handlers for the catalog.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bookcatalog/catalog-server/internal/http/response"
)

// Options tunes transport behavior that differs between deployments.
type Options struct {
	// CookieSecure marks the session cookie Secure. Only disable for plain
	// HTTP development setups.
	CookieSecure bool
	// CORSOrigins lists browser origins allowed to call the API with credentials.
	CORSOrigins []string
	Version     string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	services *Services
	checks   map[string]HealthCheck
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
	opts     Options
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, checks map[string]HealthCheck, opts Options, logger *slog.Logger) *Server {
	if opts.Version == "" {
		opts.Version = "1.0.0"
	}

	router := chi.NewRouter()

	s := &Server{
		services: services,
		checks:   checks,
		router:   router,
		logger:   logger,
		opts:     opts,
	}

	s.setupMiddleware()

	s.api = humachi.New(router, newHumaConfig(opts.Version))
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// newHumaConfig builds the huma configuration shared by the server and tests.
func newHumaConfig(version string) huma.Config {
	config := huma.DefaultConfig("Catalog API", version)
	config.Info.Description = "Authors and books, each owned by the user who created it."
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookie": {
			Type: "apiKey",
			In:   "cookie",
			Name: SessionCookieName,
		},
	}
	// No $schema links inside the info envelope.
	config.CreateHooks = nil
	config.Transformers = append(config.Transformers, EnvelopeTransformer)
	return config
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for OpenAPI generation.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(RequestLogger(s.logger))
	s.router.Use(Recoverer(s.logger))
	s.router.Use(SecurityHeaders)

	if len(s.opts.CORSOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.opts.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, fmt.Sprintf("No route for %s %s.", r.Method, r.URL.Path), s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.MethodNotAllowed(w, fmt.Sprintf("%s is not supported on %s.", r.Method, r.URL.Path), s.logger)
	})
}

// setupRoutes registers all huma operations.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerAuthorRoutes()
	s.registerBookRoutes()
	s.registerEntriesRoutes()
}

// fail converts err for huma and logs failures the client cannot act on.
func (s *Server) fail(ctx context.Context, op string, err error) error {
	apiErr := toAPIError(err)
	if apiErr.GetStatus() >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx, op+" failed",
			"error", err,
			"request_id", middleware.GetReqID(ctx),
		)
	}
	return apiErr
}
