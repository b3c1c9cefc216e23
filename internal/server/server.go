package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/ironlog/internal/session"
	"github.com/go-chi/chi/v5"
)

// Server carries logging intents from HTTP clients to the session engine.
type Server struct {
	engine *session.Engine
	log    *slog.Logger
	apiKey string
	whois  WhoIser
	router chi.Router
}

// New creates a new Server with all routes configured. An empty apiKey
// leaves the API open (tsnet handles access).
func New(engine *session.Engine, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		engine: engine,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale enables tailnet identity lookups for request logging.
func (s *Server) SetTailscale(w WhoIser) {
	s.whois = w
}

// MountMCP serves an MCP transport at /mcp behind the same API key as the
// REST routes.
func (s *Server) MountMCP(h http.Handler) {
	if s.apiKey != "" {
		h = APIKeyAuth(s.apiKey)(h)
	}
	s.router.Mount("/mcp", h)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(TailscaleIdentity(func() WhoIser { return s.whois }, s.log))
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}
		r.Get("/plans", s.handlePlans)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", s.handleState)
			r.Post("/reload", s.handleReload)
			r.Post("/plan", s.handleSelectPlan)
			r.Post("/day", s.handleSelectDay)
			r.Post("/start", s.handleStart)
			r.Post("/finish", s.handleFinish)
			r.Post("/cancel", s.handleCancel)
			r.Post("/current", s.handleSelectExercise)
			r.Delete("/error", s.handleClearError)

			r.Route("/exercises/{id}", func(r chi.Router) {
				r.Post("/sets", s.handleAddSet)
				r.Put("/sets", s.handleBulkEditSets)
				r.Put("/sets/{index}", s.handleEditSet)
				r.Post("/sets/{index}/toggle", s.handleToggleSet)
				r.Post("/complete", s.handleCompleteExercise)
			})
		})
	})
}
