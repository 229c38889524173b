// Package chi serves the chatbot and the admin API over HTTP.
package chi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/campusbot/internal/domain/chat"
	"github.com/kailas-cloud/campusbot/internal/domain/route"
	cataloguc "github.com/kailas-cloud/campusbot/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/campusbot/internal/usecase/health"
)

// Answerer runs the query pipeline.
type Answerer interface {
	Answer(ctx context.Context, q chat.InboundQuery) chat.ComposedAnswer
	AnswerIn(ctx context.Context, d route.Domain, q chat.InboundQuery) chat.ComposedAnswer
}

// Sessions creates and reads chat sessions.
type Sessions interface {
	Create(ctx context.Context, userID string) (chat.Session, error)
	Get(ctx context.Context, id string) (chat.Session, error)
	History(ctx context.Context, id string) ([]chat.Turn, error)
}

// Catalog resolves admin resources by name.
type Catalog interface {
	Lookup(name string) (cataloguc.Resource, error)
	Names() []string
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Options configure the HTTP surface.
type Options struct {
	AdminKeys   []string
	RateLimiter *RateLimiter
}

// Server holds the HTTP handlers.
type Server struct {
	answerer      Answerer
	sessions      Sessions
	catalog       Catalog
	health        HealthChecker
	opts          Options
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	answerer Answerer,
	sessions Sessions,
	catalog Catalog,
	health HealthChecker,
	opts Options,
	logger *zap.Logger,
) *Server {
	return &Server{
		answerer:      answerer,
		sessions:      sessions,
		catalog:       catalog,
		health:        health,
		opts:          opts,
		logger:        logger.Named("http"),
		errorHandlers: defaultErrorHandlers(),
	}
}

// Register mounts every route on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Group(func(r chi.Router) {
		if s.opts.RateLimiter != nil {
			r.Use(s.opts.RateLimiter.Middleware)
		}
		r.Post("/query", s.Query)
		r.Post("/{domain}/query", s.DomainQuery)
		r.Post("/session", s.CreateSession)
		r.Get("/session/{sessionID}", s.GetSession)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(s.opts.AdminKeys))
		r.Get("/", s.ListResources)
		r.Get("/{entity}", s.ListRecords)
		r.Post("/{entity}", s.CreateRecord)
		r.Get("/{entity}/{id}", s.GetRecord)
		r.Put("/{entity}/{id}", s.UpdateRecord)
		r.Delete("/{entity}/{id}", s.DeleteRecord)
	})
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}
