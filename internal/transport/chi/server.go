package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/entmatch/internal/domain"
	"github.com/kailas-cloud/entmatch/internal/domain/params"
	logpkg "github.com/kailas-cloud/entmatch/internal/logger"
	healthuc "github.com/kailas-cloud/entmatch/internal/usecase/health"
	resolveuc "github.com/kailas-cloud/entmatch/internal/usecase/resolve"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Resolver resolves request parameters to a catalog record.
type Resolver interface {
	Resolve(ctx context.Context, src params.Source) (resolveuc.Resolution, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server serves the entity mapping HTTP API.
type Server struct {
	resolver      Resolver
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(resolver Resolver, health HealthChecker, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		resolver: resolver,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		decodeErrorHandler,
		sentinelHandler(domain.ErrInvalidDefinition, http.StatusBadRequest, CodeInvalidParameters),
	}
	return s
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/entity-mapping", s.EntityMapping)
	r.Post("/entity-mapping", s.EntityMapping)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// EntityMapping handles GET|POST /entity-mapping. Query string and form
// body parameters together form the parameter source.
func (s *Server) EntityMapping(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "invalid form body")
		return
	}

	res, err := s.resolver.Resolve(r.Context(), params.Values(r.Form))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, EntityMappingResponse{
		HasMatch: res.Matched,
		Doc:      res.Fields,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// decodeErrorHandler reports malformed parameters. The message names the
// offending key and the rule it broke.
func decodeErrorHandler(w http.ResponseWriter, err error) bool {
	var de *domain.DecodeError
	if !errors.As(err, &de) {
		return false
	}
	writeError(w, http.StatusBadRequest, CodeInvalidParameters, de.Error())
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger := logpkg.FromContextOr(r.Context(), s.logger)
	logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
