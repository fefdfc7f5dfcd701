// Package httpserver exposes the spam gate over HTTP: a direct check
// endpoint, a form endpoint protected by the gate middleware, a health
// probe, and Prometheus metrics.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/its-bede/is-it-spam-go/internal/core"
	"github.com/its-bede/is-it-spam-go/internal/form"
	"github.com/its-bede/is-it-spam-go/internal/gate"
)

const maxCheckBodyBytes = 1 << 20

// Server implements the ports.Gateway interface over HTTP.
type Server struct {
	service    *core.SpamCheckService
	gate       *gate.Gate
	extractor  *form.Extractor
	registry   *prometheus.Registry
	logger     *zap.Logger
	listenAddr string
	httpServer *http.Server
}

// New creates the HTTP front-end.
func New(
	service *core.SpamCheckService,
	g *gate.Gate,
	extractor *form.Extractor,
	registry *prometheus.Registry,
	logger *zap.Logger,
	listenAddr string,
) *Server {
	return &Server{
		service:    service,
		gate:       g,
		extractor:  extractor,
		registry:   registry,
		logger:     logger,
		listenAddr: listenAddr,
	}
}

// Start begins serving in the background.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Post("/v1/check", s.handleCheck)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Group(func(r chi.Router) {
		r.Use(s.gate.Middleware)
		r.Post("/v1/forms/submit", s.handleSubmit)
	})

	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	s.logger.Info("HTTP gateway starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// handleCheck accepts a JSON parameter object, extracts the form fields,
// and answers with the verdict. Unlike the middleware this endpoint is the
// primary action, so checker errors are reported instead of swallowed.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxCheckBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "failed to read request body"})
		return
	}

	params, err := form.FromJSON(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "request body must be a JSON object"})
		return
	}

	fields := s.extractor.Extract(params)
	if !fields.Complete() {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"skipped": true,
			"reason":  "name, email and message are all required for a check",
		})
		return
	}

	result, err := s.service.Check(r.Context(), &core.SpamCheckRequest{
		Name:    fields.Name,
		Email:   fields.Email,
		Message: fields.Message,
	})
	if err != nil {
		s.writeCheckError(w, err)
		return
	}

	response := result.ToMap()
	response["summary"] = result.Summary()
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) writeCheckError(w http.ResponseWriter, err error) {
	var validationErr *core.ValidationError
	var rateLimitErr *core.RateLimitError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  validationErr.Message,
			"errors": validationErr.Errors,
		})
	case errors.As(err, &rateLimitErr):
		writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{"error": rateLimitErr.Message})
	default:
		s.logger.Error("Spam check failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{"error": "spam check unavailable"})
	}
}

// handleSubmit sits behind the gate middleware and demonstrates manual
// handling: when no redirect is configured the verdict is attached to the
// request for this handler to inspect.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{"received": true}
	if result, ok := gate.ResultFrom(r); ok {
		response["spam"] = result.Spam()
		response["summary"] = result.Summary()
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	healthy, err := s.service.HealthCheck(r.Context())
	switch {
	case err != nil:
		s.logger.Error("Health probe failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{"status": "error"})
	case !healthy:
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"status": "unavailable"})
	default:
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
