// Package api - Thin HTTP layer over the URL engine
// The API is ONLY responsible for input decoding, engine calls and output
// serialization. URL logic lives in core packages.
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cldurl/core/engine"
	"cldurl/core/legacy"
	"cldurl/internal/config"
	cerrors "cldurl/internal/errors"
	"cldurl/internal/logging"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Server is the API server
type Server struct {
	router  chi.Router
	version string
	cfg     config.Config
	logger  *zap.Logger
	clock   func() time.Time
}

// ServerOption configures a Server
type ServerOption func(*Server)

// WithLogger sets the server logger
func WithLogger(logger *zap.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the time source for health output and tokens
func WithClock(clock func() time.Time) ServerOption {
	return func(s *Server) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewServer creates an API server over a copy of cfg
func NewServer(version string, cfg config.Config, opts ...ServerOption) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		version: version,
		cfg:     cfg.Clone(),
		logger:  logging.Named("api"),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.Use(requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.recoverMiddleware)

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/version", s.handleVersion)

	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/url", s.handleURL)
		r.Post("/transformation", s.handleTransformation)
		r.Post("/token", s.handleToken)
	})
}

func (s *Server) engineOptions() []engine.Option {
	return []engine.Option{engine.WithLogger(s.logger), engine.WithClock(s.clock)}
}

// handleURL handles POST /v1/url
func (s *Server) handleURL(w http.ResponseWriter, r *http.Request) {
	var req URLRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.PublicID == "" {
		s.writeError(w, r, "VALIDATION_ERROR", "public_id is required", http.StatusBadRequest)
		return
	}

	url, err := engine.URL(s.cfg, req.PublicID, legacy.Options(req.Options), s.engineOptions()...)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.writeJSON(w, URLResponse{URL: url, RequestID: requestIDFromContext(r.Context())}, http.StatusOK)
}

// handleTransformation handles POST /v1/transformation
func (s *Server) handleTransformation(w http.ResponseWriter, r *http.Request) {
	var req TransformationRequest
	if !s.decode(w, r, &req) {
		return
	}

	t, err := legacy.Translate(legacy.Options(req.Options))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	stages := t.Stages()
	if stages == nil {
		stages = []string{}
	}
	s.writeJSON(w, TransformationResponse{
		Transformation: t.String(),
		Stages:         stages,
		RequestID:      requestIDFromContext(r.Context()),
	}, http.StatusOK)
}

// handleToken handles POST /v1/token
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !s.decode(w, r, &req) {
		return
	}

	token, err := engine.NewBuilder(s.cfg, s.engineOptions()...).Token(config.AuthTokenConfig{
		IP:         req.IP,
		ACL:        req.ACL,
		StartTime:  req.StartTime,
		Expiration: req.Expiration,
		Duration:   req.Duration,
	}, req.URL)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	s.writeJSON(w, TokenResponse{Token: token, RequestID: requestIDFromContext(r.Context())}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    s.clock().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      engine.Version,
		"api_version": "v1",
	}, http.StatusOK)
}

// decode reads a JSON body into v. Numbers in free-form option maps keep
// their integer form.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	var body bytes.Buffer
	if _, err := body.ReadFrom(http.MaxBytesReader(w, r.Body, maxBodyBytes)); err != nil {
		s.writeError(w, r, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return false
	}

	dec := json.NewDecoder(&body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return false
	}

	switch req := v.(type) {
	case *URLRequest:
		req.Options = normalizeNumbers(req.Options).(map[string]interface{})
	case *TransformationRequest:
		req.Options = normalizeNumbers(req.Options).(map[string]interface{})
	}
	return true
}

// normalizeNumbers replaces json.Number values with int64 or float64
func normalizeNumbers(v interface{}) interface{} {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		f, _ := x.Float64()
		return f
	case map[string]interface{}:
		for k, item := range x {
			x[k] = normalizeNumbers(item)
		}
		return x
	case []interface{}:
		for i, item := range x {
			x[i] = normalizeNumbers(item)
		}
		return x
	}
	return v
}

// statusFor maps domain error types to HTTP status codes
func statusFor(errType cerrors.Type) int {
	switch errType {
	case cerrors.TypeInput, cerrors.TypeUnsupportedSuffix, cerrors.TypeInvalidAuthToken,
		cerrors.TypeMalformedConfiguration:
		return http.StatusBadRequest
	case cerrors.TypeMissingCloudName, cerrors.TypeMissingSecret, cerrors.TypeNotSupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	errType := cerrors.TypeOf(err)
	status := statusFor(errType)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err), zap.String("request_id", requestIDFromContext(r.Context())))
		message = "internal server error"
	}
	s.writeError(w, r, string(errType), message, status)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("writing response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, code, message string, status int) {
	s.writeJSON(w, ErrorResponse{
		Error:     ErrorDetail{Code: code, Message: message},
		RequestID: requestIDFromContext(r.Context()),
	}, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
