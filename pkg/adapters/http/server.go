package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/waitlist"
	"github.com/aretw0/waitlist/internal/logging"
	"github.com/aretw0/waitlist/pkg/domain"
	"github.com/aretw0/waitlist/pkg/form"
	"github.com/aretw0/waitlist/pkg/roster"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Registration outcomes reported to the observer.
const (
	OutcomeAccepted  = "accepted"
	OutcomeDuplicate = "duplicate"
	OutcomeFull      = "full"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
)

const maxRequestBody = 16 << 10

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// Server is the local stand-in for the remote registration endpoint.
// It implements the generated ServerInterface.
type Server struct {
	Roster  *roster.Roster
	logger  *slog.Logger
	observe func(outcome string)
	metrics http.Handler
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger configures a logger for request handling.
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegistrationObserver is called once per registration request with its outcome.
func WithRegistrationObserver(fn func(outcome string)) ServerOption {
	return func(s *Server) {
		s.observe = fn
	}
}

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates the HTTP handler serving the waitlist API.
func NewHandler(r *roster.Roster, opts ...ServerOption) http.Handler {
	server := &Server{
		Roster:  r,
		logger:  logging.NewNop(),
		observe: func(string) {},
	}
	for _, opt := range opts {
		opt(server)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(enableCORS)
	router.Use(limitBody(maxRequestBody))

	validate, err := newRequestValidator(server.rejectRequest)
	if err != nil {
		server.logger.Error("request validation disabled", "error", err)
	} else {
		router.Use(validate)
	}

	router.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			server.logger.Error("failed to load OpenAPI spec", "error", err)
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(spec)
	})
	if server.metrics != nil {
		router.Method(http.MethodGet, "/metrics", server.metrics)
	}

	return HandlerWithOptions(server, ChiServerOptions{
		BaseRouter: router,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			writeFailure(w, http.StatusBadRequest, err.Error())
		},
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, "+RequestIDHeader)
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func limitBody(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// rejectRequest answers a request the API document does not accept.
func (s *Server) rejectRequest(w http.ResponseWriter, r *http.Request, operationID string, err error) {
	if operationID == opRegister || operationID == opFakeAuth {
		s.observe(OutcomeInvalid)
	}
	s.logger.Warn("request rejected", "request_id", middleware.GetReqID(r.Context()), "operation", operationID, "error", err)
	writeFailure(w, http.StatusBadRequest, "Invalid request body")
}

// Register handles POST /register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	s.register(w, r)
}

// FakeAuth handles POST /fakeAuth, the path the hosted endpoint used.
func (s *Server) FakeAuth(w http.ResponseWriter, r *http.Request) {
	s.register(w, r)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	var body RegisterJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.observe(OutcomeInvalid)
		s.logger.Warn("register: invalid request body", "request_id", requestID, "error", err)
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reg := domain.Registration{
		Name:  strings.TrimSpace(body.Name),
		Email: strings.TrimSpace(body.Email),
	}
	if !form.IsValidName(reg.Name) {
		s.observe(OutcomeInvalid)
		writeFailure(w, http.StatusBadRequest, "Name is too short")
		return
	}
	if !form.IsValidEmail(reg.Email) {
		s.observe(OutcomeInvalid)
		writeFailure(w, http.StatusBadRequest, "Invalid email")
		return
	}

	_, err := s.Roster.Add(r.Context(), reg)
	switch {
	case errors.Is(err, domain.ErrAlreadyRegistered):
		s.observe(OutcomeDuplicate)
		writeFailure(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, domain.ErrWaitlistFull):
		s.observe(OutcomeFull)
		writeFailure(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		s.observe(OutcomeError)
		s.logger.Error("register: roster update failed", "request_id", requestID, "error", err)
		writeFailure(w, http.StatusInternalServerError, "Internal error")
		return
	}

	s.observe(OutcomeAccepted)
	s.logger.Info("register: accepted", "request_id", requestID, "email", reg.Email)
	writeJSON(w, http.StatusOK, Registration{Name: reg.Name, Email: reg.Email})
}

// GetRegistration handles GET /registrations/{email}.
func (s *Server) GetRegistration(w http.ResponseWriter, r *http.Request, email string) {
	entry, err := s.Roster.Get(r.Context(), email)
	if errors.Is(err, domain.ErrKeyNotFound) {
		writeFailure(w, http.StatusNotFound, "Not on the waitlist")
		return
	}
	if err != nil {
		s.logger.Error("lookup: roster read failed", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Internal error")
		return
	}
	writeJSON(w, http.StatusOK, Entry{
		Name:         entry.Name,
		Email:        entry.Email,
		RegisteredAt: entry.RegisteredAt,
	})
}

// DeleteRegistration handles DELETE /registrations/{email}.
func (s *Server) DeleteRegistration(w http.ResponseWriter, r *http.Request, email string) {
	ok, err := s.Roster.Contains(r.Context(), email)
	if err == nil && !ok {
		writeFailure(w, http.StatusNotFound, "Not on the waitlist")
		return
	}
	if err == nil {
		err = s.Roster.Remove(r.Context(), email)
	}
	if err != nil {
		s.logger.Error("delete: roster update failed", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Internal error")
		return
	}
	s.logger.Info("roster entry removed", "email", email)
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Health{Status: "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	count, err := s.Roster.Count(r.Context())
	if err != nil {
		s.logger.Error("info: roster count failed", "error", err)
		writeFailure(w, http.StatusInternalServerError, "Internal error")
		return
	}

	writeJSON(w, http.StatusOK, Info{
		App:        "waitlist-http",
		Version:    strings.TrimSpace(waitlist.Version),
		Registered: count,
		Capacity:   s.Roster.Capacity(),
	})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Failure{ErrorMessage: &message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
