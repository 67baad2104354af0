// Package http implements the REST API of the roommate marketplace. It is
// the validation boundary: malformed enums, pages, and limits are rejected
// with 400 before the application layer runs.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/roomie-hub/roomie-hub/internal/application/command"
	"github.com/roomie-hub/roomie-hub/internal/application/query"
	"github.com/roomie-hub/roomie-hub/internal/metrics"
	"github.com/roomie-hub/roomie-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SERVER CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config contains HTTP server configuration.
type Config struct {
	// Host - address to bind (default: "0.0.0.0").
	Host string

	// Port - port to listen on (default: 8080).
	Port int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	MaxHeaderBytes int

	EnableCORS     bool
	AllowedOrigins []string

	// EnableMetrics exposes the Prometheus endpoint at /metrics.
	EnableMetrics bool

	// RateLimitPerMinute - requests per minute per IP (0 = disabled).
	RateLimitPerMinute int
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{
		Host:               "0.0.0.0",
		Port:               8080,
		ReadTimeout:        15 * time.Second,
		WriteTimeout:       15 * time.Second,
		IdleTimeout:        60 * time.Second,
		MaxHeaderBytes:     1 << 20, // 1 MB
		EnableCORS:         true,
		AllowedOrigins:     []string{"*"},
		EnableMetrics:      true,
		RateLimitPerMinute: 120,
	}
}

// Address returns the server address string.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ══════════════════════════════════════════════════════════════════════════════
// DEPENDENCIES
// ══════════════════════════════════════════════════════════════════════════════

// Authenticator resolves an opaque bearer token to a profile id.
type Authenticator interface {
	ResolveToken(ctx context.Context, token string) (string, error)
}

// TokenIssuer mints a bearer token for a verified profile. Optional;
// without it the login endpoint only confirms credentials.
type TokenIssuer interface {
	IssueToken(ctx context.Context, profileID string) (string, error)
}

// Pinger reports the health of one backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies contains everything the HTTP handlers call into.
type Dependencies struct {
	// Queries (CQRS read side)
	FindMatches      *query.FindMatchesHandler
	GetProfile       *query.GetProfileHandler
	ListSaved        *query.ListSavedHandler
	SearchProfiles   *query.SearchProfilesHandler
	SuggestLocations *query.SuggestLocationsHandler
	GetStats         *query.GetStatsHandler

	// Commands (CQRS write side)
	Register          *command.RegisterProfileHandler
	Authenticate      *command.AuthenticateHandler
	UpdateProfile     *command.UpdateProfileHandler
	UpdatePreferences *command.UpdatePreferencesHandler
	UpdateRoomDetails *command.UpdateRoomDetailsHandler
	ToggleSave        *command.ToggleSaveHandler
	Deactivate        *command.DeactivateProfileHandler

	// Auth resolves bearer tokens; nil means every request is anonymous.
	Auth Authenticator

	// Tokens mints bearer tokens on login; nil disables issuance.
	Tokens TokenIssuer

	// Health probes, keyed by component name ("postgres", "redis").
	Health map[string]Pinger

	Logger *logger.Logger
}

// ══════════════════════════════════════════════════════════════════════════════
// SERVER
// ══════════════════════════════════════════════════════════════════════════════

// Server is the HTTP server.
type Server struct {
	config     Config
	deps       Dependencies
	httpServer *http.Server
	router     *http.ServeMux
	logger     *logger.Logger

	rateLimiter *rateLimiter

	mu      sync.RWMutex
	running bool
}

// NewServer creates a server with the given configuration and dependencies.
func NewServer(config Config, deps Dependencies) *Server {
	s := &Server{
		config: config,
		deps:   deps,
		router: http.NewServeMux(),
		logger: deps.Logger,
	}

	if s.logger == nil {
		s.logger = logger.Default()
	}
	if config.RateLimitPerMinute > 0 {
		s.rateLimiter = newRateLimiter(config.RateLimitPerMinute, time.Minute)
	}

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:           config.Address(),
		Handler:        s.buildMiddlewareChain(s.router),
		ReadTimeout:    config.ReadTimeout,
		WriteTimeout:   config.WriteTimeout,
		IdleTimeout:    config.IdleTimeout,
		MaxHeaderBytes: config.MaxHeaderBytes,
	}

	return s
}

// Handler returns the fully wrapped handler, used directly in tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// ─────────────────────────────────────────────────────────────────────────
	// Health & status
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /healthz", s.handleHealth) // Kubernetes alias

	// ─────────────────────────────────────────────────────────────────────────
	// Accounts
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("POST /auth/register", s.handleRegister)
	s.router.HandleFunc("POST /auth/login", s.handleLogin)

	// ─────────────────────────────────────────────────────────────────────────
	// Matching and profiles
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("GET /profiles", s.handleFindMatches)
	s.router.HandleFunc("GET /profiles/saved/list", s.handleListSaved)
	s.router.HandleFunc("GET /profiles/search/suggestions", s.handleSuggestLocations)
	s.router.HandleFunc("GET /profiles/{id}", s.handleGetProfile)
	s.router.HandleFunc("POST /profiles/{id}/save", s.handleToggleSave)

	// ─────────────────────────────────────────────────────────────────────────
	// Current user
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("GET /users/search", s.handleSearch)
	s.router.HandleFunc("GET /users/stats", s.handleStats)
	s.router.HandleFunc("PUT /users/preferences", s.handleUpdatePreferences)
	s.router.HandleFunc("PUT /users/room-details", s.handleUpdateRoomDetails)
	s.router.HandleFunc("PUT /profile", s.handleUpdateProfile)
	s.router.HandleFunc("DELETE /profile", s.handleDeactivate)

	if s.config.EnableMetrics {
		s.router.Handle("GET /metrics", metrics.Handler())
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// LIFECYCLE
// ══════════════════════════════════════════════════════════════════════════════

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info("starting HTTP server", logger.String("address", s.config.Address()))

	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Shutdown gracefully shuts down the server and stops the rate limiter's
// cleanup goroutine. Works on a server that was never started, so tests can
// always defer it.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// ══════════════════════════════════════════════════════════════════════════════
// RESPONSE ENVELOPE
// ══════════════════════════════════════════════════════════════════════════════

// JSONResponse is the wire envelope: data on success, message on failure.
type JSONResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(JSONResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(JSONResponse{
		Success: false,
		Message: message,
	})
}
