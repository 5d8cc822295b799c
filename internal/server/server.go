// Package server provides the HTTP REST API for skill extraction, role
// matching and resume uploads.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/config"
	"github.com/jonathan/skill-matcher/internal/logger"
	"github.com/jonathan/skill-matcher/internal/pipeline"
	"github.com/jonathan/skill-matcher/internal/queue"
	"github.com/jonathan/skill-matcher/internal/server/middleware"
	"github.com/jonathan/skill-matcher/internal/server/ratelimit"
	"github.com/jonathan/skill-matcher/internal/storage"
)

const shutdownTimeout = 30 * time.Second

// Enqueuer hands uploaded resumes to the analysis workers.
type Enqueuer interface {
	Enqueue(ctx context.Context, job queue.Job) error
}

// Deps are the collaborators a Server needs. Queue is optional; without it
// uploads are always analyzed inline.
type Deps struct {
	DB       DBClient
	Store    storage.Store
	Analyzer *pipeline.Analyzer
	Queue    Enqueuer
	Logger   *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	cfg         config.ServerConfig
	db          DBClient
	store       storage.Store
	analyzer    *pipeline.Analyzer
	queue       Enqueuer
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	now         func() time.Time
}

// New creates a new server instance
func New(cfg *config.Config, deps Deps) (*Server, error) {
	if deps.DB == nil {
		return nil, errors.New("server requires a database client")
	}
	if deps.Store == nil {
		return nil, errors.New("server requires a resume store")
	}

	passwordConfig, err := cfg.Auth.Password()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := cfg.Auth.JWT()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	analyzer := deps.Analyzer
	if analyzer == nil {
		analyzer = pipeline.NewAnalyzer(nil, nil)
	}

	log := logger.OrNop(deps.Logger)
	s := &Server{
		cfg:         cfg.Server,
		db:          deps.DB,
		store:       deps.Store,
		analyzer:    analyzer,
		queue:       deps.Queue,
		logger:      log,
		rateLimiter: ratelimit.NewLimiter(ratelimit.FromConfig(cfg.RateLimit)),
		jwtService:  NewJWTService(jwtConfig),
		now:         time.Now,
	}
	s.userService = NewUserService(deps.DB, passwordConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService, log)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	auth := middleware.Auth(s.jwtService.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Accounts
	mux.HandleFunc("POST /auth/signup", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("GET /auth/profile", protected(s.authHandler.Profile))
	mux.Handle("GET /auth/me", protected(s.authHandler.Profile))
	mux.Handle("POST /auth/set-role", protected(s.authHandler.SetRole))

	// Resumes
	mux.Handle("POST /resume/upload", protected(s.handleUploadResume))
	mux.Handle("GET /resume/text", protected(s.handleResumeText))
	mux.Handle("GET /resume/download", protected(s.handleDownloadResume))
	mux.Handle("GET /resume/jobs", protected(s.handleListJobs))
	mux.Handle("GET /resume/jobs/{id}", protected(s.handleGetJob))

	// Stateless extraction and matching
	mux.HandleFunc("POST /skills/extract", s.handleExtractSkills)
	mux.HandleFunc("POST /skills/languages", s.handleProgrammingLanguages)
	mux.HandleFunc("GET /roles", s.handleListRoles)
	mux.HandleFunc("POST /roles/match", s.handleMatchRoles)
	mux.HandleFunc("POST /roles/{name}/gap", s.handleRoleGap)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.rateLimiter.Stop()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers for the configured origins
func (s *Server) withCORS(next http.Handler) http.Handler {
	wildcard := len(s.cfg.AllowedOrigins) == 0 || slices.Contains(s.cfg.AllowedOrigins, "*")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case wildcard:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(s.cfg.AllowedOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := clientIP(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.logger.Warn("rate limit exceeded",
				zap.String(logger.FieldClientID, clientID),
				zap.String(logger.FieldPath, r.URL.Path),
				zap.Int("limit", info.Limit),
			)
			rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		fields := []zap.Field{
			zap.String(logger.FieldMethod, r.Method),
			zap.String(logger.FieldPath, r.URL.Path),
			zap.Int(logger.FieldStatus, status),
			zap.Int("bytes", rec.bytes),
			zap.Duration("elapsed", time.Since(start)),
			zap.String(logger.FieldClientID, clientIP(r)),
		}
		if status >= http.StatusInternalServerError {
			s.logger.Error("request", fields...)
			return
		}
		s.logger.Info("request", fields...)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error JSON response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// clientIP returns the IP part of RemoteAddr. Forwarded headers are not
// trusted.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Round(time.Second).Seconds())
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}
	writeJSON(w, http.StatusTooManyRequests, response)
}
