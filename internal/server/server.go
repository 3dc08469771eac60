// Package server serves the calendar export endpoint.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/sallieha/HabitTrackerApp/internal/clock"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	apperrors "github.com/sallieha/HabitTrackerApp/internal/errors"
	"github.com/sallieha/HabitTrackerApp/internal/ics"
	"github.com/sallieha/HabitTrackerApp/internal/logger"
	"github.com/sallieha/HabitTrackerApp/internal/models"
)

// GoalSource is the part of the data service the endpoint reads.
type GoalSource interface {
	GetGoals(ctx context.Context, userID string) ([]models.Goal, error)
	Ping(ctx context.Context) error
}

// Sessions verifies the bearer token on export requests.
type Sessions interface {
	Authenticate(ctx context.Context, token string) (models.Session, error)
}

type Options struct {
	// Sessions is required for exports; without it every export is refused.
	Sessions       Sessions
	AllowedOrigins []string
	Clock          clock.Clock
	Location       *time.Location
}

type Server struct {
	goals    GoalSource
	sessions Sessions
	clock    clock.Clock
	loc      *time.Location
	router   chi.Router
}

func New(goals GoalSource, opts Options) *Server {
	s := &Server{goals: goals, sessions: opts.Sessions, clock: opts.Clock, loc: opts.Location}
	if s.clock == nil {
		s.clock = clock.Real()
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:     origins,
		AllowedMethods:     []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders:     []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
		OptionsPassthrough: true,
	}).Handler)

	r.Post(constants.ExportPath, s.handleExport)
	r.Options(constants.ExportPath, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/health", s.handleHealth)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusBadRequest, "Invalid endpoint")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusBadRequest, "Invalid endpoint")
	})

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

type exportRequest struct {
	UserID string                 `json:"userId"`
	Format constants.ExportFormat `json:"format"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Format == "" {
		req.Format = constants.ExportICal
	}
	if req.Format != constants.ExportICal && req.Format != constants.ExportGoogle {
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q", req.Format))
		return
	}
	if req.UserID == "" {
		respondWithError(w, http.StatusBadRequest, "userId is required")
		return
	}
	if req.UserID != sess.UserID {
		logger.Warn("Export refused for another user", "session_user", sess.UserID, "user_id", req.UserID)
		respondWithError(w, http.StatusForbidden, "userId does not match the session")
		return
	}

	goals, err := s.goals.GetGoals(r.Context(), req.UserID)
	if err != nil {
		logger.Error("Failed to load goals for export", "user_id", req.UserID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to load goals")
		return
	}
	body, err := ics.Build(goals, s.clock.Now(), s.loc)
	if err != nil {
		logger.Error("Failed to build calendar", "user_id", req.UserID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to build calendar")
		return
	}

	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", "attachment; filename="+ics.Filename(req.Format))
	w.Write([]byte(body))
}

// authenticate resolves the request's bearer token, writing a 401 when
// it is missing or not a live session.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (models.Session, bool) {
	token, ok := bearerToken(r)
	if !ok || s.sessions == nil {
		respondWithError(w, http.StatusUnauthorized, "missing bearer token")
		return models.Session{}, false
	}
	sess, err := s.sessions.Authenticate(r.Context(), token)
	if errors.Is(err, apperrors.ErrNotAuthenticated) {
		respondWithError(w, http.StatusUnauthorized, "invalid or expired session")
		return models.Session{}, false
	}
	if err != nil {
		logger.Error("Failed to verify session", "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to verify session")
		return models.Session{}, false
	}
	return sess, true
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.goals.Ping(r.Context()); err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	w.Write([]byte("OK"))
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
