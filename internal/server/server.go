// Package server exposes the REST API for books, summaries and notes.
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Rishiwant1729/capstone-2-Backend/internal/util"
	"github.com/Rishiwant1729/capstone-2-Backend/internal/workflow"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/auth"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/domain"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/storage"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/store"
)

// Limiter gates requests per client key. A nil Limiter disables the gate.
type Limiter interface {
	Allow(key string) bool
}

// Config wires required dependencies for the HTTP server.
type Config struct {
	Store          store.Store
	Documents      storage.ObjectStore
	Tokens         *auth.TokenManager
	Ingestor       *workflow.Ingestor
	Lifecycle      *workflow.Lifecycle
	AuthLimiter    Limiter
	MaxUploadBytes int64
}

// Server exposes HTTP endpoints for the book summarizer API.
type Server struct {
	store          store.Store
	documents      storage.ObjectStore
	tokens         *auth.TokenManager
	ingestor       *workflow.Ingestor
	lifecycle      *workflow.Lifecycle
	authLimiter    Limiter
	mux            *http.ServeMux
	maxUploadBytes int64
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	maxUploadBytes := cfg.MaxUploadBytes
	if maxUploadBytes <= 0 {
		maxUploadBytes = 15 * 1024 * 1024
	}
	s := &Server{
		store:          cfg.Store,
		documents:      cfg.Documents,
		tokens:         cfg.Tokens,
		ingestor:       cfg.Ingestor,
		lifecycle:      cfg.Lifecycle,
		authLimiter:    cfg.AuthLimiter,
		mux:            http.NewServeMux(),
		maxUploadBytes: maxUploadBytes,
	}
	s.routes()
	return s
}

// Router returns the configured handler with middleware applied.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog(util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/health", s.handleHealth)

	// auth
	s.mux.Handle("/api/auth/signup", s.withLimit(s.handleSignup))
	s.mux.Handle("/api/auth/login", s.withLimit(s.handleLogin))
	s.mux.Handle("/api/auth/me", s.withUser(s.handleMe))
	s.mux.Handle("/api/auth/users", s.withUser(s.handleListUsers))

	// books and their summaries
	s.mux.Handle("/api/books", s.withUser(s.handleBooks))
	s.mux.Handle("/api/books/upload", s.withUser(s.handleUploadBook))
	s.mux.Handle("/api/books/", s.withUser(s.handleBookByID))

	// summaries and notes
	s.mux.Handle("/api/summaries", s.withUser(s.handleSummaries))
	s.mux.Handle("/api/summaries/", s.withUser(s.handleSummaryByID))
	s.mux.Handle("/api/notes/", s.withUser(s.handleNoteByID))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type userHandler func(http.ResponseWriter, *http.Request, domain.User)

func (s *Server) withUser(next userHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		claims, err := s.tokens.Verify(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		user, found, err := s.store.GetUserByID(claims.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !found {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r, user)
	})
}

func (s *Server) withLimit(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.authLimiter != nil && !s.authLimiter.Allow(util.ClientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next(w, r)
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func notFound(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusNotFound, msg)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Error:     msg,
		Code:      errorCodeFor(status, msg),
		RequestID: strings.TrimSpace(w.Header().Get("X-Request-Id")),
	})
}

func errorCodeFor(status int, msg string) string {
	message := strings.ToLower(strings.TrimSpace(msg))
	switch {
	case message == "unauthorized":
		return "AUTH_INVALID_TOKEN"
	case message == "invalid credentials":
		return "AUTH_INVALID_CREDENTIALS"
	case message == "email already registered":
		return "AUTH_EMAIL_TAKEN"
	case message == "too many requests":
		return "AUTH_RATE_LIMITED"
	case message == "book not found":
		return "BOOK_NOT_FOUND"
	case message == "summary not found":
		return "SUMMARY_NOT_FOUND"
	case message == "note not found":
		return "NOTE_NOT_FOUND"
	case message == "book has no document":
		return "BOOK_NO_DOCUMENT"
	case message == "file too large":
		return "BOOK_FILE_TOO_LARGE"
	case strings.Contains(message, "pdf file is required"):
		return "BOOK_FILE_REQUIRED"
	case strings.Contains(message, "only pdf"):
		return "BOOK_UNSUPPORTED_FILE_TYPE"
	case message == "invalid form data":
		return "BOOK_INVALID_UPLOAD_FORM"
	case message == "invalid json body":
		return "REQUEST_INVALID_BODY"
	case message == "method not allowed":
		return "SYSTEM_METHOD_NOT_ALLOWED"
	case message == "not found":
		return "SYSTEM_NOT_FOUND"
	}

	switch status {
	case http.StatusBadRequest:
		return "REQUEST_INVALID"
	case http.StatusUnauthorized:
		return "AUTH_INVALID_TOKEN"
	case http.StatusNotFound:
		return "SYSTEM_NOT_FOUND"
	case http.StatusConflict:
		return "REQUEST_CONFLICT"
	case http.StatusMethodNotAllowed:
		return "SYSTEM_METHOD_NOT_ALLOWED"
	case http.StatusTooManyRequests:
		return "AUTH_RATE_LIMITED"
	default:
		if status >= http.StatusInternalServerError {
			return "SYSTEM_INTERNAL_ERROR"
		}
		return "REQUEST_ERROR"
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}
