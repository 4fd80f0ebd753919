package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Rishiwant1729/capstone-2-Backend/internal/extract"
	"github.com/Rishiwant1729/capstone-2-Backend/internal/workflow"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/domain"
)

type updateSummaryRequest struct {
	Content    string  `json:"content"`
	Highlights *string `json:"highlights"`
}

// /api/books/{id}/summary
func (s *Server) handleBookSummary(w http.ResponseWriter, r *http.Request, user domain.User, bookID uint) {
	switch r.Method {
	case http.MethodGet:
		summary, err := s.lifecycle.GetByBook(r.Context(), user.ID, bookID)
		if err != nil {
			writeLifecycleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	case http.MethodPut:
		var req updateSummaryRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			writeError(w, http.StatusBadRequest, "content is required")
			return
		}
		summary, err := s.lifecycle.UpdateSummary(r.Context(), user.ID, bookID, req.Content, req.Highlights)
		if err != nil {
			writeLifecycleError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	case http.MethodDelete:
		if err := s.lifecycle.DeleteSummary(r.Context(), user.ID, bookID); err != nil {
			writeLifecycleError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

// /api/books/{id}/summary/regenerate
func (s *Server) handleRegenerateSummary(w http.ResponseWriter, r *http.Request, user domain.User, bookID uint) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	summary, err := s.lifecycle.Regenerate(r.Context(), user.ID, bookID)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleSummaries(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	summaries, err := s.store.ListSummaries(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": summaries,
		"count": len(summaries),
	})
}

type summaryDetailResponse struct {
	domain.Summary
	Book domain.Book `json:"book"`
}

// /api/summaries/{id} and /api/summaries/{id}/notes
func (s *Server) handleSummaryByID(w http.ResponseWriter, r *http.Request, user domain.User) {
	path := strings.TrimPrefix(r.URL.Path, "/api/summaries/")
	parts := strings.SplitN(path, "/", 2)
	id, err := parseID(parts[0])
	if err != nil {
		notFound(w, "summary not found")
		return
	}

	summary, ok, err := s.store.GetSummary(id, user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		notFound(w, "summary not found")
		return
	}

	if len(parts) == 2 {
		if parts[1] != "notes" {
			notFound(w, "not found")
			return
		}
		s.handleSummaryNotes(w, r, user, summary)
		return
	}

	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	book, ok, err := s.store.GetBook(summary.BookID, user.ID)
	if err != nil || !ok {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, summaryDetailResponse{Summary: summary, Book: book})
}

func writeLifecycleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		notFound(w, "summary not found")
	case errors.Is(err, workflow.ErrNoDocument):
		writeError(w, http.StatusBadRequest, "book has no document")
	case errors.Is(err, workflow.ErrDegradedSummary):
		writeError(w, http.StatusInternalServerError, "summary generation failed")
	case errors.Is(err, extract.ErrEmptyDocument), errors.Is(err, extract.ErrInvalidFormat):
		writeError(w, http.StatusInternalServerError, "document could not be processed")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
