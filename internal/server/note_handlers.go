package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/Rishiwant1729/capstone-2-Backend/pkg/domain"
)

type noteRequest struct {
	Content string `json:"content"`
}

// /api/summaries/{id}/notes; the summary is already ownership-checked.
func (s *Server) handleSummaryNotes(w http.ResponseWriter, r *http.Request, user domain.User, summary domain.Summary) {
	switch r.Method {
	case http.MethodGet:
		notes, err := s.store.ListNotesBySummary(summary.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"items": notes,
			"count": len(notes),
		})
	case http.MethodPost:
		var req noteRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			writeError(w, http.StatusBadRequest, "content is required")
			return
		}
		note := domain.Note{
			SummaryID: summary.ID,
			UserID:    user.ID,
			Content:   strings.TrimSpace(req.Content),
		}
		if err := s.store.CreateNote(&note); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, note)
	default:
		methodNotAllowed(w)
	}
}

// /api/notes/{id}
func (s *Server) handleNoteByID(w http.ResponseWriter, r *http.Request, user domain.User) {
	path := strings.TrimPrefix(r.URL.Path, "/api/notes/")
	id, err := parseID(path)
	if err != nil {
		notFound(w, "note not found")
		return
	}

	note, ok, err := s.store.GetNote(id, user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		notFound(w, "note not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req noteRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			writeError(w, http.StatusBadRequest, "content is required")
			return
		}
		if err := s.store.UpdateNote(note.ID, strings.TrimSpace(req.Content)); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		note.Content = strings.TrimSpace(req.Content)
		writeJSON(w, http.StatusOK, note)
	case http.MethodDelete:
		if err := s.store.DeleteNote(note.ID); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}
