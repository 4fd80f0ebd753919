package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Rishiwant1729/capstone-2-Backend/internal/util"
	"github.com/Rishiwant1729/capstone-2-Backend/internal/workflow"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/domain"
)

type uploadResponse struct {
	Book    domain.Book     `json:"book"`
	Summary *domain.Summary `json:"summary,omitempty"`
}

func (s *Server) handleUploadBook(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusBadRequest, "file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	input := workflow.IngestInput{
		Title:       title,
		Author:      r.FormValue("author"),
		Description: r.FormValue("description"),
	}

	file, header, err := r.FormFile("pdf")
	if err == nil {
		defer file.Close()
		if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
			writeError(w, http.StatusBadRequest, "only PDF uploads are supported")
			return
		}
		ref := fmt.Sprintf("books/%d/%s.pdf", user.ID, util.NewID())
		if err := s.documents.Put(r.Context(), ref, file, header.Size, "application/pdf"); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to store document")
			return
		}
		input.DocumentRef = ref
	} else if !errors.Is(err, http.ErrMissingFile) {
		writeError(w, http.StatusBadRequest, "pdf file is required (field: pdf)")
		return
	}

	book, summary, err := s.ingestor.Ingest(r.Context(), user.ID, input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, uploadResponse{Book: book, Summary: summary})
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	books, err := s.store.ListBooks(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": books,
		"count": len(books),
	})
}

// /api/books/{id}, /api/books/{id}/download,
// /api/books/{id}/summary, /api/books/{id}/summary/regenerate
func (s *Server) handleBookByID(w http.ResponseWriter, r *http.Request, user domain.User) {
	path := strings.TrimPrefix(r.URL.Path, "/api/books/")
	parts := strings.SplitN(path, "/", 2)
	id, err := parseID(parts[0])
	if err != nil {
		notFound(w, "book not found")
		return
	}

	action := ""
	if len(parts) == 2 {
		action = parts[1]
	}
	switch action {
	case "":
		s.handleBook(w, r, user, id)
	case "download":
		s.handleDownloadBook(w, r, user, id)
	case "summary":
		s.handleBookSummary(w, r, user, id)
	case "summary/regenerate":
		s.handleRegenerateSummary(w, r, user, id)
	default:
		notFound(w, "not found")
	}
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request, user domain.User, id uint) {
	book, ok, err := s.store.GetBook(id, user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		notFound(w, "book not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, book)
	case http.MethodDelete:
		if err := s.store.DeleteBook(book.ID); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if book.HasDocument() {
			// Best effort: orphaned objects are harmless.
			_ = s.documents.Delete(r.Context(), book.DocumentRef)
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

// handleDownloadBook hands out a pre-signed URL when the object store
// supports it, and streams the document itself otherwise.
func (s *Server) handleDownloadBook(w http.ResponseWriter, r *http.Request, user domain.User, id uint) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	book, ok, err := s.store.GetBook(id, user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		notFound(w, "book not found")
		return
	}
	if !book.HasDocument() {
		writeError(w, http.StatusBadRequest, "book has no document")
		return
	}

	if url, err := s.documents.PresignGet(r.Context(), book.DocumentRef, 15*time.Minute); err == nil {
		writeJSON(w, http.StatusOK, map[string]string{"url": url})
		return
	}

	reader, err := s.documents.Get(r.Context(), book.DocumentRef)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	defer reader.Close()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", book.Title+".pdf"))
	_, _ = io.Copy(w, reader)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}
