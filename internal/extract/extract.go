// Package extract turns uploaded book documents into plain text.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Rishiwant1729/capstone-2-Backend/internal/util"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/storage"
)

var (
	// ErrEmptyDocument means the document parsed fine but holds no text.
	ErrEmptyDocument = errors.New("document contains no extractable text")
	// ErrInvalidFormat means the document could not be parsed as a PDF.
	ErrInvalidFormat = errors.New("document is not a readable PDF")
)

// Service extracts normalized plain text from stored documents.
type Service struct {
	documents storage.ObjectStore
	tmpDir    string
}

// NewService builds an extraction service over the given document store.
// tmpDir may be empty, in which case the OS temp dir is used.
func NewService(documents storage.ObjectStore, tmpDir string) *Service {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &Service{documents: documents, tmpDir: tmpDir}
}

// Text fetches the document behind ref and extracts its text content.
// The result has all whitespace runs collapsed to single spaces.
func (s *Service) Text(ctx context.Context, ref string) (string, error) {
	reader, err := s.documents.Get(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("fetch document %q: %w", ref, err)
	}
	defer reader.Close()

	path := filepath.Join(s.tmpDir, "extract-"+util.NewID()+".pdf")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(path)
	if _, err := io.Copy(file, reader); err != nil {
		file.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	return extractPDF(path)
}

func extractPDF(path string) (string, error) {
	// Try pdftotext first (better support for complex PDFs), then
	// fall back to the Go library.
	text, err := extractWithPdftotext(path)
	if err == nil {
		return text, nil
	}
	return extractWithGoLib(path)
}

// extractWithPdftotext uses the system pdftotext tool (poppler-utils).
func extractWithPdftotext(path string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not found: %w", err)
	}

	cmd := exec.Command("pdftotext", "-layout", "-enc", "UTF-8", path, "-")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}

	text := NormalizeText(string(output))
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

// extractWithGoLib uses the Go PDF library (fallback).
func extractWithGoLib(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer file.Close()

	var builder strings.Builder
	totalPages := reader.NumPage()
	for i := 1; i <= totalPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Skip problematic pages instead of failing entirely.
			continue
		}
		builder.WriteString(pageText)
		builder.WriteString(" ")
	}

	text := NormalizeText(builder.String())
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

// NormalizeText collapses whitespace runs, strips NUL bytes and fixes
// invalid UTF-8 so downstream summarization sees clean prose.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\x00", " ")
	text = strings.ToValidUTF8(text, "")
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}
