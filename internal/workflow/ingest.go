// Package workflow orchestrates the book ingestion pipeline and the
// summary lifecycle on top of the store, extraction and summarization.
package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rishiwant1729/capstone-2-Backend/internal/highlight"
	"github.com/Rishiwant1729/capstone-2-Backend/internal/summarize"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/domain"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/store"
)

// Extractor yields plain text for a stored document reference.
type Extractor interface {
	Text(ctx context.Context, ref string) (string, error)
}

// Summarizer turns extracted text into a summary result.
type Summarizer interface {
	Summarize(ctx context.Context, text string) summarize.Result
}

// IngestInput carries the metadata and optional document of an upload.
type IngestInput struct {
	Title       string
	Author      string
	Description string
	DocumentRef string
}

// Ingestor runs the upload pipeline: create book, extract, summarize,
// persist. Extraction failures are absorbed into a fallback summary
// and a failed book status; provider failures degrade the summary
// without failing the book.
type Ingestor struct {
	store      store.Store
	extractor  Extractor
	summarizer Summarizer
}

// NewIngestor wires an ingestion pipeline.
func NewIngestor(s store.Store, extractor Extractor, summarizer Summarizer) *Ingestor {
	return &Ingestor{store: s, extractor: extractor, summarizer: summarizer}
}

// Ingest creates the book and, when a document is attached, drives it
// through processing to completed or failed. The returned summary is
// nil only when no document was uploaded. Errors are returned for
// persistence problems; content problems end up in the summary.
func (i *Ingestor) Ingest(ctx context.Context, ownerID uint, in IngestInput) (domain.Book, *domain.Summary, error) {
	book := domain.Book{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(in.Title),
		Author:      strings.TrimSpace(in.Author),
		Description: strings.TrimSpace(in.Description),
		DocumentRef: in.DocumentRef,
		Status:      domain.StatusUploaded,
	}
	if book.HasDocument() {
		book.Status = domain.StatusProcessing
	}
	if err := i.store.CreateBook(&book); err != nil {
		return domain.Book{}, nil, fmt.Errorf("create book: %w", err)
	}
	if !book.HasDocument() {
		return book, nil, nil
	}

	// Extraction and the provider call run outside any transaction.
	text, err := i.extractor.Text(ctx, book.DocumentRef)
	if err != nil {
		content := fallbackSummaryFor(book)
		summary := &domain.Summary{
			BookID:      book.ID,
			CreatedByID: ownerID,
			Content:     content,
			Highlights:  highlight.Excerpt(content, highlight.DefaultMaxLen),
			Diagnostics: domain.SummaryDiagnostics{
				Degraded: true,
				Reason:   "extraction failed: " + err.Error(),
			},
		}
		if err := i.persist(summary, domain.StatusFailed); err != nil {
			return domain.Book{}, nil, err
		}
		book.Status = domain.StatusFailed
		return book, summary, nil
	}

	result := i.summarizer.Summarize(ctx, text)
	summary := &domain.Summary{
		BookID:      book.ID,
		CreatedByID: ownerID,
		Content:     result.Text,
		Highlights:  highlight.Excerpt(result.Text, highlight.DefaultMaxLen),
		Diagnostics: domain.SummaryDiagnostics{
			Provider: result.Provider,
			Degraded: result.Degraded,
			Reason:   result.Reason,
		},
	}
	if err := i.persist(summary, domain.StatusCompleted); err != nil {
		return domain.Book{}, nil, err
	}
	book.Status = domain.StatusCompleted
	return book, summary, nil
}

// persist commits the summary and the final book status together.
func (i *Ingestor) persist(summary *domain.Summary, status domain.BookStatus) error {
	err := i.store.Transact(func(tx store.Store) error {
		if err := tx.CreateSummary(summary); err != nil {
			return fmt.Errorf("create summary: %w", err)
		}
		return tx.SetBookStatus(summary.BookID, status)
	})
	if err != nil {
		return fmt.Errorf("persist summary: %w", err)
	}
	return nil
}

// fallbackSummaryFor builds a stand-in summary from book metadata when
// the document itself yields nothing.
func fallbackSummaryFor(book domain.Book) string {
	if book.Description != "" {
		return fmt.Sprintf("The uploaded document could not be processed. Based on the provided description: %s", book.Description)
	}
	if book.Author != "" {
		return fmt.Sprintf("The uploaded document for %q by %s could not be processed; no summary is available yet.", book.Title, book.Author)
	}
	return fmt.Sprintf("The uploaded document for %q could not be processed; no summary is available yet.", book.Title)
}
