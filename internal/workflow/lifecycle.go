package workflow

import (
	"context"
	"fmt"

	"github.com/Rishiwant1729/capstone-2-Backend/internal/highlight"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/domain"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/store"
)

// Lifecycle manages summaries after ingestion: manual edits, deletion,
// and regeneration from the original document.
type Lifecycle struct {
	store      store.Store
	extractor  Extractor
	summarizer Summarizer

	// honorClientHighlights controls whether client-supplied highlights
	// are stored verbatim or always recomputed from content.
	honorClientHighlights bool
}

// NewLifecycle wires summary lifecycle operations.
func NewLifecycle(s store.Store, extractor Extractor, summarizer Summarizer, honorClientHighlights bool) *Lifecycle {
	return &Lifecycle{
		store:                 s,
		extractor:             extractor,
		summarizer:            summarizer,
		honorClientHighlights: honorClientHighlights,
	}
}

// GetByBook returns the summary attached to the caller's book.
func (l *Lifecycle) GetByBook(ctx context.Context, ownerID, bookID uint) (domain.Summary, error) {
	if _, err := l.ownedBook(ownerID, bookID); err != nil {
		return domain.Summary{}, err
	}
	summary, ok, err := l.store.GetSummaryByBook(bookID)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("get summary: %w", err)
	}
	if !ok {
		return domain.Summary{}, ErrNotFound
	}
	return summary, nil
}

// UpdateSummary replaces the summary content. Highlights are recomputed
// from the new content unless the client supplied them and the service
// is configured to honor client highlights.
func (l *Lifecycle) UpdateSummary(ctx context.Context, ownerID, bookID uint, content string, highlights *string) (domain.Summary, error) {
	summary, err := l.GetByBook(ctx, ownerID, bookID)
	if err != nil {
		return domain.Summary{}, err
	}

	newHighlights := highlight.Excerpt(content, highlight.DefaultMaxLen)
	if highlights != nil && l.honorClientHighlights {
		newHighlights = *highlights
	}

	if err := l.store.UpdateSummary(summary.ID, content, newHighlights, summary.Diagnostics); err != nil {
		return domain.Summary{}, fmt.Errorf("update summary: %w", err)
	}
	summary.Content = content
	summary.Highlights = newHighlights
	return summary, nil
}

// DeleteSummary removes the summary and its notes and resets the book
// to uploaded so it can be regenerated later.
func (l *Lifecycle) DeleteSummary(ctx context.Context, ownerID, bookID uint) error {
	summary, err := l.GetByBook(ctx, ownerID, bookID)
	if err != nil {
		return err
	}
	err = l.store.Transact(func(tx store.Store) error {
		if err := tx.DeleteSummary(summary.ID); err != nil {
			return fmt.Errorf("delete summary: %w", err)
		}
		return tx.SetBookStatus(bookID, domain.StatusUploaded)
	})
	if err != nil {
		return fmt.Errorf("delete summary: %w", err)
	}
	return nil
}

// Regenerate re-runs extraction and summarization for the book's
// document and replaces any existing summary. Unlike initial ingestion
// it reports failures: extraction errors and degraded summarization
// both mark the book failed and surface as errors.
func (l *Lifecycle) Regenerate(ctx context.Context, ownerID, bookID uint) (domain.Summary, error) {
	book, err := l.ownedBook(ownerID, bookID)
	if err != nil {
		return domain.Summary{}, err
	}
	if !book.HasDocument() {
		return domain.Summary{}, ErrNoDocument
	}

	if err := l.store.SetBookStatus(bookID, domain.StatusProcessing); err != nil {
		return domain.Summary{}, fmt.Errorf("mark processing: %w", err)
	}

	text, err := l.extractor.Text(ctx, book.DocumentRef)
	if err != nil {
		if statusErr := l.store.SetBookStatus(bookID, domain.StatusFailed); statusErr != nil {
			return domain.Summary{}, fmt.Errorf("mark failed: %w", statusErr)
		}
		return domain.Summary{}, fmt.Errorf("extract document: %w", err)
	}

	result := l.summarizer.Summarize(ctx, text)
	if result.Degraded {
		if statusErr := l.store.SetBookStatus(bookID, domain.StatusFailed); statusErr != nil {
			return domain.Summary{}, fmt.Errorf("mark failed: %w", statusErr)
		}
		return domain.Summary{}, fmt.Errorf("%w: %s", ErrDegradedSummary, result.Reason)
	}

	newHighlights := highlight.Excerpt(result.Text, highlight.DefaultMaxLen)
	diagnostics := domain.SummaryDiagnostics{Provider: result.Provider}

	existing, hasSummary, err := l.store.GetSummaryByBook(bookID)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("get summary: %w", err)
	}

	var summary domain.Summary
	err = l.store.Transact(func(tx store.Store) error {
		if hasSummary {
			if err := tx.UpdateSummary(existing.ID, result.Text, newHighlights, diagnostics); err != nil {
				return fmt.Errorf("update summary: %w", err)
			}
			summary = existing
			summary.Content = result.Text
			summary.Highlights = newHighlights
			summary.Diagnostics = diagnostics
		} else {
			created := domain.Summary{
				BookID:      bookID,
				CreatedByID: ownerID,
				Content:     result.Text,
				Highlights:  newHighlights,
				Diagnostics: diagnostics,
			}
			if err := tx.CreateSummary(&created); err != nil {
				return fmt.Errorf("create summary: %w", err)
			}
			summary = created
		}
		return tx.SetBookStatus(bookID, domain.StatusCompleted)
	})
	if err != nil {
		return domain.Summary{}, fmt.Errorf("persist regenerated summary: %w", err)
	}
	return summary, nil
}

func (l *Lifecycle) ownedBook(ownerID, bookID uint) (domain.Book, error) {
	book, ok, err := l.store.GetBook(bookID, ownerID)
	if err != nil {
		return domain.Book{}, fmt.Errorf("get book: %w", err)
	}
	if !ok {
		return domain.Book{}, ErrNotFound
	}
	return book, nil
}
