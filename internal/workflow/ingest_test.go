package workflow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Rishiwant1729/capstone-2-Backend/internal/summarize"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/domain"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/store"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Text(_ context.Context, _ string) (string, error) {
	return f.text, f.err
}

type fakeSummarizer struct {
	result summarize.Result
}

func (f *fakeSummarizer) Summarize(_ context.Context, _ string) summarize.Result {
	return f.result
}

func newTestUser(t *testing.T, s store.Store) domain.User {
	t.Helper()
	user := domain.User{Email: "reader@example.com", Name: "Reader", PasswordHash: "x"}
	if err := s.CreateUser(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestIngestWithoutDocument(t *testing.T) {
	s := store.NewMemoryStore()
	user := newTestUser(t, s)
	ingestor := NewIngestor(s, &fakeExtractor{}, &fakeSummarizer{})

	book, summary, err := ingestor.Ingest(context.Background(), user.ID, IngestInput{Title: "Draft"})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if summary != nil {
		t.Fatalf("no document should mean no summary")
	}
	if book.Status != domain.StatusUploaded {
		t.Fatalf("got status %q, want uploaded", book.Status)
	}
}

func TestIngestSuccess(t *testing.T) {
	s := store.NewMemoryStore()
	user := newTestUser(t, s)
	ingestor := NewIngestor(s,
		&fakeExtractor{text: "Full book text."},
		&fakeSummarizer{result: summarize.Result{Text: "A tidy summary.", Provider: "gemini"}},
	)

	book, summary, err := ingestor.Ingest(context.Background(), user.ID, IngestInput{
		Title:       "The Sea",
		DocumentRef: "docs/the-sea.pdf",
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if book.Status != domain.StatusCompleted {
		t.Fatalf("got status %q, want completed", book.Status)
	}
	if summary == nil || summary.Content != "A tidy summary." {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Diagnostics.Provider != "gemini" || summary.Diagnostics.Degraded {
		t.Fatalf("unexpected diagnostics: %+v", summary.Diagnostics)
	}

	stored, ok, err := s.GetBook(book.ID, user.ID)
	if err != nil || !ok {
		t.Fatalf("get book: ok=%v err=%v", ok, err)
	}
	if stored.Status != domain.StatusCompleted {
		t.Fatalf("stored status %q, want completed", stored.Status)
	}
	if _, ok, _ := s.GetSummaryByBook(book.ID); !ok {
		t.Fatalf("summary should be persisted")
	}
}

func TestIngestExtractionFailureFallsBack(t *testing.T) {
	s := store.NewMemoryStore()
	user := newTestUser(t, s)
	ingestor := NewIngestor(s,
		&fakeExtractor{err: errors.New("unreadable pdf")},
		&fakeSummarizer{},
	)

	book, summary, err := ingestor.Ingest(context.Background(), user.ID, IngestInput{
		Title:       "Broken Upload",
		Description: "a tale of two parsers",
		DocumentRef: "docs/broken.pdf",
	})
	if err != nil {
		t.Fatalf("extraction failure should not surface as an error, got %v", err)
	}
	if book.Status != domain.StatusFailed {
		t.Fatalf("got status %q, want failed", book.Status)
	}
	if summary == nil {
		t.Fatalf("fallback summary should be persisted")
	}
	if !strings.Contains(summary.Content, "a tale of two parsers") {
		t.Fatalf("fallback should use the description, got %q", summary.Content)
	}
	if !summary.Diagnostics.Degraded || !strings.Contains(summary.Diagnostics.Reason, "unreadable pdf") {
		t.Fatalf("unexpected diagnostics: %+v", summary.Diagnostics)
	}
}

func TestIngestDegradedSummaryStillCompletes(t *testing.T) {
	s := store.NewMemoryStore()
	user := newTestUser(t, s)
	ingestor := NewIngestor(s,
		&fakeExtractor{text: "Long text."},
		&fakeSummarizer{result: summarize.Result{Text: "Excerpt.", Degraded: true, Reason: "provider call failed: timeout"}},
	)

	book, summary, err := ingestor.Ingest(context.Background(), user.ID, IngestInput{
		Title:       "Slow Provider",
		DocumentRef: "docs/slow.pdf",
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if book.Status != domain.StatusCompleted {
		t.Fatalf("degraded summaries still complete, got %q", book.Status)
	}
	if !summary.Diagnostics.Degraded {
		t.Fatalf("diagnostics should record the degradation")
	}
}

func TestIngestFallbackUsesTitleAndAuthor(t *testing.T) {
	s := store.NewMemoryStore()
	user := newTestUser(t, s)
	ingestor := NewIngestor(s,
		&fakeExtractor{err: errors.New("boom")},
		&fakeSummarizer{},
	)

	_, summary, err := ingestor.Ingest(context.Background(), user.ID, IngestInput{
		Title:       "Moby-Dick",
		Author:      "Herman Melville",
		DocumentRef: "docs/moby.pdf",
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if !strings.Contains(summary.Content, "Moby-Dick") || !strings.Contains(summary.Content, "Herman Melville") {
		t.Fatalf("fallback should mention title and author, got %q", summary.Content)
	}
}
