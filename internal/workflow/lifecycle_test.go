package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/Rishiwant1729/capstone-2-Backend/internal/summarize"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/domain"
	"github.com/Rishiwant1729/capstone-2-Backend/pkg/store"
)

func seedBookWithSummary(t *testing.T, s store.Store, ownerID uint) (domain.Book, domain.Summary) {
	t.Helper()
	book := domain.Book{
		OwnerID:     ownerID,
		Title:       "Seeded",
		DocumentRef: "docs/seeded.pdf",
		Status:      domain.StatusCompleted,
	}
	if err := s.CreateBook(&book); err != nil {
		t.Fatalf("create book: %v", err)
	}
	summary := domain.Summary{
		BookID:      book.ID,
		CreatedByID: ownerID,
		Content:     "Original content.",
		Highlights:  "Original content.",
	}
	if err := s.CreateSummary(&summary); err != nil {
		t.Fatalf("create summary: %v", err)
	}
	return book, summary
}

func TestUpdateSummaryRecomputesHighlights(t *testing.T) {
	s := store.NewMemoryStore()
	user := newTestUser(t, s)
	book, _ := seedBookWithSummary(t, s, user.ID)
	lifecycle := NewLifecycle(s, &fakeExtractor{}, &fakeSummarizer{}, true)

	updated, err := lifecycle.UpdateSummary(context.Background(), user.ID, book.ID, "New content entirely.", nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Content != "New content entirely." {
		t.Fatalf("got content %q", updated.Content)
	}
	if updated.Highlights != "New content entirely." {
		t.Fatalf("highlights should be recomputed from content, got %q", updated.Highlights)
	}
}

func TestUpdateSummaryHonorsClientHighlights(t *testing.T) {
	s := store.NewMemoryStore()
	user := newTestUser(t, s)
	book, _ := seedBookWithSummary(t, s, user.ID)
	lifecycle := NewLifecycle(s, &fakeExtractor{}, &fakeSummarizer{}, true)

	custom := "My own highlight"
	updated, err := lifecycle.UpdateSummary(context.Background(), user.ID, book.ID, "New content.", &custom)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Highlights != custom {
		t.Fatalf("client highlights should be honored, got %q", updated.Highlights)
	}
}

func TestUpdateSummaryIgnoresClientHighlightsWhenDisabled(t *testing.T) {
	s := store.NewMemoryStore()
	user := newTestUser(t, s)
	book, _ := seedBookWithSummary(t, s, user.ID)
	lifecycle := NewLifecycle(s, &fakeExtractor{}, &fakeSummarizer{}, false)

	custom := "My own highlight"
	updated, err := lifecycle.UpdateSummary(context.Background(), user.ID, book.ID, "New content.", &custom)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Highlights != "New content." {
		t.Fatalf("client highlights should be ignored, got %q", updated.Highlights)
	}
}

func TestUpdateSummaryOtherUsersBookIsNotFound(t *testing.T) {
	s := store.NewMemoryStore()
	owner := newTestUser(t, s)
	book, _ := seedBookWithSummary(t, s, owner.ID)

	other := domain.User{Email: "other@example.com", PasswordHash: "x"}
	if err := s.CreateUser(&other); err != nil {
		t.Fatalf("create user: %v", err)
	}

	lifecycle := NewLifecycle(s, &fakeExtractor{}, &fakeSummarizer{}, true)
	_, err := lifecycle.UpdateSummary(context.Background(), other.ID, book.ID, "hijack", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSummaryResetsBook(t *testing.T) {
	s := store.NewMemoryStore()
	user := newTestUser(t, s)
	book, summary := seedBookWithSummary(t, s, user.ID)
	note := domain.Note{SummaryID: summary.ID, UserID: user.ID, Content: "remember this"}
	if err := s.CreateNote(&note); err != nil {
		t.Fatalf("create note: %v", err)
	}

	lifecycle := NewLifecycle(s, &fakeExtractor{}, &fakeSummarizer{}, true)
	if err := lifecycle.DeleteSummary(context.Background(), user.ID, book.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, ok, _ := s.GetSummaryByBook(book.ID); ok {
		t.Fatalf("summary should be gone")
	}
	if _, ok, _ := s.GetNote(note.ID, user.ID); ok {
		t.Fatalf("notes should be gone with the summary")
	}
	stored, _, _ := s.GetBook(book.ID, user.ID)
	if stored.Status != domain.StatusUploaded {
		t.Fatalf("book should reset to uploaded, got %q", stored.Status)
	}
}

func TestRegenerateReplacesSummary(t *testing.T) {
	s := store.NewMemoryStore()
	user := newTestUser(t, s)
	book, summary := seedBookWithSummary(t, s, user.ID)

	lifecycle := NewLifecycle(s,
		&fakeExtractor{text: "Fresh text."},
		&fakeSummarizer{result: summarize.Result{Text: "Fresh summary.", Provider: "openai"}},
		true,
	)
	regenerated, err := lifecycle.Regenerate(context.Background(), user.ID, book.ID)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if regenerated.ID != summary.ID {
		t.Fatalf("regeneration should update the existing summary in place")
	}
	if regenerated.Content != "Fresh summary." {
		t.Fatalf("got %q", regenerated.Content)
	}
	stored, _, _ := s.GetBook(book.ID, user.ID)
	if stored.Status != domain.StatusCompleted {
		t.Fatalf("got status %q, want completed", stored.Status)
	}
}

func TestRegenerateWithoutDocument(t *testing.T) {
	s := store.NewMemoryStore()
	user := newTestUser(t, s)
	book := domain.Book{OwnerID: user.ID, Title: "No File", Status: domain.StatusUploaded}
	if err := s.CreateBook(&book); err != nil {
		t.Fatalf("create book: %v", err)
	}

	lifecycle := NewLifecycle(s, &fakeExtractor{}, &fakeSummarizer{}, true)
	_, err := lifecycle.Regenerate(context.Background(), user.ID, book.ID)
	if !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
	stored, _, _ := s.GetBook(book.ID, user.ID)
	if stored.Status != domain.StatusUploaded {
		t.Fatalf("status should be untouched, got %q", stored.Status)
	}
}

func TestRegenerateSurfacesExtractionFailure(t *testing.T) {
	s := store.NewMemoryStore()
	user := newTestUser(t, s)
	book, _ := seedBookWithSummary(t, s, user.ID)

	lifecycle := NewLifecycle(s,
		&fakeExtractor{err: errors.New("corrupt file")},
		&fakeSummarizer{},
		true,
	)
	_, err := lifecycle.Regenerate(context.Background(), user.ID, book.ID)
	if err == nil {
		t.Fatalf("regeneration must surface extraction failures")
	}
	stored, _, _ := s.GetBook(book.ID, user.ID)
	if stored.Status != domain.StatusFailed {
		t.Fatalf("got status %q, want failed", stored.Status)
	}
}

func TestRegenerateSurfacesDegradedSummary(t *testing.T) {
	s := store.NewMemoryStore()
	user := newTestUser(t, s)
	book, _ := seedBookWithSummary(t, s, user.ID)

	lifecycle := NewLifecycle(s,
		&fakeExtractor{text: "Fine text."},
		&fakeSummarizer{result: summarize.Result{Text: "fallback", Degraded: true, Reason: "no AI provider configured"}},
		true,
	)
	_, err := lifecycle.Regenerate(context.Background(), user.ID, book.ID)
	if !errors.Is(err, ErrDegradedSummary) {
		t.Fatalf("expected ErrDegradedSummary, got %v", err)
	}
	stored, _, _ := s.GetBook(book.ID, user.ID)
	if stored.Status != domain.StatusFailed {
		t.Fatalf("got status %q, want failed", stored.Status)
	}
}
