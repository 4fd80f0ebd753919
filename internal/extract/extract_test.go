package extract

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/Rishiwant1729/capstone-2-Backend/pkg/storage"
)

func TestTextRejectsNonPDF(t *testing.T) {
	documents, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()
	if err := documents.Put(ctx, "garbage.pdf", bytes.NewReader([]byte("this is not a pdf")), 17, "application/pdf"); err != nil {
		t.Fatalf("put: %v", err)
	}

	service := NewService(documents, t.TempDir())
	_, err = service.Text(ctx, "garbage.pdf")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}

func TestTextMissingDocument(t *testing.T) {
	documents, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	service := NewService(documents, t.TempDir())
	if _, err := service.Text(context.Background(), "does-not-exist.pdf"); err == nil {
		t.Fatalf("expected error for missing document")
	}
}

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "a\n\n b\t\tc  ", "a b c"},
		{"strips nul bytes", "a\x00b", "a b"},
		{"empty input", "   \n\t ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeText(tc.in); got != tc.want {
				t.Fatalf("NormalizeText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
