package storage

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestFileStorePutGetDelete(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()
	body := "pdf bytes"
	if err := fs.Put(ctx, "books/7/doc.pdf", strings.NewReader(body), int64(len(body)), "application/pdf"); err != nil {
		t.Fatalf("put: %v", err)
	}
	rc, err := fs.Get(ctx, "books/7/doc.pdf")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != body {
		t.Fatalf("read %q, want %q", data, body)
	}
	if err := fs.Delete(ctx, "books/7/doc.pdf"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := fs.Get(ctx, "books/7/doc.pdf"); err == nil {
		t.Fatalf("expected get after delete to fail")
	}
}

func TestFileStoreDeleteMissingIsNoop(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if err := fs.Delete(context.Background(), "books/does/not/exist.pdf"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestFileStoreRejectsTraversalKeys(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	for _, key := range []string{"", "..", "../outside.pdf", "/etc/passwd"} {
		if err := fs.Put(context.Background(), key, strings.NewReader("x"), 1, "application/pdf"); err == nil {
			t.Fatalf("key %q should be rejected", key)
		}
	}
}
