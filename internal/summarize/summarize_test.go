package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) GenerateText(_ context.Context, _ string, _ string) (string, error) {
	return f.text, f.err
}

func TestSummarizeEmptyContent(t *testing.T) {
	service := NewService(nil, time.Second)
	result := service.Summarize(context.Background(), "   \n ")
	if result.Text != EmptyContentSummary {
		t.Fatalf("got %q, want %q", result.Text, EmptyContentSummary)
	}
	if !result.Degraded {
		t.Fatalf("empty content result should be degraded")
	}
}

func TestSummarizeShortTextPassesThrough(t *testing.T) {
	service := NewService(&fakeGenerator{err: errors.New("should not be called")}, time.Second)
	text := "A short book about short things."
	result := service.Summarize(context.Background(), text)
	if result.Text != text {
		t.Fatalf("short text should pass through, got %q", result.Text)
	}
	if result.Degraded {
		t.Fatalf("short text passthrough is not a degradation")
	}
}

func TestSummarizeUsesProvider(t *testing.T) {
	service := NewService(&fakeGenerator{text: " A fine summary. "}, time.Second)
	text := strings.Repeat("The plot thickens with every chapter. ", 20)
	result := service.Summarize(context.Background(), text)
	if result.Text != "A fine summary." {
		t.Fatalf("got %q", result.Text)
	}
	if result.Degraded {
		t.Fatalf("provider result should not be degraded")
	}
	if result.Provider != "fake" {
		t.Fatalf("got provider %q", result.Provider)
	}
}

func TestSummarizeProviderFailureFallsBack(t *testing.T) {
	service := NewService(&fakeGenerator{err: errors.New("upstream down")}, time.Second)
	text := strings.Repeat("One. Two. Three. Four. ", 30)
	result := service.Summarize(context.Background(), text)
	if result.Text != "One. Two. Three." {
		t.Fatalf("got %q", result.Text)
	}
	if !result.Degraded {
		t.Fatalf("fallback result should be degraded")
	}
	if !strings.Contains(result.Reason, "upstream down") {
		t.Fatalf("reason should carry provider error, got %q", result.Reason)
	}
}

func TestSummarizeNoProviderFallsBack(t *testing.T) {
	service := NewService(nil, time.Second)
	text := strings.Repeat("x", 500)
	result := service.Summarize(context.Background(), text)
	if len([]rune(result.Text)) != 280 {
		t.Fatalf("expected hard prefix of 280 runes, got %d", len([]rune(result.Text)))
	}
	if !result.Degraded || result.Reason != "no AI provider configured" {
		t.Fatalf("got degraded=%v reason=%q", result.Degraded, result.Reason)
	}
}

func TestSummarizeProviderEmptyResponseFallsBack(t *testing.T) {
	service := NewService(&fakeGenerator{text: "  "}, time.Second)
	text := strings.Repeat("Something happens here. ", 30)
	result := service.Summarize(context.Background(), text)
	if !result.Degraded {
		t.Fatalf("empty provider response should degrade")
	}
	if result.Text == "" {
		t.Fatalf("fallback text should not be empty")
	}
}
