// Package summarize produces book summaries, preferring an AI provider
// and degrading to a local excerpt when none is available.
package summarize

import (
	"context"
	"strings"
	"time"

	"github.com/Rishiwant1729/capstone-2-Backend/pkg/ai"
)

const (
	// EmptyContentSummary is returned when there is nothing to summarize.
	EmptyContentSummary = "No content provided to summarize."

	// shortTextThreshold: text at or under this length is already a
	// fine summary of itself.
	shortTextThreshold = 280

	// maxPromptChars bounds how much book text is sent to the provider.
	maxPromptChars = 12000

	systemPrompt = "You are a concise book summarizer. Produce a clear prose summary of the provided text in at most three paragraphs. Do not use markdown or bullet points."
)

// Result is the outcome of a summarization attempt. Ok results came
// from the configured provider; Degraded results were produced locally
// and Reason says why.
type Result struct {
	Text     string
	Provider string
	Degraded bool
	Reason   string
}

// Service turns extracted book text into summaries. A nil generator is
// valid and means every summary is produced by the local fallback.
type Service struct {
	generator ai.TextGenerator
	timeout   time.Duration
}

// NewService builds a summarization service. timeout bounds each
// provider call; zero means 30 seconds.
func NewService(generator ai.TextGenerator, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{generator: generator, timeout: timeout}
}

// Summarize produces a summary for text. It never fails: provider
// errors, timeouts and missing configuration all degrade to a local
// excerpt, recorded in the Result.
func (s *Service) Summarize(ctx context.Context, text string) Result {
	// Collapse whitespace runs before measuring or prompting.
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return Result{Text: EmptyContentSummary, Degraded: true, Reason: "empty content"}
	}
	// Short text stands as its own summary. Not a degradation.
	if len([]rune(text)) <= shortTextThreshold {
		return Result{Text: text, Reason: "text short enough to stand as its own summary"}
	}

	if s.generator == nil {
		return Result{Text: fallbackSummary(text), Degraded: true, Reason: "no AI provider configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := text
	if runes := []rune(prompt); len(runes) > maxPromptChars {
		prompt = string(runes[:maxPromptChars])
	}
	generated, err := s.generator.GenerateText(ctx, systemPrompt, prompt)
	if err != nil {
		return Result{
			Text:     fallbackSummary(text),
			Provider: s.generator.Name(),
			Degraded: true,
			Reason:   "provider call failed: " + err.Error(),
		}
	}
	generated = strings.TrimSpace(generated)
	if generated == "" {
		return Result{
			Text:     fallbackSummary(text),
			Provider: s.generator.Name(),
			Degraded: true,
			Reason:   "provider returned empty text",
		}
	}
	return Result{Text: generated, Provider: s.generator.Name()}
}

// fallbackSummary takes the first few sentences of the text, or a hard
// prefix when no sentence boundaries are present.
func fallbackSummary(text string) string {
	runes := []rune(text)
	sentences := 0
	for i, r := range runes {
		if r == '.' || r == '!' || r == '?' {
			sentences++
			if sentences == 3 {
				return strings.TrimSpace(string(runes[:i+1]))
			}
		}
	}
	if len(runes) <= shortTextThreshold {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(string(runes[:shortTextThreshold]))
}
