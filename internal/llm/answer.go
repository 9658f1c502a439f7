package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ErrorPrefix starts every answer that reports a model failure.
const ErrorPrefix = "An error occurred with the AI model: "

var errEmptyAnswer = errors.New("model returned no text")

// Answerer wraps a Generator so that callers always get display text back.
type Answerer struct {
	gen   Generator
	stats *LLMStats
	log   *slog.Logger
}

func NewAnswerer(gen Generator, stats *LLMStats, log *slog.Logger) *Answerer {
	if log == nil {
		log = slog.Default()
	}
	return &Answerer{gen: gen, stats: stats, log: log}
}

// Answer sends the prompt and returns the trimmed reply. Any failure,
// including an empty reply, comes back as text starting with ErrorPrefix.
func (a *Answerer) Answer(ctx context.Context, prompt string) string {
	a.log.Info("sending request to model")
	start := time.Now()
	text, err := a.gen.Generate(ctx, prompt)
	elapsed := time.Since(start).Milliseconds()

	if err == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			err = errEmptyAnswer
		}
	}

	if err != nil {
		if a.stats != nil {
			a.stats.RecordFailure(elapsed)
		}
		a.log.Error("model call failed", "error", err, "duration_ms", elapsed)
		return fmt.Sprintf("%s%v", ErrorPrefix, err)
	}

	if a.stats != nil {
		a.stats.Record(elapsed)
	}
	a.log.Info("response received", "duration_ms", elapsed, "chars", len(text))
	return text
}
