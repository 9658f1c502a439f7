package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestAnswerer_TrimsResponse(t *testing.T) {
	var gotPrompt string
	gen := GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return "  \n The answer.\n\n", nil
	})
	stats := NewLLMStats(time.Hour)
	a := NewAnswerer(gen, stats, nil)

	got := a.Answer(context.Background(), "PROMPT")
	if got != "The answer." {
		t.Errorf("expected trimmed answer, got %q", got)
	}
	if gotPrompt != "PROMPT" {
		t.Errorf("prompt not forwarded, got %q", gotPrompt)
	}
	if snap := stats.Snapshot(); snap.Count != 1 || snap.Failures != 0 {
		t.Errorf("expected one successful sample, got %+v", snap)
	}
}

func TestAnswerer_ContainsErrors(t *testing.T) {
	gen := GeneratorFunc(func(context.Context, string) (string, error) {
		return "", errors.New("quota exceeded")
	})
	stats := NewLLMStats(time.Hour)
	a := NewAnswerer(gen, stats, nil)

	got := a.Answer(context.Background(), "p")
	if !strings.HasPrefix(got, "An error occurred") {
		t.Fatalf("expected error text, got %q", got)
	}
	if !strings.Contains(got, "quota exceeded") {
		t.Errorf("expected underlying error in text, got %q", got)
	}
	if snap := stats.Snapshot(); snap.Failures != 1 {
		t.Errorf("expected one failure, got %+v", snap)
	}
}

func TestAnswerer_EmptyResponseIsFailure(t *testing.T) {
	gen := GeneratorFunc(func(context.Context, string) (string, error) {
		return "   ", nil
	})
	got := NewAnswerer(gen, nil, nil).Answer(context.Background(), "p")
	if !strings.HasPrefix(got, ErrorPrefix) {
		t.Errorf("expected error prefix for empty reply, got %q", got)
	}
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	if _, err := NewGeminiClient(context.Background(), "", "gemini-2.0-flash"); err == nil {
		t.Error("expected error for empty api key")
	}
}
