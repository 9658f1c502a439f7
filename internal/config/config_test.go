package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "GEMINI_API_KEY", "GEMINI_MODEL", "PDF_PATH", "UPLOAD_DIR", "IMAGE_DIR", "MAX_UPLOAD_BYTES", "PDF_FALLBACK_PDFTOTEXT", "LLM_STATS_WINDOW"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("unexpected default model %q", cfg.GeminiModel)
	}
	if cfg.PDFPath != "sample.pdf" {
		t.Errorf("expected sample.pdf, got %q", cfg.PDFPath)
	}
	if cfg.UploadDir != "uploads" || cfg.ImageDir != "extracted_images" {
		t.Errorf("unexpected dirs: %q %q", cfg.UploadDir, cfg.ImageDir)
	}
	if cfg.MaxUploadBytes != 209715200 {
		t.Errorf("unexpected max upload %d", cfg.MaxUploadBytes)
	}
	if !cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback enabled by default")
	}
	if cfg.LLMStatsWindow != time.Hour {
		t.Errorf("unexpected stats window %v", cfg.LLMStatsWindow)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("GEMINI_MODEL", "gemini-test")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "false")
	t.Setenv("LLM_STATS_WINDOW", "5m")

	cfg := Load()
	if cfg.Port != "9000" || cfg.GeminiAPIKey != "k" || cfg.GeminiModel != "gemini-test" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.MaxUploadBytes != 1024 {
		t.Errorf("expected 1024, got %d", cfg.MaxUploadBytes)
	}
	if cfg.PDFFallbackPdftotext {
		t.Error("expected fallback disabled")
	}
	if cfg.LLMStatsWindow != 5*time.Minute {
		t.Errorf("expected 5m, got %v", cfg.LLMStatsWindow)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "-5")
	t.Setenv("LLM_STATS_WINDOW", "soon")

	cfg := Load()
	if cfg.MaxUploadBytes != 209715200 {
		t.Errorf("expected default for negative size, got %d", cfg.MaxUploadBytes)
	}
	if cfg.LLMStatsWindow != time.Hour {
		t.Errorf("expected default for unparsable window, got %v", cfg.LLMStatsWindow)
	}
}

func TestValidate_RequiresAPIKey(t *testing.T) {
	err := Config{}.Validate()
	if err == nil {
		t.Fatal("expected error without GEMINI_API_KEY")
	}
	if !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("error should name the variable, got %q", err)
	}
	if err := (Config{GeminiAPIKey: "x"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
