package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("default port %q, want 8080", cfg.Port)
	}
	if cfg.GeminiTTSModel != "gemini-2.5-flash-preview-tts" {
		t.Errorf("unexpected default model %q", cfg.GeminiTTSModel)
	}
	if cfg.RequestTimeoutSeconds != 120 {
		t.Errorf("default timeout %d, want 120", cfg.RequestTimeoutSeconds)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GEMINI_TTS_MODEL", "gemini-2.5-pro-preview-tts")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("port %q, want 9090", cfg.Port)
	}
	if cfg.GeminiTTSModel != "gemini-2.5-pro-preview-tts" {
		t.Errorf("model %q not overridden", cfg.GeminiTTSModel)
	}
	if cfg.RequestTimeoutSeconds != 30 {
		t.Errorf("timeout %d, want 30", cfg.RequestTimeoutSeconds)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "-5")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative timeout")
	}
}
