package gemini

import "testing"

func TestNewConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := NewConfig(); err == nil {
		t.Fatalf("expected error without GEMINI_API_KEY")
	}
}

func TestNewConfigDefaultsModel(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if cfg.APIKey != "test-key" {
		t.Fatalf("api key not read: %s", cfg.APIKey)
	}
	if cfg.Model != "gemini-2.5-flash" {
		t.Fatalf("expected default model, got %s", cfg.Model)
	}

	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	cfg, err = NewConfig()
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if cfg.Model != "gemini-2.5-pro" {
		t.Fatalf("model override ignored, got %s", cfg.Model)
	}
}
