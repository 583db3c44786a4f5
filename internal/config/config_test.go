package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_PORT", "")
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("API_RATE_LIMIT_RPS", "")
	t.Setenv("RETRY_MAX_ATTEMPTS", "")
	t.Setenv("BREAKER_ENABLED", "")

	cfg := Load()
	if cfg.APIPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.APIPort)
	}
	if cfg.NATSSubject != "documents.reclassify" {
		t.Fatalf("expected default subject, got %q", cfg.NATSSubject)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Fatalf("expected default model, got %q", cfg.GeminiModel)
	}
	if cfg.APIRateLimitRPS != 20 {
		t.Fatalf("expected default rate limit 20, got %d", cfg.APIRateLimitRPS)
	}
	if cfg.RetryMaxAttempts != 3 {
		t.Fatalf("expected default max attempts 3, got %d", cfg.RetryMaxAttempts)
	}
	if !cfg.BreakerEnabled {
		t.Fatalf("expected breaker enabled by default")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("MASKING_URL", "http://masking:8000")
	t.Setenv("API_RATE_LIMIT_RPS", "5")
	t.Setenv("BREAKER_ENABLED", "false")

	cfg := Load()
	if cfg.APIPort != "9999" {
		t.Fatalf("expected port override, got %q", cfg.APIPort)
	}
	if cfg.MaskingURL != "http://masking:8000" {
		t.Fatalf("expected masking url override, got %q", cfg.MaskingURL)
	}
	if cfg.APIRateLimitRPS != 5 {
		t.Fatalf("expected rate limit 5, got %d", cfg.APIRateLimitRPS)
	}
	if cfg.BreakerEnabled {
		t.Fatalf("expected breaker disabled")
	}
}

func TestLoadIgnoresUnparsableNumbers(t *testing.T) {
	t.Setenv("API_RATE_LIMIT_RPS", "not-a-number")

	cfg := Load()
	if cfg.APIRateLimitRPS != 20 {
		t.Fatalf("expected fallback to default on unparsable value, got %d", cfg.APIRateLimitRPS)
	}
}
