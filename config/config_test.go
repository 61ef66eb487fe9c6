package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123456:test-token")
	t.Setenv("CHAT_ID", "-1001234")
	t.Setenv("IDENTITY_ISSUER", "https://securetoken.example.com/demo")
	t.Setenv("IDENTITY_AUDIENCE", "demo")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Port)
	}
	if cfg.AllowedOrigin != "*" {
		t.Errorf("allowed origin = %q, want *", cfg.AllowedOrigin)
	}
	if cfg.MaxUploadSize != "50MB" {
		t.Errorf("max upload size = %q, want 50MB", cfg.MaxUploadSize)
	}
	if cfg.ForwardTimeout != 2*time.Minute {
		t.Errorf("forward timeout = %v, want 2m", cfg.ForwardTimeout)
	}
	if cfg.APIBaseURL != "https://api.telegram.org" {
		t.Errorf("api base = %q", cfg.APIBaseURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGIN", "https://app.example.com")
	t.Setenv("FORWARD_TIMEOUT", "90s")
	t.Setenv("MAX_UPLOAD_SIZE", "10MB")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Port)
	}
	if cfg.AllowedOrigin != "https://app.example.com" {
		t.Errorf("allowed origin = %q", cfg.AllowedOrigin)
	}
	if cfg.ForwardTimeout != 90*time.Second {
		t.Errorf("forward timeout = %v, want 90s", cfg.ForwardTimeout)
	}
}

func TestLoadMissingSecrets(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOT_TOKEN", "")

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	if err == nil {
		t.Fatal("expected error for missing BOT_TOKEN")
	}
	if !strings.Contains(err.Error(), "BOT_TOKEN") {
		t.Errorf("error should name the missing variable: %v", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	setRequiredEnv(t)
	os.Unsetenv("CHAT_ID")

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("CHAT_ID=-1009999\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ChatID != "-1009999" {
		t.Errorf("chat id = %q, want value from env file", cfg.ChatID)
	}
}

func TestSummaryMasksSecrets(t *testing.T) {
	cfg := &Config{BotToken: "123456:secret-token", ChatID: "-100777"}
	cfg.ApplyDefaults()

	s := cfg.Summary()
	tok, _ := s["bot_token"].(string)
	if strings.Contains(tok, "secret-token") {
		t.Errorf("summary leaks bot token: %q", tok)
	}
	if !strings.HasSuffix(tok, "***") {
		t.Errorf("bot token should be masked, got %q", tok)
	}
}
