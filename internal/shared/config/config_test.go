package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"PORT", "ENV", "FUNCTION_KEYS", "ALLOW_QUERY_OVERRIDE", "MAX_BODY_BYTES", "DATABASE_URL", "HISTORY_BACKEND", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.Env != "dev" || !cfg.IsDevLike() {
		t.Fatalf("expected dev env, got %q", cfg.Env)
	}
	if !cfg.AllowQueryOverride {
		t.Fatalf("expected query override on by default")
	}
	if cfg.MaxBodyBytes != defaultMaxBodyBytes {
		t.Fatalf("expected default max body bytes, got %d", cfg.MaxBodyBytes)
	}
	if len(cfg.FunctionKeys) != 0 {
		t.Fatalf("expected no function keys, got %v", cfg.FunctionKeys)
	}
	if cfg.HistoryBackend != "" {
		t.Fatalf("expected history disabled, got %q", cfg.HistoryBackend)
	}
	if cfg.RateLimitRPS != 0 || cfg.RateLimitBurst != 20 {
		t.Fatalf("unexpected rate limit defaults: %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENV", "prod")
	t.Setenv("FUNCTION_KEYS", " key-a, ,key-b ")
	t.Setenv("ALLOW_QUERY_OVERRIDE", "false")
	t.Setenv("MAX_BODY_BYTES", "2048")
	t.Setenv("HISTORY_BACKEND", "Memory")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg := Load()
	if cfg.Env != "production" || cfg.IsDevLike() {
		t.Fatalf("expected production env, got %q", cfg.Env)
	}
	if len(cfg.FunctionKeys) != 2 || cfg.FunctionKeys[0] != "key-a" || cfg.FunctionKeys[1] != "key-b" {
		t.Fatalf("unexpected function keys: %v", cfg.FunctionKeys)
	}
	if cfg.AllowQueryOverride {
		t.Fatalf("expected query override off")
	}
	if cfg.MaxBodyBytes != 2048 {
		t.Fatalf("expected max body 2048, got %d", cfg.MaxBodyBytes)
	}
	if cfg.HistoryBackend != "memory" {
		t.Fatalf("expected memory history, got %q", cfg.HistoryBackend)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Fatalf("expected rps 2.5, got %v", cfg.RateLimitRPS)
	}
	if cfg.RateLimitBurst != 20 {
		t.Fatalf("expected burst fallback 20, got %d", cfg.RateLimitBurst)
	}
}

func TestLoadReadsDotEnvWithoutOverridingEnvironment(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9090\nENV=staging\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("PORT", "")
	t.Setenv("ENV", "local")
	os.Unsetenv("PORT")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected port from .env, got %q", cfg.Port)
	}
	if cfg.Env != "local" {
		t.Fatalf("expected environment to win over .env, got %q", cfg.Env)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	})
}
