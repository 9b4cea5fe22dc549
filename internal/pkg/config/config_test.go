package config

import (
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Fatalf("unexpected base url %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.API.Timeout)
	}
	if cfg.Credential.Backend != BackendFile {
		t.Fatalf("unexpected backend %q", cfg.Credential.Backend)
	}
	if cfg.Shell.LoginPath != "/login" || cfg.Shell.FallbackPath != "/dashboard" {
		t.Fatalf("unexpected shell paths: %+v", cfg.Shell)
	}
	if cfg.Redis.TTL != 12*time.Hour {
		t.Fatalf("unexpected redis ttl %v", cfg.Redis.TTL)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(envconfig.MapLookuper(map[string]string{
		"API_BASE_URL":       "https://api.aura.test",
		"API_TIMEOUT":        "3s",
		"CREDENTIAL_BACKEND": "redis",
		"REDIS_SESSION":      "tab-1",
	}))
	if err != nil {
		t.Fatalf("LoadWith: %v", err)
	}
	if cfg.API.BaseURL != "https://api.aura.test" || cfg.API.Timeout != 3*time.Second {
		t.Fatalf("unexpected api config: %+v", cfg.API)
	}
	if cfg.Credential.Backend != BackendRedis || cfg.Redis.Session != "tab-1" {
		t.Fatalf("unexpected credential config: %+v / %+v", cfg.Credential, cfg.Redis)
	}
}

func TestLoadWith_RejectsUnknownBackend(t *testing.T) {
	_, err := LoadWith(envconfig.MapLookuper(map[string]string{
		"CREDENTIAL_BACKEND": "cookies",
	}))
	if err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
