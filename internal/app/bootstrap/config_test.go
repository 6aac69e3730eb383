package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Env != "development" {
		t.Fatalf("Env = %q, want development", cfg.Env)
	}
	if cfg.HTTP.Port != 8080 {
		t.Fatalf("Port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.Auth.TokenSecret != devTokenSecret {
		t.Fatalf("TokenSecret = %q, want dev fallback", cfg.Auth.TokenSecret)
	}
	if cfg.Auth.TokenTTLSeconds != 604800 {
		t.Fatalf("TokenTTLSeconds = %d, want 604800", cfg.Auth.TokenTTLSeconds)
	}
	if cfg.Production() {
		t.Fatal("Production() = true for development env")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("POSTGRES_URL", "postgres://db.internal:5432/orderdesk")
	t.Setenv("AUTH_TOKEN_TTL_SECONDS", "3600")
	t.Setenv("DEV_ALLOW_USER_ID_HEADER", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Env != "staging" {
		t.Fatalf("Env = %q, want staging", cfg.Env)
	}
	if cfg.HTTP.Port != 9090 {
		t.Fatalf("Port = %d, want 9090", cfg.HTTP.Port)
	}
	if cfg.Database.URL != "postgres://db.internal:5432/orderdesk" {
		t.Fatalf("Database.URL = %q", cfg.Database.URL)
	}
	if cfg.Auth.TokenTTLSeconds != 3600 {
		t.Fatalf("TokenTTLSeconds = %d, want 3600", cfg.Auth.TokenTTLSeconds)
	}
	if !cfg.Auth.AllowUserIDHeader {
		t.Fatal("AllowUserIDHeader = false, want true")
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "env: development\nhttp:\n  port: 7000\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("HTTP_PORT", "7100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTP.Port != 7100 {
		t.Fatalf("Port = %d, want env override 7100", cfg.HTTP.Port)
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	if _, err := Load(""); err == nil {
		t.Fatal("Load() accepted production without AUTH_TOKEN_SECRET")
	}

	t.Setenv("AUTH_TOKEN_SECRET", devTokenSecret)
	if _, err := Load(""); err == nil {
		t.Fatal("Load() accepted the development default secret in production")
	}

	t.Setenv("AUTH_TOKEN_SECRET", "real-secret")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Production() {
		t.Fatal("Production() = false for production env")
	}
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("Load(absent file) error = %v", err)
	}
}
