package config

import (
	"os"
	"testing"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	os.Unsetenv("DATABASE_URL")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error when DATABASE_URL is unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("DATABASE_URL", "postgres://localhost:5432/pneumotrack")
	defer os.Unsetenv("DATABASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.DBMaxConns != 20 {
		t.Errorf("expected default max conns 20, got %d", cfg.DBMaxConns)
	}
	if cfg.DBAcquireSecs != 5 {
		t.Errorf("expected default acquire timeout 5, got %d", cfg.DBAcquireSecs)
	}
	if !cfg.IsDev() {
		t.Error("expected default env to be development")
	}
}

func TestValidate_ProductionRequiresSecret(t *testing.T) {
	cfg := &Config{Env: "production", DBAcquireSecs: 5}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure without AUTH_HMAC_SECRET in production")
	}

	cfg.AuthHMACSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_DevNeedsNoSecret(t *testing.T) {
	cfg := &Config{Env: "development", DBAcquireSecs: 5}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_AcquireTimeout(t *testing.T) {
	cfg := &Config{Env: "development", DBAcquireSecs: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure for zero acquire timeout")
	}
}
