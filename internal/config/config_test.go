package config

import (
	"testing"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/claims_test")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %q", cfg.Port)
	}
	if cfg.DefaultRole != "insurer_analyst" {
		t.Errorf("expected default role insurer_analyst, got %q", cfg.DefaultRole)
	}
	if cfg.AuditSink != "log" {
		t.Errorf("expected default audit sink log, got %q", cfg.AuditSink)
	}
	if !cfg.IsDev() {
		t.Error("expected development mode by default")
	}
	if cfg.StrictAuth() {
		t.Error("development must not default to strict auth")
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error without DATABASE_URL")
	}
}

func TestStrictAuth(t *testing.T) {
	setBaseEnv(t)

	t.Setenv("ENV", "production")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.StrictAuth() {
		t.Error("production must always be strict")
	}

	t.Setenv("ENV", "development")
	t.Setenv("AUTH_STRICT", "true")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.StrictAuth() {
		t.Error("AUTH_STRICT must enable strict mode in development")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Env: "production", AuditSink: "log"}
	if err := cfg.Validate(); err == nil {
		t.Error("production without a signing key must fail validation")
	}

	cfg.AuthSigningKey = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.AuditSink = "kafka"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown audit sink must fail validation")
	}

	cfg.AuditSink = "postgres"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
