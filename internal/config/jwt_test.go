package config

import "testing"

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("JWT_EXPIRATION_HOURS", "48")

	cfg, err := NewJWTConfig()
	if err != nil {
		t.Fatalf("NewJWTConfig failed: %v", err)
	}
	if cfg.Secret != "test-secret-key" || cfg.ExpirationHours != 48 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestNewJWTConfig_DefaultExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	if err != nil {
		t.Fatalf("NewJWTConfig failed: %v", err)
	}
	if cfg.ExpirationHours != 24 {
		t.Errorf("ExpirationHours = %d, want default 24", cfg.ExpirationHours)
	}
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := NewJWTConfig(); err == nil {
		t.Fatal("expected error when JWT_SECRET is unset")
	}
}

func TestNewJWTConfig_InvalidExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("JWT_EXPIRATION_HOURS", "not-a-number")

	if _, err := NewJWTConfig(); err == nil {
		t.Fatal("expected error for non-numeric expiration")
	}

	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	if _, err := NewJWTConfig(); err == nil {
		t.Fatal("expected error for zero expiration")
	}
}
