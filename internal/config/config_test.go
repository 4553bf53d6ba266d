package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.App.Name != "coupon-book-service" {
		t.Fatalf("app name default mismatch: %q", cfg.App.Name)
	}
	if cfg.Lock.TTLSeconds != 60 {
		t.Fatalf("lock ttl default want 60, got %d", cfg.Lock.TTLSeconds)
	}
	if cfg.Auth.BcryptCost != 10 {
		t.Fatalf("bcrypt cost default want 10, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.AccessTokenTTLMinutes != 60 {
		t.Fatalf("token ttl default want 60, got %d", cfg.Auth.AccessTokenTTLMinutes)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("COUPON_LOCK_TTL_SECONDS", "30")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.App.Port != "9090" {
		t.Fatalf("port override mismatch: %q", cfg.App.Port)
	}
	if cfg.Lock.TTL() != 30*time.Second {
		t.Fatalf("lock ttl override want 30s, got %s", cfg.Lock.TTL())
	}
	if cfg.Logger.Level != "debug" {
		t.Fatalf("log level override mismatch: %q", cfg.Logger.Level)
	}
}

func TestLockTTLFallback(t *testing.T) {
	lock := LockConfig{TTLSeconds: 0}
	if lock.TTL() != 60*time.Second {
		t.Fatalf("zero ttl must fall back to 60s, got %s", lock.TTL())
	}
}

func TestAppAddr(t *testing.T) {
	app := AppConfig{Host: "127.0.0.1", Port: "8081"}
	if app.Addr() != "127.0.0.1:8081" {
		t.Fatalf("addr mismatch: %q", app.Addr())
	}
}
