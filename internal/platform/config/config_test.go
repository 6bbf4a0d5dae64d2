package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("Addr = %s", cfg.Addr)
	}
	if cfg.SLAThresholdDays != 5 {
		t.Fatalf("SLAThresholdDays = %d, want 5", cfg.SLAThresholdDays)
	}
	if cfg.SLAEscalationInterval != 24*time.Hour {
		t.Fatalf("SLAEscalationInterval = %v", cfg.SLAEscalationInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SLA_THRESHOLD_DAYS", "3")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	cfg := Load()
	if cfg.SLAThresholdDays != 3 {
		t.Fatalf("SLAThresholdDays = %d, want 3", cfg.SLAThresholdDays)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("RedisAddr = %s", cfg.RedisAddr)
	}
}

func TestValidate(t *testing.T) {
	cfg := Load()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}

	cfg.DatabaseURL = "postgres://localhost/perfhub"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	cfg.SLAThresholdDays = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero SLA threshold")
	}
}
