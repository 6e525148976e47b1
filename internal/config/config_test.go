package config

import (
	"os"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	required := map[string]string{
		"DATABASE_DSN":           "postgres://localhost/guardpost",
		"INITIAL_ADMIN_PASSWORD": "change-me",
		"INITIAL_ADMIN_EMAIL":    "admin@guardpost.example.com",
		"JWT_SECRET":             "secret",
		"SEED_USER_PASSWORD":     "seed-pass",
		"EMAIL_FROM":             "noreply@guardpost.example.com",
		"EMAIL_SMTP_USERNAME":    "smtp-user",
		"EMAIL_SMTP_PASSWORD":    "smtp-pass",
		"EMAIL_SMTP_HOST":        "smtp.example.com",
		"RABBITMQ_DSN":           "amqp://localhost",
		"REDIS_PASSWORD":         "redis-pass",
	}
	for key, value := range required {
		t.Setenv(key, value)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("server port = %s, want 3000", cfg.Server.Port)
	}
	if cfg.Timeline.SnapStepMinutes != 15 {
		t.Errorf("snap step = %d, want 15", cfg.Timeline.SnapStepMinutes)
	}
	if cfg.Timeline.MinDurationMinutes != 15 {
		t.Errorf("min duration = %d, want 15", cfg.Timeline.MinDurationMinutes)
	}
	if cfg.Timeline.MinGapMinutes != 15 {
		t.Errorf("min gap = %d, want 15", cfg.Timeline.MinGapMinutes)
	}
	if cfg.Timeline.DropDurationMinutes != 360 {
		t.Errorf("drop duration = %d, want 360", cfg.Timeline.DropDurationMinutes)
	}
	if cfg.Timeline.CacheTTL != 30 {
		t.Errorf("cache ttl = %d, want 30", cfg.Timeline.CacheTTL)
	}
	if !cfg.Digest.Enabled {
		t.Error("digest should default to enabled")
	}
	if cfg.Digest.CronSpec != "0 7 * * *" {
		t.Errorf("digest cron = %q, want daily at 07:00", cfg.Digest.CronSpec)
	}
	if cfg.InitialAdmin.Username != "admin" {
		t.Errorf("initial admin username = %s, want admin", cfg.InitialAdmin.Username)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TIMELINE_SNAP_STEP_MINUTES", "30")
	t.Setenv("DIGEST_ENABLED", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Timeline.SnapStepMinutes != 30 {
		t.Errorf("snap step = %d, want the 30 override", cfg.Timeline.SnapStepMinutes)
	}
	if cfg.Digest.Enabled {
		t.Error("digest override not applied")
	}
}

func TestLoadConfigMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	// t.Setenv registered the cleanup; drop the variable for the
	// duration of this test.
	os.Unsetenv("DATABASE_DSN")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected an error when a required variable is missing")
	}
}
