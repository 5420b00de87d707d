package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kb-analytics-service/internal/analytics/core/domain"
)

// withConfigFile points CONFIG_PATH at a temp file holding content. An empty
// content points at a path that does not exist.
func withConfigFile(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}
	t.Setenv("CONFIG_PATH", path)

	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

var envKeys = []string{
	"PORT", "POSTGRES_DSN", "ENVIRONMENT", "LOG_LEVEL", "DISPLAY_LOCALE", "TIMEZONE",
	"TOTAL_LIMIT", "CHAT_LIMIT", "MAIL_LIMIT", "EVENT_RETENTION_DAYS", "QA_RETENTION_DAYS",
	"EVENT_CLEANUP_SCHEDULE", "QA_CLEANUP_SCHEDULE", "DASHBOARD_REFRESH_SCHEDULE", "DEFAULT_TIMEFRAME",
}

func TestLoad_DefaultsWithEnvDSN(t *testing.T) {
	withConfigFile(t, "")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/kb")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.DisplayLocale != "de" || cfg.DefaultTimeFrame != "week" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.EventRetentionDays != 365 || cfg.QaRetentionDays != 30 {
		t.Fatalf("unexpected retention %d / %d", cfg.EventRetentionDays, cfg.QaRetentionDays)
	}
	if cfg.EventCleanupSchedule != "15 2 * * *" || cfg.QaCleanupSchedule != "10 3 * * *" {
		t.Fatalf("unexpected schedules %q / %q", cfg.EventCleanupSchedule, cfg.QaCleanupSchedule)
	}
	if cfg.Location == nil || cfg.Location.String() != "Europe/Berlin" {
		t.Fatalf("unexpected location %v", cfg.Location)
	}
}

func TestLoad_MissingDSN(t *testing.T) {
	withConfigFile(t, "")
	t.Setenv("POSTGRES_DSN", "")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "postgres_dsn") {
		t.Fatalf("expected postgres_dsn error, got %v", err)
	}
}

func TestLoad_YAMLThenEnvOverride(t *testing.T) {
	withConfigFile(t, `
port: "9000"
postgres_dsn: postgres://yaml/kb
display_locale: en
timezone: UTC
chat_limit: 42
palette:
  chats:
    name: Conversations
    color: "#112233"
  pie_labels: [Good, Bad]
`)
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("PORT", "9100")
	t.Setenv("MAIL_LIMIT", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9100" {
		t.Fatalf("expected env to override yaml port, got %s", cfg.Port)
	}
	if cfg.PostgresDSN != "postgres://yaml/kb" {
		t.Fatalf("expected yaml dsn, got %s", cfg.PostgresDSN)
	}
	if l := cfg.Limits(); l.Chat != 42 || l.Mail != 7 || l.Total != 10000 {
		t.Fatalf("unexpected limits %+v", l)
	}

	opts, err := cfg.EngineOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Locale.Tag() != "en" {
		t.Fatalf("expected en locale, got %s", opts.Locale.Tag())
	}
	chats := opts.Palette.Series[domain.ChatCompleted]
	if chats.Name != "Conversations" || chats.Color != "#112233" {
		t.Fatalf("unexpected chat style %+v", chats)
	}
	if mail := opts.Palette.Series[domain.MailSensitive]; mail.Name != "Sensible Mails" {
		t.Fatalf("expected untouched default, got %+v", mail)
	}
	if opts.Palette.PieLabels != [2]string{"Good", "Bad"} {
		t.Fatalf("unexpected pie labels %v", opts.Palette.PieLabels)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"locale", map[string]string{"DISPLAY_LOCALE": "fr"}, "display_locale"},
		{"timeframe", map[string]string{"DEFAULT_TIMEFRAME": "year"}, "default_timeframe"},
		{"schedule", map[string]string{"QA_CLEANUP_SCHEDULE": "every day"}, "cron"},
		{"retention", map[string]string{"QA_RETENTION_DAYS": "0"}, "qa_retention_days"},
		{"not a number", map[string]string{"CHAT_LIMIT": "many"}, "CHAT_LIMIT"},
		{"timezone", map[string]string{"TIMEZONE": "Mars/Olympus"}, "timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withConfigFile(t, "")
			t.Setenv("POSTGRES_DSN", "postgres://localhost/kb")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	withConfigFile(t, "port: [unterminated")
	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}
