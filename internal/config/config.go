// Package config loads service settings from an optional .env file, an
// optional YAML file and the process environment, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"kb-analytics-service/internal/analytics/core/domain"
	"kb-analytics-service/internal/analytics/core/engine"
	"kb-analytics-service/internal/platform/validation"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type SeriesConfig struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color" validate:"omitempty,hexcolor"`
}

// PaletteConfig overrides the chart identities. It is read from YAML only.
type PaletteConfig struct {
	Chats         SeriesConfig `yaml:"chats"`
	MailSensitive SeriesConfig `yaml:"mail_sensitive"`
	MailAuto      SeriesConfig `yaml:"mail_auto"`
	PieLabels     []string     `yaml:"pie_labels" validate:"omitempty,len=2"`
	PieColors     []string     `yaml:"pie_colors" validate:"omitempty,len=2,dive,hexcolor"`
}

type Config struct {
	Port          string `yaml:"port" validate:"required,numeric"`
	PostgresDSN   string `yaml:"postgres_dsn" validate:"required"`
	Environment   string `yaml:"environment"`
	LogLevel      string `yaml:"log_level" validate:"oneof=debug info warn error"`
	DisplayLocale string `yaml:"display_locale" validate:"oneof=de en"`
	Timezone      string `yaml:"timezone" validate:"required"`

	TotalLimit int `yaml:"total_limit" validate:"gte=0"`
	ChatLimit  int `yaml:"chat_limit" validate:"gte=0"`
	MailLimit  int `yaml:"mail_limit" validate:"gte=0"`

	EventRetentionDays       int    `yaml:"event_retention_days" validate:"min=1"`
	QaRetentionDays          int    `yaml:"qa_retention_days" validate:"min=1"`
	EventCleanupSchedule     string `yaml:"event_cleanup_schedule" validate:"cron"`
	QaCleanupSchedule        string `yaml:"qa_cleanup_schedule" validate:"cron"`
	DashboardRefreshSchedule string `yaml:"dashboard_refresh_schedule" validate:"omitempty,cron"`
	DefaultTimeFrame         string `yaml:"default_timeframe" validate:"oneof=today week month total"`

	Palette PaletteConfig `yaml:"palette"`

	Location *time.Location `yaml:"-"` // computed from Timezone
}

func defaults() Config {
	return Config{
		Port:                     "8080",
		LogLevel:                 "info",
		DisplayLocale:            "de",
		Timezone:                 "Europe/Berlin",
		TotalLimit:               10000,
		ChatLimit:                8000,
		MailLimit:                2000,
		EventRetentionDays:       365,
		QaRetentionDays:          30,
		EventCleanupSchedule:     "15 2 * * *",
		QaCleanupSchedule:        "10 3 * * *",
		DashboardRefreshSchedule: "*/5 * * * *",
		DefaultTimeFrame:         string(domain.TimeFrameWeek),
	}
}

// Load reads the configuration. A missing .env or YAML file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	path := "config.yaml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		path = p
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := validation.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	envOverride(&cfg.Port, "PORT")
	envOverride(&cfg.PostgresDSN, "POSTGRES_DSN")
	envOverride(&cfg.Environment, "ENVIRONMENT")
	envOverride(&cfg.LogLevel, "LOG_LEVEL")
	envOverride(&cfg.DisplayLocale, "DISPLAY_LOCALE")
	envOverride(&cfg.Timezone, "TIMEZONE")
	envOverride(&cfg.EventCleanupSchedule, "EVENT_CLEANUP_SCHEDULE")
	envOverride(&cfg.QaCleanupSchedule, "QA_CLEANUP_SCHEDULE")
	envOverride(&cfg.DashboardRefreshSchedule, "DASHBOARD_REFRESH_SCHEDULE")
	envOverride(&cfg.DefaultTimeFrame, "DEFAULT_TIMEFRAME")

	ints := []struct {
		field *int
		key   string
	}{
		{&cfg.TotalLimit, "TOTAL_LIMIT"},
		{&cfg.ChatLimit, "CHAT_LIMIT"},
		{&cfg.MailLimit, "MAIL_LIMIT"},
		{&cfg.EventRetentionDays, "EVENT_RETENTION_DAYS"},
		{&cfg.QaRetentionDays, "QA_RETENTION_DAYS"},
	}
	for _, i := range ints {
		if err := envOverrideInt(i.field, i.key); err != nil {
			return err
		}
	}
	return nil
}

func envOverride(field *string, key string) {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, key string) error {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	*field = n
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c *Config) Limits() domain.Limits {
	return domain.Limits{Total: c.TotalLimit, Chat: c.ChatLimit, Mail: c.MailLimit}
}

// EngineOptions builds the aggregation options with the palette overrides
// applied on top of the defaults.
func (c *Config) EngineOptions() (engine.Options, error) {
	lc, err := engine.NewLocale(c.DisplayLocale)
	if err != nil {
		return engine.Options{}, err
	}

	p := engine.DefaultPalette()
	overrideSeries(p, domain.ChatCompleted, c.Palette.Chats)
	overrideSeries(p, domain.MailSensitive, c.Palette.MailSensitive)
	overrideSeries(p, domain.MailAuto, c.Palette.MailAuto)
	if len(c.Palette.PieLabels) == 2 {
		p.PieLabels = [2]string{c.Palette.PieLabels[0], c.Palette.PieLabels[1]}
	}
	if len(c.Palette.PieColors) == 2 {
		p.PieColors = [2]string{c.Palette.PieColors[0], c.Palette.PieColors[1]}
	}

	return engine.Options{Location: c.Location, Locale: lc, Palette: p}, nil
}

func overrideSeries(p engine.Palette, cat domain.Category, sc SeriesConfig) {
	s := p.Series[cat]
	if sc.Name != "" {
		s.Name = sc.Name
	}
	if sc.Color != "" {
		s.Color = sc.Color
	}
	p.Series[cat] = s
}
