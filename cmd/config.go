package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"

	"github.com/bnema/chaos-recipe-cli/internal/adapters/poe"
)

type config struct {
	StashBaseURL   string        `env:"CRH_STASH_BASE_URL,default=https://www.pathofexile.com"`
	LeagueBaseURL  string        `env:"CRH_LEAGUE_BASE_URL,default=https://api.pathofexile.com"`
	Realm          string        `env:"CRH_REALM,default=pc"`
	HTTPTimeout    time.Duration `env:"CRH_HTTP_TIMEOUT,default=20s"`
	LogLevel       string        `env:"CRH_LOG_LEVEL,default=warn"`
	SnapshotFile   string        `env:"CRH_SNAPSHOT_FILE"`
	SnapshotBucket string        `env:"CRH_SNAPSHOT_S3_BUCKET"`
	SnapshotKey    string        `env:"CRH_SNAPSHOT_S3_KEY"`
	RefreshPoll    time.Duration `env:"CRH_REFRESH_POLL,default=250ms"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return config{}, fmt.Errorf("decode environment: %w", err)
	}

	cfg.StashBaseURL = valueOrDefault(cfg.StashBaseURL, poe.DefaultStashBaseURL)
	cfg.LeagueBaseURL = valueOrDefault(cfg.LeagueBaseURL, poe.DefaultLeagueBaseURL)
	cfg.Realm = valueOrDefault(cfg.Realm, poe.DefaultRealm)
	cfg.LogLevel = valueOrDefault(cfg.LogLevel, "warn")
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 20 * time.Second
	}
	if cfg.RefreshPoll <= 0 {
		cfg.RefreshPoll = 250 * time.Millisecond
	}

	if (cfg.SnapshotBucket == "") != (cfg.SnapshotKey == "") {
		return config{}, errors.New("CRH_SNAPSHOT_S3_BUCKET and CRH_SNAPSHOT_S3_KEY must be set together")
	}

	return cfg, nil
}

func (c config) replaying() bool {
	return c.SnapshotFile != "" || c.SnapshotBucket != ""
}

func (c config) slogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelWarn, fmt.Errorf("parse CRH_LOG_LEVEL: %w", err)
	}
	return level, nil
}

func valueOrDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
