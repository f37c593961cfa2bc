package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/viper"

	"github.com/bnema/chaos-recipe-cli/internal/adapters/poe"
	statusadapter "github.com/bnema/chaos-recipe-cli/internal/adapters/render/status"
	tomlrepo "github.com/bnema/chaos-recipe-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/chaos-recipe-cli/internal/adapters/secrets/chain"
	"github.com/bnema/chaos-recipe-cli/internal/adapters/snapshot"
	"github.com/bnema/chaos-recipe-cli/internal/application"
	"github.com/bnema/chaos-recipe-cli/internal/ports"
	"github.com/bnema/chaos-recipe-cli/internal/telemetry"
	"github.com/bnema/chaos-recipe-cli/internal/version"
)

type app struct {
	cfg            config
	logger         *slog.Logger
	sessions       *application.SessionService
	fetcher        ports.StashFetcher
	leagues        ports.LeagueLister
	telemetry      telemetry.Providers
	statusRenderer func(application.Status, statusadapter.RenderOptions) (string, error)
	bundleRenderer func(application.BundleResult) (string, error)
	now            func() time.Time
}

func wireApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	level, err := cfg.slogLevel()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	repo, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(filepath.Join(homeDir, ".config", "crh", "secrets"), logger)
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	client := &poe.Client{
		API: poe.API{
			StashBaseURL:  cfg.StashBaseURL,
			LeagueBaseURL: cfg.LeagueBaseURL,
		},
		Realm:          cfg.Realm,
		UserAgent:      "crh/" + version.Version,
		HTTPClient:     http.DefaultClient,
		RequestTimeout: cfg.HTTPTimeout,
	}

	fetcher, err := wireFetcher(ctx, cfg, client, logger)
	if err != nil {
		return nil, err
	}

	telemetryCfg, err := telemetry.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load telemetry config: %w", err)
	}
	telemetryCfg.ServiceVersion = version.Version
	providers, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	return &app{
		cfg:            cfg,
		logger:         logger,
		sessions:       application.NewSessionService(repo, secretStore, nil),
		fetcher:        fetcher,
		leagues:        client,
		telemetry:      providers,
		statusRenderer: statusadapter.Render,
		bundleRenderer: statusadapter.RenderBundle,
		now:            time.Now,
	}, nil
}

// wireFetcher prefers a recorded snapshot over the live stash API when one is configured.
func wireFetcher(ctx context.Context, cfg config, client *poe.Client, logger *slog.Logger) (ports.StashFetcher, error) {
	switch {
	case cfg.SnapshotFile != "":
		logger.Info("replaying stash snapshot", "file", cfg.SnapshotFile)
		return snapshot.NewFetcher(snapshot.NewFileSource(cfg.SnapshotFile), logger), nil
	case cfg.SnapshotBucket != "":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		logger.Info("replaying stash snapshot", "bucket", cfg.SnapshotBucket, "key", cfg.SnapshotKey)
		source := snapshot.NewS3Source(s3.NewFromConfig(awsCfg), cfg.SnapshotBucket, cfg.SnapshotKey)
		return snapshot.NewFetcher(source, logger), nil
	default:
		return client, nil
	}
}

func (a *app) newCoordinator() *application.Coordinator {
	return application.NewCoordinator(
		a.fetcher,
		a.sessions.State(),
		application.WithLogger(a.logger),
		application.WithMeterProvider(a.telemetry.MeterProvider),
		application.WithTracerProvider(a.telemetry.TracerProvider),
	)
}
