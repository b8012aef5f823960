package cmd

import (
	"context"
	"fmt"

	"dev-launcher/core/config"
	"dev-launcher/core/devserver"
	"dev-launcher/core/launcher"
	"dev-launcher/core/loader"
	"dev-launcher/core/logger"
	"dev-launcher/core/storage"
	"dev-launcher/feature/bucket"
	"dev-launcher/feature/health"
	"dev-launcher/feature/static"

	"go.uber.org/zap"
)

// configDir is where launcher.yaml and .env are looked up.
var configDir = "."

// @title dev-launcher
// @version 1.0
// @description Development server started by dev-launcher.
// @BasePath /
func runStart(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return &launcher.ConfigurationError{Err: err}
	}

	// 2. Initialize Logger
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return &launcher.ConfigurationError{Field: "LOG_LEVEL", Err: err}
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	logg.Info("dev-launcher", zap.String("version", Version))

	// 3. Register the applications the builtin server can load
	registry := newRegistry(cfg, logg)

	// 4. Launch: activate context, export configuration, serve
	l := launcher.New(devserver.NewFactory(registry, logg), logg)
	if err := l.Launch(ctx, cfg.App); err != nil {
		return err
	}
	return nil
}

func newRegistry(cfg *config.Config, logg *zap.Logger) *loader.Manager {
	mgr := loader.NewManager()
	mgr.Register(health.NewFeature())
	mgr.Register(static.NewFeature(logg))
	mgr.Register(bucket.NewFeature(func() (storage.Client, error) {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		return client, nil
	}, cfg.Storage.Bucket, logg))
	return mgr
}
