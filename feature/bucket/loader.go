package bucket

import (
	"context"
	"time"

	"dev-launcher/core/loader"
	"dev-launcher/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// checkTimeout bounds the bucket existence check done at load time.
const checkTimeout = 10 * time.Second

// ClientFactory creates the storage client on first use, so launches that do
// not serve a bucket never touch storage configuration.
type ClientFactory func() (storage.Client, error)

// Feature implements the loader.Feature interface.
type Feature struct {
	newClient     ClientFactory
	defaultBucket string
	logger        *zap.Logger
}

// NewFeature creates a new bucket feature.
func NewFeature(newClient ClientFactory, defaultBucket string, logger *zap.Logger) *Feature {
	return &Feature{newClient: newClient, defaultBucket: defaultBucket, logger: logger}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "bucket"
}

// Load connects to storage, checks the bucket and registers the routes.
func (f *Feature) Load(ctx context.Context, router fiber.Router, mount loader.Mount) error {
	name := mount.Target
	if name == "" {
		name = f.defaultBucket
	}

	client, err := f.newClient()
	if err != nil {
		return err
	}

	svc := NewService(client, name, f.logger)

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	if err := svc.Check(ctx); err != nil {
		return err
	}

	NewHandler(svc, mount.Development()).RegisterRoutes(router)
	f.logger.Info("Serving bucket", zap.String("bucket", name))
	return nil
}
