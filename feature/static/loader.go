package static

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dev-launcher/core/loader"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DefaultDir is served when the entry point names no directory.
const DefaultDir = "."

// Feature implements the loader.Feature interface.
type Feature struct {
	logger *zap.Logger
}

// NewFeature creates a new static files feature.
func NewFeature(logger *zap.Logger) *Feature {
	return &Feature{logger: logger}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "static"
}

// Load serves the directory named by the mount target.
func (f *Feature) Load(_ context.Context, router fiber.Router, mount loader.Mount) error {
	dir := mount.Target
	if dir == "" {
		dir = DefaultDir
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("static root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("static root %s is not a directory", abs)
	}

	cfg := fiber.Static{
		Index:         "index.html",
		ByteRange:     true,
		CacheDuration: 10 * time.Second,
	}
	if mount.Development() {
		// Always serve what is on disk and let developers browse.
		cfg.Browse = true
		cfg.CacheDuration = -1
	}

	router.Static("/", abs, cfg)
	f.logger.Info("Serving static files", zap.String("dir", abs), zap.Bool("browse", cfg.Browse))
	return nil
}
