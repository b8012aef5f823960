package health

import (
	"context"

	"dev-launcher/core/loader"

	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct{}

// NewFeature creates a new health feature.
func NewFeature() *Feature {
	return &Feature{}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "health"
}

// Load registers the feature's routes.
func (f *Feature) Load(_ context.Context, router fiber.Router, mount loader.Mount) error {
	NewHandler(mount).RegisterRoutes(router)
	return nil
}
