package zones

import (
	"fleet-tracker/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates a new zones feature.
func NewFeature(cache *reconcile.ZoneCache, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(NewService(cache, logger))}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "zones"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
