package regions

import (
	"time"

	"world-merger/core/reconcile"
	"world-merger/feature/journal"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates the regions feature. It is disabled unless both
// worlds are configured.
func NewFeature(spec *reconcile.Spec, rule string, cacheTTL time.Duration, store *journal.Store, logger *zap.Logger) *Feature {
	svc := NewService(spec, rule, cacheTTL, store, logger)
	return &Feature{
		service: svc,
		handler: NewHandler(svc),
		enabled: spec.TargetDir != "" && spec.SourceDir != "",
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "regions"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
