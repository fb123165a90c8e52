package resources

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new resources feature.
func NewFeature(l *Loader, kinds KindSupport, logger *zap.Logger) *Feature {
	svc := NewService(l, kinds, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "resources"
}

// IsEnabled reports whether a loader is available.
func (f *Feature) IsEnabled() bool {
	return f.service.loader != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the feature's service.
func (f *Feature) Service() *Service {
	return f.service
}
