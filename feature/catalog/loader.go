package catalog

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	cfg     Config
	service *Service
	handler *Handler
}

// NewFeature creates the catalog feature over an assembled service.
func NewFeature(cfg Config, service *Service) *Feature {
	return &Feature{
		cfg:     cfg,
		service: service,
		handler: NewHandler(service),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "catalog"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.cfg.Enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the assembled catalog service.
func (f *Feature) Service() *Service {
	return f.service
}
