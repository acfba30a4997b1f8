package mentions

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	cfg     Config
	service *Service
	handler *Handler
}

// NewFeature creates the mentions feature over the given scanners.
func NewFeature(cfg Config, scanners []Scanner, logger *zap.Logger) *Feature {
	svc := NewService(scanners, logger)
	return &Feature{
		cfg:     cfg,
		service: svc,
		handler: NewHandler(svc),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "mentions"
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
