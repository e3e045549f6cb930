package wizard

import (
	"scaffold-wizard/core/generate"
	"scaffold-wizard/core/manifest"
	"scaffold-wizard/core/schema"
	"scaffold-wizard/core/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the wizard feature.
func NewFeature(schemas schema.Source, manifests manifest.Source, configs store.Store,
	driver *generate.Driver, packager generate.Packager, uploader *generate.Uploader,
	outputDir string, logger *zap.Logger) *Feature {
	svc := NewService(schemas, manifests, configs, driver, packager, uploader, outputDir, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "wizard"
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
