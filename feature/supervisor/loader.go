package supervisor

import (
	"backend-launcher/core/control"

	"github.com/gofiber/fiber/v2"
)

// Feature wires the supervisor control surface into the feature loader.
type Feature struct {
	handler *Handler
	enabled bool
}

// NewFeature creates the control surface feature.
func NewFeature(sup *Supervisor, cfg control.Config) *Feature {
	return &Feature{
		handler: NewHandler(sup, cfg.ApiKey),
		enabled: cfg.Enabled,
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "supervisor"
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
