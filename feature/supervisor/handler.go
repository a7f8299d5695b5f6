package supervisor

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler serves the supervisor control surface.
type Handler struct {
	sup    *Supervisor
	apiKey string
}

// NewHandler creates a new HTTP handler. An empty apiKey disables
// authentication.
func NewHandler(sup *Supervisor, apiKey string) *Handler {
	return &Handler{sup: sup, apiKey: apiKey}
}

// RegisterRoutes registers the control routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	if h.apiKey != "" {
		app.Use(h.requireKey)
	}
	app.Get("/healthz", h.HandleHealth)
	app.Get("/status", h.HandleStatus)
}

func (h *Handler) requireKey(c *fiber.Ctx) error {
	if c.Get("X-Api-Key") != h.apiKey {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	return c.Next()
}

// HandleHealth reports launcher liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleStatus reports the supervised child state.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	st := h.sup.Status()

	var uptime float64
	if st.State == StateRunning && !st.StartedAt.IsZero() {
		uptime = time.Since(st.StartedAt).Seconds()
	}

	return c.JSON(fiber.Map{
		"status":         st,
		"uptime_seconds": uptime,
	})
}
