package health

import (
	"dev-launcher/core/loader"

	"github.com/gofiber/fiber/v2"
)

// Status is the body of a health response.
type Status struct {
	Status     string `json:"status"`
	Mode       string `json:"mode"`
	EntryPoint string `json:"entry_point"`
}

// Handler answers health probes.
type Handler struct {
	mount loader.Mount
}

// NewHandler creates a new HTTP handler.
func NewHandler(mount loader.Mount) *Handler {
	return &Handler{mount: mount}
}

// RegisterRoutes registers the health route.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHealth)
}

// HandleHealth reports that the server is up and what it serves.
// @Summary Health
// @Description Reports that the dev server is up, its mode and the entry point it serves.
// @Tags health
// @Produce json
// @Success 200 {object} health.Status
// @Router /healthz [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(Status{
		Status:     "ok",
		Mode:       h.mount.Mode,
		EntryPoint: h.mount.EntryPoint,
	})
}
