package catalog

import (
	"net/url"

	"mention-scanner/core/logger"
	"mention-scanner/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/", h.HandleStatus)
	group.Get("/describe/:name", h.HandleDescribeOne)
	group.Post("/describe", h.HandleDescribeMany)
	group.Post("/refresh", h.HandleRefresh)
}

// HandleStatus returns the live entry counts per type.
// @Summary Catalog Status
// @Description Get live entry counts and last update time per entry type.
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{} "Catalog Status"
// @Router /catalog [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "live",
		"types":  h.service.Status(),
	})
}

// HandleDescribeOne returns the stored entries for a single name.
// @Summary Describe Entry
// @Description Look up one entry by name, case-insensitively.
// @Tags catalog
// @Produce json
// @Param name path string true "Entry Name (e.g. 'Snecko Eye')"
// @Success 200 {object} map[string]interface{} "Matching Entries"
// @Failure 404 {object} map[string]string "Unknown Name"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/describe/{name} [get]
func (h *Handler) HandleDescribeOne(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	name := c.Params("name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	entries, err := h.service.Describe(c.Context(), []string{name})
	if err != nil {
		l.Error("Describe failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if len(entries) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown entry: " + name,
		})
	}

	return c.JSON(fiber.Map{"entries": entries})
}

// describeRequest is the body of POST /catalog/describe.
type describeRequest struct {
	Names []string `json:"names"`
}

// HandleDescribeMany returns the stored entries for a batch of names.
// @Summary Describe Entries
// @Description Look up a batch of entries by name, case-insensitively.
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body describeRequest true "Names to look up"
// @Success 200 {object} map[string]interface{} "Matching Entries"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/describe [post]
func (h *Handler) HandleDescribeMany(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req describeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	entries, err := h.service.Describe(c.Context(), req.Names)
	if err != nil {
		l.Error("Describe failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if entries == nil {
		entries = []models.WikiEntry{}
	}
	return c.JSON(fiber.Map{"entries": entries})
}

// HandleRefresh forces a live update of every reader.
// @Summary Refresh Catalog
// @Description Force an update of every catalog reader from the wiki.
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{} "Catalog Status"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /catalog/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.Refresh(c.Context()); err != nil {
		l.Error("Catalog refresh failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status": "refreshed",
		"types":  h.service.Status(),
	})
}
