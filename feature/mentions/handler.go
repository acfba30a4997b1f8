package mentions

import (
	"mention-scanner/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for mention scanning.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the mentions routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/mentions")
	group.Post("/scan", h.HandleScan)
}

// scanRequest is the body of POST /mentions/scan.
type scanRequest struct {
	Title string `json:"title"`
}

// HandleScan scans a title for entity mentions and returns the detections
// with the formatted reply body.
// @Summary Scan Title
// @Description Detect card, potion, and relic mentions in a post title.
// @Tags mentions
// @Accept json
// @Produce json
// @Param request body scanRequest true "Title to scan"
// @Success 200 {object} map[string]interface{} "Detected Mentions"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /mentions/scan [post]
func (h *Handler) HandleScan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req scanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	mentions := h.service.ScanTitle(c.Context(), req.Title)
	if len(mentions) > 0 {
		l.Info("mentions detected",
			zap.String("title", req.Title),
			zap.Int("count", len(mentions)))
	}
	if mentions == nil {
		mentions = []Mention{}
	}

	return c.JSON(fiber.Map{
		"mentions": mentions,
		"reply":    Reply(mentions),
	})
}
