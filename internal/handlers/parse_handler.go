package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/jobfit-analyzer/internal/feedback"
	"alfredoptarigan/jobfit-analyzer/internal/metrics"
	"alfredoptarigan/jobfit-analyzer/internal/models"
)

type ParseHandler struct{}

func NewParseHandler() *ParseHandler {
	return &ParseHandler{}
}

// HandleParse handles POST /parse. It runs exactly one of the two response
// parsers on a raw reply, selected by mode.
func (h *ParseHandler) HandleParse(c *fiber.Ctx) error {
	var req models.ParseRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	metrics.ResponsesParsed.WithLabelValues(string(req.Mode)).Inc()

	if req.Mode == models.ParseModeStructured {
		return c.JSON(feedback.Parse(req.Raw))
	}

	return c.JSON(models.ParseAnswerResponse{
		Text: feedback.ExtractAnswer(req.Raw),
	})
}
