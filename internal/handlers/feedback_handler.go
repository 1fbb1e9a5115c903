package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/hr-screening/internal/models"
	"alfredoptarigan/hr-screening/internal/services"
)

type FeedbackHandler struct {
	feedbackService services.FeedbackService
}

func NewFeedbackHandler(feedbackService services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
	}
}

func (h *FeedbackHandler) HandleAnalyzeSentiment(c *fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return Failed(c, fiber.StatusBadRequest, "No JSON data provided")
	}

	var req models.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return Failed(c, fiber.StatusBadRequest, "No JSON data provided")
	}

	response, err := h.feedbackService.Analyze(c.UserContext(), req.Feedback)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(response)
}
