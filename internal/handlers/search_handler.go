package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/hr-screening/internal/models"
	"alfredoptarigan/hr-screening/internal/services"
)

type SearchHandler struct {
	similarityService services.SimilarityService
}

func NewSearchHandler(similarityService services.SimilarityService) *SearchHandler {
	return &SearchHandler{
		similarityService: similarityService,
	}
}

func (h *SearchHandler) HandleSearch(c *fiber.Ctx) error {
	results, err := h.similarityService.FindSimilar(
		c.UserContext(),
		c.Query("q"),
		models.HistoryKind(c.Query("type")),
		c.QueryInt("limit", 0),
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"results": results,
		"count":   len(results),
	})
}
