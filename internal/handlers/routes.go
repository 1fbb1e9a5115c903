package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups the endpoint handlers. History and Search are nil when
// their backing stores are disabled.
type Handlers struct {
	Screening *ScreeningHandler
	Feedback  *FeedbackHandler
	History   *HistoryHandler
	Search    *SearchHandler
}

func RegisterRoutes(api fiber.Router, h Handlers) {
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now(),
			"history": h.History != nil,
			"search":  h.Search != nil,
		})
	})

	api.Post("/screen-resume", h.Screening.HandleScreenResume)
	api.Post("/analyze-sentiment", h.Feedback.HandleAnalyzeSentiment)

	if h.History != nil {
		api.Get("/screenings", h.History.HandleListScreenings)
		api.Get("/screenings/export", h.History.HandleExportScreenings)
		api.Get("/screenings/:id", h.History.HandleGetScreening)
		api.Get("/feedback", h.History.HandleListFeedback)
		api.Get("/feedback/export", h.History.HandleExportFeedback)
		api.Get("/feedback/:id", h.History.HandleGetFeedback)
	}

	if h.Search != nil {
		api.Get("/search", h.Search.HandleSearch)
	}
}

// ErrorHandler renders errors that escape a handler in the shared shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return Failed(c, code, err.Error())
}
