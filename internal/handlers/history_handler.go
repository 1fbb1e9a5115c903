package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/hr-screening/internal/models"
	"alfredoptarigan/hr-screening/internal/repositories"
	"alfredoptarigan/hr-screening/internal/services"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type HistoryHandler struct {
	screeningRepo repositories.ScreeningRepository
	feedbackRepo  repositories.FeedbackRepository
	exportService services.ExportService
}

func NewHistoryHandler(
	screeningRepo repositories.ScreeningRepository,
	feedbackRepo repositories.FeedbackRepository,
	exportService services.ExportService,
) *HistoryHandler {
	return &HistoryHandler{
		screeningRepo: screeningRepo,
		feedbackRepo:  feedbackRepo,
		exportService: exportService,
	}
}

type screeningView struct {
	models.Screening
	Result json.RawMessage `json:"result"`
}

type feedbackView struct {
	models.FeedbackAnalysis
	Result json.RawMessage `json:"result"`
}

func (h *HistoryHandler) HandleListScreenings(c *fiber.Ctx) error {
	screenings, err := h.screeningRepo.List(listLimit(c))
	if err != nil {
		return respondError(c, err)
	}

	views := make([]screeningView, 0, len(screenings))
	for _, s := range screenings {
		views = append(views, screeningView{Screening: s, Result: rawResult(s.Result)})
	}

	return c.JSON(fiber.Map{
		"screenings": views,
		"count":      len(views),
	})
}

func (h *HistoryHandler) HandleGetScreening(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return Failed(c, fiber.StatusBadRequest, "Invalid screening ID format")
	}

	screening, err := h.screeningRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(screeningView{Screening: *screening, Result: rawResult(screening.Result)})
}

func (h *HistoryHandler) HandleExportScreenings(c *fiber.Ctx) error {
	screenings, err := h.screeningRepo.List(listLimit(c))
	if err != nil {
		return respondError(c, err)
	}

	data, err := h.exportService.ScreeningsWorkbook(screenings)
	if err != nil {
		return respondError(c, err)
	}

	return sendWorkbook(c, "screenings", data)
}

func (h *HistoryHandler) HandleListFeedback(c *fiber.Ctx) error {
	analyses, err := h.feedbackRepo.List(listLimit(c))
	if err != nil {
		return respondError(c, err)
	}

	views := make([]feedbackView, 0, len(analyses))
	for _, a := range analyses {
		views = append(views, feedbackView{FeedbackAnalysis: a, Result: rawResult(a.Result)})
	}

	return c.JSON(fiber.Map{
		"feedback": views,
		"count":    len(views),
	})
}

func (h *HistoryHandler) HandleGetFeedback(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return Failed(c, fiber.StatusBadRequest, "Invalid feedback ID format")
	}

	analysis, err := h.feedbackRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(feedbackView{FeedbackAnalysis: *analysis, Result: rawResult(analysis.Result)})
}

func (h *HistoryHandler) HandleExportFeedback(c *fiber.Ctx) error {
	analyses, err := h.feedbackRepo.List(listLimit(c))
	if err != nil {
		return respondError(c, err)
	}

	data, err := h.exportService.FeedbackWorkbook(analyses)
	if err != nil {
		return respondError(c, err)
	}

	return sendWorkbook(c, "feedback", data)
}

func listLimit(c *fiber.Ctx) int {
	limit := c.QueryInt("limit", defaultListLimit)
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func rawResult(result string) json.RawMessage {
	if !json.Valid([]byte(result)) {
		return json.RawMessage("null")
	}
	return json.RawMessage(result)
}

func sendWorkbook(c *fiber.Ctx, name string, data []byte) error {
	filename := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
