package handlers

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/hr-screening/internal/models"
	"alfredoptarigan/hr-screening/internal/services"
)

type ScreeningHandler struct {
	screeningService  services.ScreeningService
	allowedExtensions []string
	maxFileSize       int64
}

func NewScreeningHandler(
	screeningService services.ScreeningService,
	allowedExtensions []string,
	maxFileSize int64,
) *ScreeningHandler {
	return &ScreeningHandler{
		screeningService:  screeningService,
		allowedExtensions: allowedExtensions,
		maxFileSize:       maxFileSize,
	}
}

func (h *ScreeningHandler) HandleScreenResume(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return Failed(c, fiber.StatusBadRequest, "No resume file provided")
	}

	if file.Filename == "" {
		return Failed(c, fiber.StatusBadRequest, "No resume file selected")
	}

	jobDescription := strings.TrimSpace(c.FormValue("job_description"))
	if jobDescription == "" {
		return Failed(c, fiber.StatusBadRequest, "Job description is required")
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")
	if !slices.Contains(h.allowedExtensions, ext) {
		return Failed(c, fiber.StatusBadRequest, fmt.Sprintf(
			"File type .%s not allowed. Allowed types: %s", ext, strings.Join(h.allowedExtensions, ", ")))
	}

	if file.Size > h.maxFileSize {
		return Failed(c, fiber.StatusRequestEntityTooLarge, fmt.Sprintf(
			"File too large. Max size: %d bytes", h.maxFileSize))
	}

	f, err := file.Open()
	if err != nil {
		return Failed(c, fiber.StatusBadRequest, "Could not read uploaded file")
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, h.maxFileSize+1))
	if err != nil {
		return Failed(c, fiber.StatusBadRequest, "Could not read uploaded file")
	}
	if int64(len(content)) > h.maxFileSize {
		return Failed(c, fiber.StatusRequestEntityTooLarge, fmt.Sprintf(
			"File too large. Max size: %d bytes", h.maxFileSize))
	}

	doc := models.NewSourceDocument(filepath.Base(file.Filename), content)
	response, err := h.screeningService.Screen(c.UserContext(), doc, jobDescription)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(response)
}
