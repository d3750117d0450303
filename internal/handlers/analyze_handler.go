package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/presenter"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const SessionHeader = "X-Session-ID"

type AnalyzeHandler struct {
	analysisService services.AnalysisService
	maxFileSize     int64
}

func NewAnalyzeHandler(analysisService services.AnalysisService, maxFileSize int64) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysisService: analysisService,
		maxFileSize:     maxFileSize,
	}
}

// HandleAnalyze handles POST /analyze with multipart fields job_description and resume.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	sessionID := sessionIDFrom(c)
	c.Set(SessionHeader, sessionID)

	input := services.AnalyzeInput{
		JobDescription: c.FormValue("job_description"),
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil && !errors.Is(err, fasthttp.ErrMissingFile) {
		return fiber.NewError(fiber.StatusBadRequest, "failed to parse multipart form")
	}

	if fileHeader != nil {
		if fileHeader.Size > h.maxFileSize {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize))
		}

		doc, err := readResume(fileHeader)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("failed to read resume: %v", err))
		}
		input.Resume = doc
	}

	result, err := h.analysisService.Analyze(c.UserContext(), sessionID, input)
	if err != nil {
		return statusError(err)
	}

	return c.JSON(models.AnalyzeResponse{
		SessionID: sessionID,
		Result:    presenter.Render(result),
		Raw:       *result,
	})
}

func readResume(fileHeader *multipart.FileHeader) (*models.ResumeDocument, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	doc := models.NewResumeDocument(fileHeader.Filename, content)
	return &doc, nil
}

// statusError maps the analysis error kinds onto HTTP status codes.
func statusError(err error) error {
	var (
		validationErr *services.ValidationError
		extractionErr *services.ExtractionError
		modelErr      *services.ModelError
	)

	switch {
	case errors.Is(err, services.ErrAnalysisInProgress):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.As(err, &validationErr):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &extractionErr):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &modelErr):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

func sessionIDFrom(c *fiber.Ctx) string {
	if id := strings.TrimSpace(c.Get(SessionHeader)); id != "" {
		return id
	}
	if id := strings.TrimSpace(c.FormValue("session_id")); id != "" {
		return id
	}
	return uuid.New().String()
}
