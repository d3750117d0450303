package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type SessionHandler struct {
	analysisService services.AnalysisService
}

func NewSessionHandler(analysisService services.AnalysisService) *SessionHandler {
	return &SessionHandler{
		analysisService: analysisService,
	}
}

// HandleGetSession reports whether the session has an analysis in flight, so a
// client can keep its submit button disabled.
func (h *SessionHandler) HandleGetSession(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session id is required")
	}

	busy, err := h.analysisService.IsBusy(c.UserContext(), id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to read session state")
	}

	return c.JSON(models.SessionResponse{
		ID:         id,
		Processing: busy,
	})
}
