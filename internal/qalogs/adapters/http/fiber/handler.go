package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	analyticsdomain "kb-analytics-service/internal/analytics/core/domain"
	"kb-analytics-service/internal/platform/isotime"
	"kb-analytics-service/internal/qalogs/core/domain"
	"kb-analytics-service/internal/qalogs/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type RecordQaLogUseCase interface {
	Execute(ctx context.Context, in usecase.RecordQaLogInput) (*domain.QaLog, error)
}

type ListQaLogsUseCase interface {
	Execute(ctx context.Context, orgID int64) ([]analyticsdomain.QaRow, error)
}

type QaLogHandler struct {
	recordUC RecordQaLogUseCase
	listUC   ListQaLogsUseCase
}

func NewQaLogHandler(recordUC RecordQaLogUseCase, listUC ListQaLogsUseCase) *QaLogHandler {
	return &QaLogHandler{recordUC: recordUC, listUC: listUC}
}

func (h *QaLogHandler) Register(r fiber.Router) {
	r.Post("/qa-logs", h.CreateQaLog)
	r.Get("/qa-logs", h.ListQaLogs)
}

// CreateQaLog godoc
// @Summary Record an answered question
// @Tags QA Logs
// @Accept json
// @Produce json
// @Param request body CreateQaLogRequest true "QA log payload"
// @Success 201 {object} CreateQaLogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /qa-logs [post]
func (h *QaLogHandler) CreateQaLog(c *fiber.Ctx) error {
	var req CreateQaLogRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	l, err := h.recordUC.Execute(c.UserContext(), usecase.RecordQaLogInput{
		Question:     req.Question,
		Answer:       req.Answer,
		StudyProgram: req.StudyProgram,
		OrgID:        req.OrgID,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidQaLog) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_qa_log",
				Message: err.Error(),
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}

	return c.Status(http.StatusCreated).JSON(CreateQaLogResponse{
		ID:        l.ID,
		CreatedAt: isotime.Format(l.CreatedAt),
	})
}

// ListQaLogs godoc
// @Summary List QA logs
// @Description Returns QA logs newest first with dates formatted in the display locale
// @Tags QA Logs
// @Produce json
// @Param org_id query int false "Only logs of this organisation"
// @Success 200 {array} QaLogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /qa-logs [get]
func (h *QaLogHandler) ListQaLogs(c *fiber.Ctx) error {
	var orgID int64
	if raw := c.Query("org_id", ""); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_query",
				Message: "org_id must be a non-negative integer",
			})
		}
		orgID = v
	}

	rows, err := h.listUC.Execute(c.UserContext(), orgID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}

	resp := make([]QaLogResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, QaLogResponse{
			ID:           r.ID,
			Date:         r.Date,
			Question:     r.Question,
			Answer:       r.Answer,
			StudyProgram: r.StudyProgram,
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}
