package fiber

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"kb-analytics-service/internal/analytics/core/domain"
	"kb-analytics-service/internal/analytics/core/engine"
	"kb-analytics-service/internal/analytics/core/usecase"
	"kb-analytics-service/internal/platform/isotime"
	"kb-analytics-service/internal/platform/validation"

	"github.com/gofiber/fiber/v2"
)

type GetDashboardUseCase interface {
	Execute(ctx context.Context, in usecase.GetDashboardInput) (domain.Dashboard, error)
}

type AggregateEventsUseCase interface {
	Execute(ctx context.Context, in usecase.AggregateInput) (domain.Dashboard, error)
}

type ExportFeedbackUseCase interface {
	Execute(ctx context.Context, tf domain.TimeFrame, now time.Time) (usecase.FeedbackExport, error)
}

type GetLimitsUseCase interface {
	Execute() domain.Limits
}

type DashboardSession interface {
	Select(ctx context.Context, tf domain.TimeFrame) (domain.Dashboard, error)
	Current() (domain.Dashboard, domain.TimeFrame, bool)
}

type DashboardHandler struct {
	dashboardUC GetDashboardUseCase
	aggregateUC AggregateEventsUseCase
	exportUC    ExportFeedbackUseCase
	limitsUC    GetLimitsUseCase
	session     DashboardSession
	defaultTF   domain.TimeFrame
	now         func() time.Time
}

func NewDashboardHandler(
	dashboardUC GetDashboardUseCase,
	aggregateUC AggregateEventsUseCase,
	exportUC ExportFeedbackUseCase,
	limitsUC GetLimitsUseCase,
	session DashboardSession,
	defaultTF domain.TimeFrame,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardUC: dashboardUC,
		aggregateUC: aggregateUC,
		exportUC:    exportUC,
		limitsUC:    limitsUC,
		session:     session,
		defaultTF:   defaultTF,
		now:         time.Now,
	}
}

// Register mounts the dashboard and limits routes on r.
func (h *DashboardHandler) Register(r fiber.Router) {
	r.Get("/dashboard", h.GetDashboard)
	r.Post("/dashboard/aggregate", h.Aggregate)
	r.Put("/dashboard/selection", h.SelectTimeFrame)
	r.Get("/dashboard/current", h.CurrentDashboard)
	r.Get("/dashboard/feedback/export", h.ExportFeedback)
	r.Get("/limits", h.GetLimits)
}

var errValidation = errors.New("invalid request")

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, engine.ErrUnknownTimeFrame):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_timeframe",
			Message: err.Error(),
		})
	case errors.Is(err, isotime.ErrInvalidTimestamp):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_timestamp",
			Message: err.Error(),
		})
	case errors.Is(err, errValidation):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrStaleResult), errors.Is(err, context.Canceled):
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Error:   "stale_result",
			Message: usecase.ErrStaleResult.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

func (h *DashboardHandler) timeFrameQuery(c *fiber.Ctx) (domain.TimeFrame, error) {
	raw := c.Query("timeframe", "")
	if raw == "" {
		return h.defaultTF, nil
	}
	return engine.ParseTimeFrame(raw)
}

func validate(req any) error {
	if err := validation.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", errValidation, err)
	}
	return nil
}

// GetDashboard godoc
// @Summary Build the dashboard for a timeframe
// @Description Fetches events for the timeframe and returns summary, chart series and feedback rows
// @Tags Dashboard
// @Produce json
// @Param timeframe query string false "today | week | month | total"
// @Success 200 {object} DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	tf, err := h.timeFrameQuery(c)
	if err != nil {
		return writeError(c, err)
	}

	d, err := h.dashboardUC.Execute(c.UserContext(), usecase.GetDashboardInput{TimeFrame: tf})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toDashboardResponse(d))
}

// Aggregate godoc
// @Summary Aggregate supplied events
// @Description Runs the aggregation over the events in the request body without reading the store
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body AggregateRequest true "Timeframe and raw events"
// @Success 200 {object} DashboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/aggregate [post]
func (h *DashboardHandler) Aggregate(c *fiber.Ctx) error {
	var req AggregateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}
	if err := validate(req); err != nil {
		return writeError(c, err)
	}

	tf, err := engine.ParseTimeFrame(req.TimeFrame)
	if err != nil {
		return writeError(c, err)
	}
	now, err := isotime.ParseOptional(req.Now)
	if err != nil {
		return writeError(c, err)
	}

	events := make([]domain.Event, 0, len(req.Events))
	for i, e := range req.Events {
		ts, err := isotime.Parse(e.Timestamp)
		if err != nil {
			return writeError(c, fmt.Errorf("event %d: %w", i, err))
		}
		events = append(events, domain.Event{
			ID:        e.ID,
			EventType: e.EventType,
			Timestamp: ts,
			Metadata:  e.Metadata,
		})
	}

	d, err := h.aggregateUC.Execute(c.UserContext(), usecase.AggregateInput{
		TimeFrame: tf,
		Now:       now,
		Events:    events,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toDashboardResponse(d))
}

// SelectTimeFrame godoc
// @Summary Change the displayed timeframe
// @Description Loads the timeframe into the dashboard session. A request overtaken by a newer selection returns 409.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body SelectionRequest true "Timeframe"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/selection [put]
func (h *DashboardHandler) SelectTimeFrame(c *fiber.Ctx) error {
	var req SelectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}
	if err := validate(req); err != nil {
		return writeError(c, err)
	}

	d, err := h.session.Select(c.UserContext(), domain.TimeFrame(req.TimeFrame))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(SessionResponse{
		Selected:  string(d.TimeFrame),
		Dashboard: toDashboardResponse(d),
	})
}

// CurrentDashboard godoc
// @Summary Currently displayed dashboard
// @Description Returns the last dashboard applied by the session
// @Tags Dashboard
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 404 {object} ErrorResponse
// @Router /dashboard/current [get]
func (h *DashboardHandler) CurrentDashboard(c *fiber.Ctx) error {
	d, selected, ok := h.session.Current()
	if !ok {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "dashboard_not_loaded",
			Message: "no dashboard has been loaded yet for " + string(selected),
		})
	}

	return c.Status(http.StatusOK).JSON(SessionResponse{
		Selected:  string(selected),
		Dashboard: toDashboardResponse(d),
	})
}

// ExportFeedback godoc
// @Summary Download the feedback table
// @Description Returns the feedback rows of the timeframe as an XLSX workbook
// @Tags Dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param timeframe query string false "today | week | month | total"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/feedback/export [get]
func (h *DashboardHandler) ExportFeedback(c *fiber.Ctx) error {
	tf, err := h.timeFrameQuery(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.exportUC.Execute(c.UserContext(), tf, h.now())
	if err != nil {
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, out.Filename))
	return c.Status(http.StatusOK).Send(out.Body)
}

// GetLimits godoc
// @Summary Usage limits
// @Tags Dashboard
// @Produce json
// @Success 200 {object} LimitsResponse
// @Router /limits [get]
func (h *DashboardHandler) GetLimits(c *fiber.Ctx) error {
	l := h.limitsUC.Execute()
	return c.Status(http.StatusOK).JSON(LimitsResponse{
		Total: l.Total,
		Chat:  l.Chat,
		Mail:  l.Mail,
	})
}
