package fiber

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"kb-analytics-service/internal/metrics/core/domain"
	"kb-analytics-service/internal/metrics/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetMetricsUseCase interface {
	Execute(ctx context.Context, in usecase.GetMetricsInput) (*domain.AggregatedMetrics, error)
}

type MetricsHandler struct {
	uc GetMetricsUseCase
}

func NewMetricsHandler(uc GetMetricsUseCase) *MetricsHandler {
	return &MetricsHandler{uc: uc}
}

// Register mounts the metrics routes on r.
func (h *MetricsHandler) Register(r fiber.Router) {
	r.Get("/metrics", h.GetMetrics)
}

// splitList reads a comma separated query value, dropping empty items.
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// unixQuery reads a required unix seconds query parameter.
func unixQuery(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid '%s' parameter", name)
	}
	return v, nil
}

func badQuery(c *fiber.Ctx, err error) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_query",
		Message: err.Error(),
	})
}

// GetMetrics godoc
// @Summary Query aggregated event counts
// @Description Returns event counts in a unix time range, optionally grouped by event type, dashboard category or time bucket
// @Tags Metrics
// @Accept json
// @Produce json
// @Param event_type query string false "Comma separated event types"
// @Param from query int true "From timestamp (unix seconds)"
// @Param to query int true "To timestamp (unix seconds)"
// @Param group_by query string false "Group by: event_type | category | time"
// @Param interval query string false "Interval: hour | day"
// @Success 200 {object} MetricsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /metrics [get]
func (h *MetricsHandler) GetMetrics(c *fiber.Ctx) error {
	from, err := unixQuery(c, "from")
	if err != nil {
		return badQuery(c, err)
	}
	to, err := unixQuery(c, "to")
	if err != nil {
		return badQuery(c, err)
	}

	in := usecase.GetMetricsInput{
		EventTypes: splitList(c.Query("event_type", "")),
		From:       from,
		To:         to,
		GroupBy:    c.Query("group_by", ""),
		Interval:   c.Query("interval", ""),
	}

	res, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidTimeRange),
			errors.Is(err, usecase.ErrInvalidGroupBy),
			errors.Is(err, usecase.ErrInvalidInterval):
			return badQuery(c, err)
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	resp := MetricsResponse{
		EventTypes: res.EventTypes,
		From:       res.From,
		To:         res.To,
		TotalCount: res.TotalCount,
		GroupBy:    res.GroupBy,
		Interval:   res.Interval,
		Groups:     make([]MetricsGroupResponse, 0, len(res.Groups)),
	}

	for _, g := range res.Groups {
		resp.Groups = append(resp.Groups, MetricsGroupResponse{
			Key:        g.Key,
			TotalCount: g.TotalCount,
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}
