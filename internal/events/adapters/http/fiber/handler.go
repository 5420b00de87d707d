package fiber

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"kb-analytics-service/internal/events/core/domain"
	"kb-analytics-service/internal/events/core/usecase"
	"kb-analytics-service/internal/platform/isotime"

	"github.com/gofiber/fiber/v2"
)

type StoreEventUseCase interface {
	Execute(ctx context.Context, in usecase.StoreEventInput) (bool, error)
	BulkCreateEvents(ctx context.Context, in usecase.BulkCreateEventsInput) (usecase.BulkCreateEventsResult, error)
}

type ListEventsUseCase interface {
	Execute(ctx context.Context, from, to time.Time) ([]domain.Event, error)
}

type EventHandler struct {
	storeUC StoreEventUseCase
	listUC  ListEventsUseCase
}

func NewEventHandler(storeUC StoreEventUseCase, listUC ListEventsUseCase) *EventHandler {
	return &EventHandler{storeUC: storeUC, listUC: listUC}
}

// Register mounts the event routes on r.
func (h *EventHandler) Register(r fiber.Router) {
	r.Post("/events", h.CreateEvent)
	r.Post("/events/bulk", h.BulkCreateEvents)
	r.Post("/events/timeframe", h.ListEventsInTimeframe)
}

func toStoreInput(req CreateEventRequest) (usecase.StoreEventInput, error) {
	ts, err := isotime.ParseOptional(req.Timestamp)
	if err != nil {
		return usecase.StoreEventInput{}, err
	}
	return usecase.StoreEventInput{
		ID:        req.ID,
		EventType: req.EventType,
		Metadata:  req.Metadata,
		Timestamp: ts,
	}, nil
}

func writeUseCaseError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidEvent),
		errors.Is(err, usecase.ErrFutureTime),
		errors.Is(err, usecase.ErrInvalidTimeRange),
		errors.Is(err, isotime.ErrInvalidTimestamp):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_event",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Stores a single event. A client-supplied id makes the call idempotent.
// @Tags Events
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "Event payload"
// @Success 201 {object} CreateEventResponse
// @Success 200 {object} CreateEventResponse "Duplicate event"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req CreateEventRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	input, err := toStoreInput(req)
	if err != nil {
		return writeUseCaseError(c, err)
	}

	created, err := h.storeUC.Execute(c.UserContext(), input)
	if err != nil {
		return writeUseCaseError(c, err)
	}

	if !created {
		return c.Status(http.StatusOK).JSON(CreateEventResponse{Status: "duplicate"})
	}

	return c.Status(http.StatusCreated).JSON(CreateEventResponse{Status: "created"})
}

// BulkCreateEvents godoc
// @Summary Bulk create events
// @Description Validates every event first, then stores them individually
// @Tags Events
// @Accept json
// @Produce json
// @Param request body BulkCreateEventsRequest true "Bulk event payload"
// @Success 201 {object} BulkCreateEventsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /events/bulk [post]
func (h *EventHandler) BulkCreateEvents(c *fiber.Ctx) error {
	var req BulkCreateEventsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	if len(req.Events) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "events_list_required",
		})
	}

	inputs := make([]usecase.StoreEventInput, len(req.Events))
	for i, e := range req.Events {
		in, err := toStoreInput(e)
		if err != nil {
			return writeUseCaseError(c, fmt.Errorf("event %d: %w", i, err))
		}
		inputs[i] = in
	}

	result, err := h.storeUC.BulkCreateEvents(
		c.UserContext(),
		usecase.BulkCreateEventsInput{Events: inputs},
	)
	if err != nil {
		return writeUseCaseError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(BulkCreateEventsResponse{
		Created:    result.Created,
		Duplicates: result.Duplicates,
	})
}

// ListEventsInTimeframe godoc
// @Summary List events in a timeframe
// @Description Returns the raw events between from and to, oldest first
// @Tags Events
// @Accept json
// @Produce json
// @Param request body TimeframeRequest true "ISO-8601 bounds"
// @Success 200 {array} EventResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /events/timeframe [post]
func (h *EventHandler) ListEventsInTimeframe(c *fiber.Ctx) error {
	var req TimeframeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	from, err := isotime.Parse(req.From)
	if err != nil {
		return writeUseCaseError(c, err)
	}
	to, err := isotime.Parse(req.To)
	if err != nil {
		return writeUseCaseError(c, err)
	}

	events, err := h.listUC.Execute(c.UserContext(), from, to)
	if err != nil {
		return writeUseCaseError(c, err)
	}

	resp := make([]EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, EventResponse{
			ID:        e.ID,
			EventType: e.EventType,
			Metadata:  e.Metadata,
			Timestamp: isotime.Format(e.EventTime),
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}
