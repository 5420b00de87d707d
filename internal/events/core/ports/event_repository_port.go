package ports

import (
	"context"
	"time"

	"kb-analytics-service/internal/events/core/domain"
)

type EventRepositoryPort interface {
	// InsertEvent:
	//   created = true,  err = nil  -> new record
	//   created = false, err = nil  -> an event with this id already exists
	//   created = false, err != nil -> DB error
	InsertEvent(ctx context.Context, e *domain.Event) (created bool, err error)

	// ListEventsBetween returns events with from <= event_time <= to,
	// ordered by event_time ascending.
	ListEventsBetween(ctx context.Context, from, to time.Time) ([]domain.Event, error)

	// DeleteEventsBefore removes events older than cutoff and reports how
	// many rows were deleted.
	DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
