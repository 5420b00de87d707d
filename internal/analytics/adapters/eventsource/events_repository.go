package eventsource

import (
	"context"
	"time"

	"kb-analytics-service/internal/analytics/core/domain"
	eventports "kb-analytics-service/internal/events/core/ports"
)

// EventsRepositorySource reads dashboard events from the events store.
type EventsRepositorySource struct {
	repo eventports.EventRepositoryPort
}

func NewEventsRepositorySource(repo eventports.EventRepositoryPort) *EventsRepositorySource {
	return &EventsRepositorySource{repo: repo}
}

func (s *EventsRepositorySource) ListEvents(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	stored, err := s.repo.ListEventsBetween(ctx, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}

	out := make([]domain.Event, 0, len(stored))
	for _, e := range stored {
		out = append(out, domain.Event{
			ID:        e.ID,
			EventType: e.EventType,
			Timestamp: e.EventTime,
			Metadata:  e.Metadata,
		})
	}
	return out, nil
}
