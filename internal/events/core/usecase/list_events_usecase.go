package usecase

import (
	"context"
	"errors"
	"time"

	"kb-analytics-service/internal/events/core/domain"
	"kb-analytics-service/internal/events/core/ports"
)

var ErrInvalidTimeRange = errors.New("invalid time range")

type ListEventsUseCase struct {
	repo ports.EventRepositoryPort
}

func NewListEventsUseCase(repo ports.EventRepositoryPort) *ListEventsUseCase {
	return &ListEventsUseCase{repo: repo}
}

// Execute returns the events in [from, to], oldest first.
func (uc *ListEventsUseCase) Execute(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	if from.IsZero() || to.IsZero() || from.After(to) {
		return nil, ErrInvalidTimeRange
	}
	return uc.repo.ListEventsBetween(ctx, from.UTC(), to.UTC())
}
