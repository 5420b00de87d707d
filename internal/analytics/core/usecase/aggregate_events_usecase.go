package usecase

import (
	"context"
	"time"

	"kb-analytics-service/internal/analytics/core/domain"
	"kb-analytics-service/internal/analytics/core/engine"
)

type AggregateInput struct {
	TimeFrame domain.TimeFrame
	Now       time.Time
	Events    []domain.Event
}

// AggregateEventsUseCase runs the engine over caller-supplied events.
type AggregateEventsUseCase struct {
	opts engine.Options
	now  func() time.Time
}

func NewAggregateEventsUseCase(opts engine.Options) *AggregateEventsUseCase {
	return &AggregateEventsUseCase{opts: opts, now: time.Now}
}

func (uc *AggregateEventsUseCase) Execute(_ context.Context, in AggregateInput) (domain.Dashboard, error) {
	now := in.Now
	if now.IsZero() {
		now = uc.now()
	}
	return engine.Build(in.Events, in.TimeFrame, now, uc.opts)
}
