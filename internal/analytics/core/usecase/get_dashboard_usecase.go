package usecase

import (
	"context"
	"fmt"
	"time"

	"kb-analytics-service/internal/analytics/core/domain"
	"kb-analytics-service/internal/analytics/core/engine"
	"kb-analytics-service/internal/analytics/core/ports"

	"go.uber.org/zap"
)

type GetDashboardInput struct {
	TimeFrame domain.TimeFrame
	// Now is optional; zero means the current time.
	Now time.Time
}

// GetDashboardUseCase loads events from the source and runs one aggregation
// pass. Loading happens in two phases: the events are fetched over the
// provisional window for the timeframe and, for total, the displayed range is
// then derived from the fetched data.
type GetDashboardUseCase struct {
	source ports.EventSource
	opts   engine.Options
	now    func() time.Time
	log    *zap.Logger
}

func NewGetDashboardUseCase(source ports.EventSource, opts engine.Options, log *zap.Logger) *GetDashboardUseCase {
	return &GetDashboardUseCase{source: source, opts: opts, now: time.Now, log: log}
}

func (uc *GetDashboardUseCase) Execute(ctx context.Context, in GetDashboardInput) (domain.Dashboard, error) {
	now := in.Now
	if now.IsZero() {
		now = uc.now()
	}

	window, err := engine.FetchWindow(in.TimeFrame, now, uc.opts.Location)
	if err != nil {
		return domain.Dashboard{}, err
	}

	events, err := uc.source.ListEvents(ctx, window.Start, window.End)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("fetch events: %w", err)
	}

	d, err := engine.Build(events, in.TimeFrame, now, uc.opts)
	if err != nil {
		return domain.Dashboard{}, err
	}

	uc.log.Debug("dashboard built",
		zap.String("timeframe", string(in.TimeFrame)),
		zap.Time("fetch_from", window.Start),
		zap.Time("fetch_to", window.End),
		zap.Int("events", len(events)),
		zap.Bool("has_range", d.Range != nil),
	)

	return d, nil
}
