package jobs

import (
	"context"
	"errors"
	"time"

	"kb-analytics-service/internal/analytics/core/domain"
	"kb-analytics-service/internal/analytics/core/usecase"
)

type Purger interface {
	Execute(ctx context.Context, now time.Time) (int64, error)
}

type Refresher interface {
	Refresh(ctx context.Context) (domain.Dashboard, error)
}

func PurgeJob(name, schedule string, p Purger) Job {
	return Job{
		Name:     name,
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			_, err := p.Execute(ctx, time.Now())
			return err
		},
	}
}

// RefreshDashboardJob reloads the session's current selection. Being
// overtaken by a user selection is not a failure.
func RefreshDashboardJob(schedule string, r Refresher) Job {
	return Job{
		Name:     "dashboard-refresh",
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			_, err := r.Refresh(ctx)
			if errors.Is(err, usecase.ErrStaleResult) {
				return nil
			}
			return err
		},
	}
}
