package ports

import (
	"context"

	"kb-analytics-service/internal/metrics/core/domain"
)

type MetricsFilter struct {
	EventTypes []string // optional, empty means all
	From       int64
	To         int64
	GroupBy    string // "", "event_type", "time"; "category" is folded in the use case
	Interval   string // "hour" / "day" (GroupBy = "time" required)
}

type MetricsReaderPort interface {
	QueryMetrics(ctx context.Context, f MetricsFilter) (*domain.AggregatedMetrics, error)
}
