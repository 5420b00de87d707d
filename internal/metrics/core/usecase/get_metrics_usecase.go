package usecase

import (
	"context"
	"errors"
	"sort"

	"kb-analytics-service/internal/analytics/core/engine"
	"kb-analytics-service/internal/metrics/core/domain"
	"kb-analytics-service/internal/metrics/core/ports"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrInvalidGroupBy   = errors.New("invalid group_by value")
	ErrInvalidInterval  = errors.New("invalid interval for time grouping")
)

type GetMetricsInput struct {
	EventTypes []string
	From       int64
	To         int64

	GroupBy  string // "", "event_type", "category", "time"
	Interval string // "hour" / "day" (required for group_by=time)
}

type GetMetricsUseCase struct {
	reader ports.MetricsReaderPort
}

func NewGetMetricsUseCase(reader ports.MetricsReaderPort) *GetMetricsUseCase {
	return &GetMetricsUseCase{reader: reader}
}

// Execute validates the input, queries the reader and, for group_by=category,
// folds the per-event-type counts into dashboard categories.
func (uc *GetMetricsUseCase) Execute(ctx context.Context, in GetMetricsInput) (*domain.AggregatedMetrics, error) {
	if in.From <= 0 || in.To <= 0 || in.From > in.To {
		return nil, ErrInvalidTimeRange
	}

	groupBy := in.GroupBy
	switch in.GroupBy {
	case domain.GroupByNone, domain.GroupByEventType:
	case domain.GroupByCategory:
		groupBy = domain.GroupByEventType
	case domain.GroupByTime:
		if in.Interval != "hour" && in.Interval != "day" {
			return nil, ErrInvalidInterval
		}
	default:
		return nil, ErrInvalidGroupBy
	}

	filter := ports.MetricsFilter{
		EventTypes: in.EventTypes,
		From:       in.From,
		To:         in.To,
		GroupBy:    groupBy,
		Interval:   in.Interval,
	}

	result, err := uc.reader.QueryMetrics(ctx, filter)
	if err != nil {
		return nil, err
	}

	if in.GroupBy == domain.GroupByCategory {
		result.Groups = foldByCategory(result.Groups)
		result.GroupBy = domain.GroupByCategory
	}

	return result, nil
}

func foldByCategory(groups []domain.MetricsGroup) []domain.MetricsGroup {
	counts := map[string]int64{}
	for _, g := range groups {
		counts[engine.CategoryOf(g.Key).String()] += g.TotalCount
	}

	out := make([]domain.MetricsGroup, 0, len(counts))
	for k, n := range counts {
		out = append(out, domain.MetricsGroup{Key: k, TotalCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
