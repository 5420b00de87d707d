package postgres

import (
	"context"
	"fmt"
	"time"

	"kb-analytics-service/internal/metrics/core/domain"
	"kb-analytics-service/internal/metrics/core/ports"

	"github.com/lib/pq"
)

type MetricsRepository struct {
	db DB
}

func NewMetricsRepository(db DB) *MetricsRepository {
	return &MetricsRepository{db: db}
}

var _ ports.MetricsReaderPort = (*MetricsRepository)(nil)

// date_trunc units accepted for time grouping.
var truncUnits = map[string]string{
	"hour": "hour",
	"day":  "day",
}

func (r *MetricsRepository) QueryMetrics(ctx context.Context, f ports.MetricsFilter) (*domain.AggregatedMetrics, error) {
	fromTime := time.Unix(f.From, 0).UTC()
	toTime := time.Unix(f.To, 0).UTC()

	where := "event_time BETWEEN $1 AND $2"
	args := []any{fromTime, toTime}

	if len(f.EventTypes) > 0 {
		where += " AND event_type = ANY($3)"
		args = append(args, pq.Array(f.EventTypes))
	}

	result := &domain.AggregatedMetrics{
		EventTypes: f.EventTypes,
		From:       f.From,
		To:         f.To,
		GroupBy:    f.GroupBy,
		Interval:   f.Interval,
	}

	switch f.GroupBy {
	case domain.GroupByNone:
		return r.queryNoGroup(ctx, where, args, result)
	case domain.GroupByEventType:
		return r.queryGroupByEventType(ctx, where, args, result)
	case domain.GroupByTime:
		unit, ok := truncUnits[f.Interval]
		if !ok {
			return nil, fmt.Errorf("unsupported interval: %s", f.Interval)
		}
		return r.queryGroupByTime(ctx, where, args, result, unit)
	default:
		return nil, fmt.Errorf("unsupported group_by: %s", f.GroupBy)
	}
}

func (r *MetricsRepository) queryNoGroup(
	ctx context.Context,
	where string,
	args []any,
	res *domain.AggregatedMetrics,
) (*domain.AggregatedMetrics, error) {
	query := `
SELECT COUNT(*) AS total_count
FROM event_logs
WHERE ` + where

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var total int64
		if err := rows.Scan(&total); err != nil {
			return nil, err
		}
		res.TotalCount = total
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return res, nil
}

func (r *MetricsRepository) queryGroupByEventType(
	ctx context.Context,
	where string,
	args []any,
	res *domain.AggregatedMetrics,
) (*domain.AggregatedMetrics, error) {
	query := `
SELECT
    event_type,
    COUNT(*) AS total_count
FROM event_logs
WHERE ` + where + `
GROUP BY event_type
ORDER BY event_type`

	return r.collectGroups(ctx, query, args, res, func(rows RowScanner) (string, int64, error) {
		var key string
		var total int64
		err := rows.Scan(&key, &total)
		return key, total, err
	})
}

func (r *MetricsRepository) queryGroupByTime(
	ctx context.Context,
	where string,
	args []any,
	res *domain.AggregatedMetrics,
	unit string,
) (*domain.AggregatedMetrics, error) {
	query := fmt.Sprintf(`
SELECT
    date_trunc('%s', event_time) AS bucket,
    COUNT(*) AS total_count
FROM event_logs
WHERE %s
GROUP BY bucket
ORDER BY bucket
`, unit, where)

	return r.collectGroups(ctx, query, args, res, func(rows RowScanner) (string, int64, error) {
		var ts time.Time
		var total int64
		if err := rows.Scan(&ts, &total); err != nil {
			return "", 0, err
		}
		return ts.UTC().Format(time.RFC3339), total, nil
	})
}

func (r *MetricsRepository) collectGroups(
	ctx context.Context,
	query string,
	args []any,
	res *domain.AggregatedMetrics,
	scan func(RowScanner) (string, int64, error),
) (*domain.AggregatedMetrics, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.MetricsGroup
	var totalSum int64

	for rows.Next() {
		key, total, err := scan(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, domain.MetricsGroup{Key: key, TotalCount: total})
		totalSum += total
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	res.Groups = groups
	res.TotalCount = totalSum

	return res, nil
}
