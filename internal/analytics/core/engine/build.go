package engine

import (
	"errors"
	"time"

	"kb-analytics-service/internal/analytics/core/domain"
)

// Build runs one aggregation pass: classify, resolve the range, choose the
// granularity, sequence buckets, aggregate and assemble chart data.
//
// An empty event list under total is not an error: the dashboard comes back
// without a range and without a line chart.
func Build(events []domain.Event, tf domain.TimeFrame, now time.Time, opts Options) (domain.Dashboard, error) {
	opts = opts.withDefaults()
	loc := opts.Location

	c := Classify(events)
	summary := Summarize(c)

	d := domain.Dashboard{
		TimeFrame:   tf,
		Summary:     summary,
		Pie:         BuildPieChart(summary, opts.Palette),
		Feedback:    FormatFeedbackRows(c.Feedback, loc, opts.Locale),
		GeneratedAt: now.In(loc),
	}

	r, err := ResolveRange(tf, now, loc, events)
	switch {
	case errors.Is(err, ErrEmptyRange):
		return d, nil
	case err != nil:
		return domain.Dashboard{}, err
	}
	d.Range = &r

	g := ChooseGranularity(r, loc)
	buckets := Sequence(r, g, loc, opts.Locale)
	d.Line = BuildLineChart(g, buckets, BucketKeyFunc(r, g, loc), c, opts.Palette)

	return d, nil
}
