package engine

import "kb-analytics-service/internal/analytics/core/domain"

// BuildLineChart assembles one series per usage category, aligned with
// buckets. Returns nil when there are no usage events.
func BuildLineChart(g domain.Granularity, buckets []domain.Bucket, key KeyFunc, c Classified, p Palette) *domain.LineChart {
	if len(c.Usage) == 0 {
		return nil
	}

	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}

	values := AggregateCategories(c, domain.UsageCategories, buckets, key)
	series := make([]domain.Series, len(domain.UsageCategories))
	for i, cat := range domain.UsageCategories {
		st := p.style(cat)
		series[i] = domain.Series{
			Name:        st.Name,
			Category:    cat,
			Values:      values[i],
			StrokeColor: st.Color,
			FillColor:   fillColor(st.Color),
		}
	}

	return &domain.LineChart{Granularity: g, Labels: labels, Series: series}
}

func BuildPieChart(s domain.Summary, p Palette) domain.PieChart {
	return domain.PieChart{
		Labels: p.PieLabels,
		Values: [2]int{s.PositiveFeedback, s.NegativeFeedback},
		Colors: p.PieColors,
	}
}

func fillColor(stroke string) string {
	if stroke == "" {
		return ""
	}
	return stroke + fillAlpha
}
