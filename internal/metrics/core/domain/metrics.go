package domain

// Supported group_by values.
const (
	GroupByNone      = ""
	GroupByEventType = "event_type"
	GroupByCategory  = "category"
	GroupByTime      = "time"
)

type AggregatedMetrics struct {
	EventTypes []string
	From       int64
	To         int64
	TotalCount int64
	GroupBy    string
	Interval   string
	Groups     []MetricsGroup
}

// MetricsGroup is one row of a grouped result. Key is the event type, the
// category name or the RFC 3339 bucket start, depending on GroupBy.
type MetricsGroup struct {
	Key        string
	TotalCount int64
}
