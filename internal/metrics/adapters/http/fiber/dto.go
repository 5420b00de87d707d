package fiber

type MetricsGroupResponse struct {
	Key        string `json:"key"`
	TotalCount int64  `json:"total_count"`
}

type MetricsResponse struct {
	EventTypes []string               `json:"event_types,omitempty"`
	From       int64                  `json:"from"`
	To         int64                  `json:"to"`
	TotalCount int64                  `json:"total_count"`
	GroupBy    string                 `json:"group_by,omitempty"`
	Interval   string                 `json:"interval,omitempty"`
	Groups     []MetricsGroupResponse `json:"groups,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message" example:"invalid time range"`
}
