package fiber

import (
	"kb-analytics-service/internal/analytics/core/domain"
	"kb-analytics-service/internal/platform/isotime"
)

// AggregateEventRequest is one raw event supplied by the caller.
type AggregateEventRequest struct {
	ID        string `json:"id"`
	EventType string `json:"event_type" validate:"required" example:"chat_request_completed"`
	Timestamp string `json:"timestamp" validate:"required" example:"2024-01-05T14:07:00Z"`
	Metadata  string `json:"metadata"`
}

// AggregateRequest runs the engine over the supplied events
// @Description Aggregation over caller-supplied events
type AggregateRequest struct {
	TimeFrame string                  `json:"timeframe" validate:"required" example:"week"`
	Now       string                  `json:"now" example:"2024-01-10T15:30:00Z"`
	Events    []AggregateEventRequest `json:"events" validate:"dive"`
}

type SelectionRequest struct {
	TimeFrame string `json:"timeframe" validate:"required" example:"month"`
}

type RangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type SummaryResponse struct {
	TotalEvents      int `json:"total_events"`
	ChatCount        int `json:"chat_count"`
	MailSensitive    int `json:"mail_sensitive"`
	MailAuto         int `json:"mail_auto"`
	FeedbackTotal    int `json:"feedback_total"`
	PositiveFeedback int `json:"positive_feedback"`
	NegativeFeedback int `json:"negative_feedback"`
	PositivePercent  int `json:"positive_percent"`
	Unclassified     int `json:"unclassified"`
}

type SeriesResponse struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Values      []int  `json:"values"`
	StrokeColor string `json:"stroke_color"`
	FillColor   string `json:"fill_color"`
}

type LineChartResponse struct {
	Granularity string           `json:"granularity"`
	Labels      []string         `json:"labels"`
	Series      []SeriesResponse `json:"series"`
}

type PieChartResponse struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
	Colors []string `json:"colors"`
}

type FeedbackRowResponse struct {
	Date     string `json:"date"`
	Kind     string `json:"kind"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// DashboardResponse is one aggregation pass. range and line_chart are null
// when there is nothing to chart.
type DashboardResponse struct {
	TimeFrame   string                `json:"timeframe"`
	Range       *RangeResponse        `json:"range"`
	Summary     SummaryResponse       `json:"summary"`
	LineChart   *LineChartResponse    `json:"line_chart"`
	PieChart    PieChartResponse      `json:"pie_chart"`
	Feedback    []FeedbackRowResponse `json:"feedback"`
	GeneratedAt string                `json:"generated_at"`
}

type SessionResponse struct {
	Selected  string            `json:"selected"`
	Dashboard DashboardResponse `json:"dashboard"`
}

type LimitsResponse struct {
	Total int `json:"total" example:"10000"`
	Chat  int `json:"chat" example:"5000"`
	Mail  int `json:"mail" example:"5000"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_timeframe"`
	Message string `json:"message" example:"unknown timeframe"`
}

func toDashboardResponse(d domain.Dashboard) DashboardResponse {
	s := d.Summary
	resp := DashboardResponse{
		TimeFrame: string(d.TimeFrame),
		Summary: SummaryResponse{
			TotalEvents:      s.TotalEvents,
			ChatCount:        s.ChatCount,
			MailSensitive:    s.MailSensitive,
			MailAuto:         s.MailAuto,
			FeedbackTotal:    s.FeedbackTotal,
			PositiveFeedback: s.PositiveFeedback,
			NegativeFeedback: s.NegativeFeedback,
			PositivePercent:  s.PositivePercent,
			Unclassified:     s.Unclassified,
		},
		PieChart: PieChartResponse{
			Labels: d.Pie.Labels[:],
			Values: d.Pie.Values[:],
			Colors: d.Pie.Colors[:],
		},
		Feedback:    make([]FeedbackRowResponse, 0, len(d.Feedback)),
		GeneratedAt: isotime.Format(d.GeneratedAt),
	}

	if d.Range != nil {
		resp.Range = &RangeResponse{
			Start: isotime.Format(d.Range.Start),
			End:   isotime.Format(d.Range.End),
		}
	}

	if d.Line != nil {
		line := &LineChartResponse{
			Granularity: string(d.Line.Granularity),
			Labels:      d.Line.Labels,
			Series:      make([]SeriesResponse, 0, len(d.Line.Series)),
		}
		for _, sr := range d.Line.Series {
			line.Series = append(line.Series, SeriesResponse{
				Name:        sr.Name,
				Category:    sr.Category.String(),
				Values:      sr.Values,
				StrokeColor: sr.StrokeColor,
				FillColor:   sr.FillColor,
			})
		}
		resp.LineChart = line
	}

	for _, r := range d.Feedback {
		resp.Feedback = append(resp.Feedback, FeedbackRowResponse{
			Date:     r.Date,
			Kind:     r.Kind,
			Question: r.Question,
			Answer:   r.Answer,
		})
	}

	return resp
}
