package domain

import "time"

// Event is a single domain event as delivered by the event source.
// The engine only reads it.
type Event struct {
	ID        string
	EventType string
	Timestamp time.Time
	Metadata  string // opaque JSON
}

type TimeFrame string

const (
	TimeFrameToday TimeFrame = "today"
	TimeFrameWeek  TimeFrame = "week"
	TimeFrameMonth TimeFrame = "month"
	TimeFrameTotal TimeFrame = "total"
)

// Range is a closed interval, Start <= End.
type Range struct {
	Start time.Time
	End   time.Time
}

type Granularity string

const (
	Hourly Granularity = "hour"
	Daily  Granularity = "day"
)

type Category int

const (
	Unclassified Category = iota
	ChatCompleted
	MailSensitive
	MailAuto
	FeedbackPositive
	FeedbackNegative
	FeedbackOther
)

func (c Category) String() string {
	switch c {
	case ChatCompleted:
		return "chat_completed"
	case MailSensitive:
		return "mail_sensitive"
	case MailAuto:
		return "mail_auto"
	case FeedbackPositive:
		return "feedback_positive"
	case FeedbackNegative:
		return "feedback_negative"
	case FeedbackOther:
		return "feedback_other"
	default:
		return "unclassified"
	}
}

// UsageCategories are the categories drawn as line chart series, in order.
var UsageCategories = []Category{ChatCompleted, MailSensitive, MailAuto}

// Bucket is one time slot of the line chart.
type Bucket struct {
	Key   string
	Label string
	Start time.Time
}

type Series struct {
	Name        string
	Category    Category
	Values      []int
	StrokeColor string
	FillColor   string
}

type LineChart struct {
	Granularity Granularity
	Labels      []string
	Series      []Series
}

type PieChart struct {
	Labels [2]string
	Values [2]int
	Colors [2]string
}

type Summary struct {
	TotalEvents      int
	ChatCount        int
	MailSensitive    int
	MailAuto         int
	FeedbackTotal    int
	PositiveFeedback int
	NegativeFeedback int
	PositivePercent  int
	Unclassified     int
}

// FeedbackRow is one line of the feedback log table.
type FeedbackRow struct {
	Date     string
	Kind     string
	Question string
	Answer   string
}

type QaRow struct {
	ID           string
	Date         string
	Question     string
	Answer       string
	StudyProgram string
}

type Limits struct {
	Total int
	Chat  int
	Mail  int
}

// Dashboard is the full output of one aggregation pass.
type Dashboard struct {
	TimeFrame   TimeFrame
	Range       *Range // nil when the range could not be resolved
	Summary     Summary
	Line        *LineChart // nil when there is nothing to draw
	Pie         PieChart
	Feedback    []FeedbackRow
	GeneratedAt time.Time
}
