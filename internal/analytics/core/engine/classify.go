package engine

import (
	"strings"

	"kb-analytics-service/internal/analytics/core/domain"
)

// Classified is the result of a single classification pass. The sublists
// share the input's Event values but never the input slice itself.
type Classified struct {
	Total      int
	ByCategory map[domain.Category][]domain.Event
	// Feedback holds every event carrying the feedback marker, in input order.
	Feedback []domain.Event
	// Usage holds chat and mail events, in input order.
	Usage []domain.Event
}

func CategoryOf(eventType string) domain.Category {
	switch eventType {
	case ChatEvent:
		return domain.ChatCompleted
	case MailSensitive:
		return domain.MailSensitive
	case MailAuto:
		return domain.MailAuto
	case FeedbackPositiveEvt:
		return domain.FeedbackPositive
	case FeedbackNegativeEvt:
		return domain.FeedbackNegative
	}
	if strings.Contains(eventType, FeedbackMarker) {
		return domain.FeedbackOther
	}
	return domain.Unclassified
}

func isFeedback(c domain.Category) bool {
	return c == domain.FeedbackPositive || c == domain.FeedbackNegative || c == domain.FeedbackOther
}

func isUsage(c domain.Category) bool {
	return c == domain.ChatCompleted || c == domain.MailSensitive || c == domain.MailAuto
}

func Classify(events []domain.Event) Classified {
	out := Classified{
		Total:      len(events),
		ByCategory: make(map[domain.Category][]domain.Event),
	}
	for _, e := range events {
		c := CategoryOf(e.EventType)
		out.ByCategory[c] = append(out.ByCategory[c], e)
		switch {
		case isFeedback(c):
			out.Feedback = append(out.Feedback, e)
		case isUsage(c):
			out.Usage = append(out.Usage, e)
		}
	}
	return out
}

func (c Classified) Count(cat domain.Category) int { return len(c.ByCategory[cat]) }
