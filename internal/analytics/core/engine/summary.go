package engine

import (
	"math"

	"kb-analytics-service/internal/analytics/core/domain"
)

// PositivePercent is round(positive / max(total, 1) * 100).
func PositivePercent(positive, total int) int {
	if total < 1 {
		total = 1
	}
	return int(math.Round(float64(positive) / float64(total) * 100))
}

func Summarize(c Classified) domain.Summary {
	pos := c.Count(domain.FeedbackPositive)
	fb := len(c.Feedback)

	return domain.Summary{
		TotalEvents:      c.Total,
		ChatCount:        c.Count(domain.ChatCompleted),
		MailSensitive:    c.Count(domain.MailSensitive),
		MailAuto:         c.Count(domain.MailAuto),
		FeedbackTotal:    fb,
		PositiveFeedback: pos,
		NegativeFeedback: fb - pos,
		PositivePercent:  PositivePercent(pos, fb),
		Unclassified:     c.Count(domain.Unclassified),
	}
}
