package ports

import (
	"context"
	"time"

	"kb-analytics-service/internal/analytics/core/domain"
)

// EventSource loads raw events for aggregation. Order of the returned
// events is not relied upon.
type EventSource interface {
	ListEvents(ctx context.Context, from, to time.Time) ([]domain.Event, error)
}

// FeedbackExporter renders feedback rows as a downloadable document.
type FeedbackExporter interface {
	ExportFeedback(rows []domain.FeedbackRow, localeTag string) ([]byte, error)
	ContentType() string
	FileExtension() string
}
