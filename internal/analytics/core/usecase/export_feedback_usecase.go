package usecase

import (
	"context"
	"fmt"
	"time"

	"kb-analytics-service/internal/analytics/core/domain"
	"kb-analytics-service/internal/analytics/core/ports"
)

type DashboardBuilder interface {
	Execute(ctx context.Context, in GetDashboardInput) (domain.Dashboard, error)
}

type FeedbackExport struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportFeedbackUseCase renders the feedback table of a timeframe as a file.
type ExportFeedbackUseCase struct {
	builder   DashboardBuilder
	exporter  ports.FeedbackExporter
	localeTag string
}

func NewExportFeedbackUseCase(builder DashboardBuilder, exporter ports.FeedbackExporter, localeTag string) *ExportFeedbackUseCase {
	return &ExportFeedbackUseCase{builder: builder, exporter: exporter, localeTag: localeTag}
}

func (uc *ExportFeedbackUseCase) Execute(ctx context.Context, tf domain.TimeFrame, now time.Time) (FeedbackExport, error) {
	d, err := uc.builder.Execute(ctx, GetDashboardInput{TimeFrame: tf, Now: now})
	if err != nil {
		return FeedbackExport{}, err
	}

	body, err := uc.exporter.ExportFeedback(d.Feedback, uc.localeTag)
	if err != nil {
		return FeedbackExport{}, fmt.Errorf("export feedback: %w", err)
	}

	return FeedbackExport{
		Filename:    fmt.Sprintf("feedback_%s_%s.%s", tf, d.GeneratedAt.Format("20060102_1504"), uc.exporter.FileExtension()),
		ContentType: uc.exporter.ContentType(),
		Body:        body,
	}, nil
}
