package usecase

import (
	"context"
	"time"

	analyticsdomain "kb-analytics-service/internal/analytics/core/domain"
	"kb-analytics-service/internal/analytics/core/engine"
	"kb-analytics-service/internal/qalogs/core/ports"
)

// ListQaLogsUseCase returns table rows with dates in the display locale.
type ListQaLogsUseCase struct {
	repo   ports.QaLogRepositoryPort
	loc    *time.Location
	locale engine.Locale
}

func NewListQaLogsUseCase(repo ports.QaLogRepositoryPort, loc *time.Location, locale engine.Locale) *ListQaLogsUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ListQaLogsUseCase{repo: repo, loc: loc, locale: locale}
}

func (uc *ListQaLogsUseCase) Execute(ctx context.Context, orgID int64) ([]analyticsdomain.QaRow, error) {
	logs, err := uc.repo.ListQaLogs(ctx, orgID)
	if err != nil {
		return nil, err
	}

	rows := make([]analyticsdomain.QaRow, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, engine.FormatQaLog(l.ID, l.CreatedAt, l.Question, l.Answer, l.StudyProgram, uc.loc, uc.locale))
	}
	return rows, nil
}
