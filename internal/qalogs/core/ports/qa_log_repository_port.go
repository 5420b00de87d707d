package ports

import (
	"context"
	"time"

	"kb-analytics-service/internal/qalogs/core/domain"
)

type QaLogRepositoryPort interface {
	InsertQaLog(ctx context.Context, l *domain.QaLog) error

	// ListQaLogs returns logs newest first. orgID zero lists every log.
	ListQaLogs(ctx context.Context, orgID int64) ([]domain.QaLog, error)

	DeleteQaLogsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
