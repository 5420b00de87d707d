package usecase

import (
	"context"
	"errors"
	"time"

	"kb-analytics-service/internal/qalogs/core/ports"

	"go.uber.org/zap"
)

var ErrInvalidRetention = errors.New("retention must be at least one day")

type PurgeQaLogsUseCase struct {
	repo          ports.QaLogRepositoryPort
	retentionDays int
	log           *zap.Logger
}

func NewPurgeQaLogsUseCase(repo ports.QaLogRepositoryPort, retentionDays int, log *zap.Logger) *PurgeQaLogsUseCase {
	return &PurgeQaLogsUseCase{repo: repo, retentionDays: retentionDays, log: log}
}

func (uc *PurgeQaLogsUseCase) Execute(ctx context.Context, now time.Time) (int64, error) {
	if uc.retentionDays < 1 {
		return 0, ErrInvalidRetention
	}

	cutoff := now.UTC().AddDate(0, 0, -uc.retentionDays)
	n, err := uc.repo.DeleteQaLogsBefore(ctx, cutoff)
	if err != nil {
		uc.log.Error("qa log cleanup failed", zap.Time("cutoff", cutoff), zap.Error(err))
		return 0, err
	}

	uc.log.Info("qa log cleanup finished",
		zap.Time("cutoff", cutoff),
		zap.Int("retention_days", uc.retentionDays),
		zap.Int64("deleted", n),
	)
	return n, nil
}
