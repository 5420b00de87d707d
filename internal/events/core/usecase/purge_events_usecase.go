package usecase

import (
	"context"
	"errors"
	"time"

	"kb-analytics-service/internal/events/core/ports"

	"go.uber.org/zap"
)

var ErrInvalidRetention = errors.New("retention must be at least one day")

// PurgeEventsUseCase deletes events older than the retention window.
type PurgeEventsUseCase struct {
	repo          ports.EventRepositoryPort
	retentionDays int
	log           *zap.Logger
}

func NewPurgeEventsUseCase(repo ports.EventRepositoryPort, retentionDays int, log *zap.Logger) *PurgeEventsUseCase {
	return &PurgeEventsUseCase{repo: repo, retentionDays: retentionDays, log: log}
}

func (uc *PurgeEventsUseCase) Execute(ctx context.Context, now time.Time) (int64, error) {
	if uc.retentionDays < 1 {
		return 0, ErrInvalidRetention
	}

	cutoff := now.UTC().AddDate(0, 0, -uc.retentionDays)
	n, err := uc.repo.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		uc.log.Error("event cleanup failed", zap.Time("cutoff", cutoff), zap.Error(err))
		return 0, err
	}

	uc.log.Info("event cleanup finished", zap.Time("cutoff", cutoff), zap.Int64("deleted", n))
	return n, nil
}
