package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kb-analytics-service/internal/platform/validation"
	"kb-analytics-service/internal/qalogs/core/domain"
	"kb-analytics-service/internal/qalogs/core/ports"

	"github.com/google/uuid"
)

var ErrInvalidQaLog = errors.New("invalid qa log")

type RecordQaLogInput struct {
	Question     string `json:"question" validate:"required"`
	Answer       string `json:"answer" validate:"required"`
	StudyProgram string `json:"study_program" validate:"max=255"`
	OrgID        int64  `json:"org_id" validate:"gte=0"`
}

type RecordQaLogUseCase struct {
	repo ports.QaLogRepositoryPort
	now  func() time.Time
}

func NewRecordQaLogUseCase(repo ports.QaLogRepositoryPort) *RecordQaLogUseCase {
	return &RecordQaLogUseCase{repo: repo, now: time.Now}
}

// Execute stores the log and returns it with its generated id and creation time.
func (uc *RecordQaLogUseCase) Execute(ctx context.Context, in RecordQaLogInput) (*domain.QaLog, error) {
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQaLog, err)
	}

	l := &domain.QaLog{
		ID:           uuid.NewString(),
		Question:     in.Question,
		Answer:       in.Answer,
		StudyProgram: in.StudyProgram,
		OrgID:        in.OrgID,
		CreatedAt:    uc.now().UTC(),
	}

	if err := uc.repo.InsertQaLog(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}
