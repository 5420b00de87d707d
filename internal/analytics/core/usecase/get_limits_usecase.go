package usecase

import "kb-analytics-service/internal/analytics/core/domain"

// GetLimitsUseCase exposes the configured usage limits.
type GetLimitsUseCase struct {
	limits domain.Limits
}

func NewGetLimitsUseCase(limits domain.Limits) *GetLimitsUseCase {
	return &GetLimitsUseCase{limits: limits}
}

func (uc *GetLimitsUseCase) Execute() domain.Limits {
	return uc.limits
}
