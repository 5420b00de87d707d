package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kb-analytics-service/internal/events/core/domain"
	"kb-analytics-service/internal/events/core/ports"
	"kb-analytics-service/internal/platform/validation"

	"github.com/google/uuid"
)

var (
	ErrInvalidEvent = errors.New("invalid event")
	ErrFutureTime   = errors.New("timestamp cannot be in the future")
)

// allowedClockSkew tolerates producers whose clocks run slightly ahead.
const allowedClockSkew = time.Minute

type StoreEventUseCase struct {
	repo ports.EventRepositoryPort
	now  func() time.Time
}

func NewStoreEventUseCase(repo ports.EventRepositoryPort) *StoreEventUseCase {
	return &StoreEventUseCase{repo: repo, now: time.Now}
}

type StoreEventInput struct {
	ID        string `json:"id" validate:"omitempty,uuid"`
	EventType string `json:"event_type" validate:"required,max=128"`
	Metadata  string `json:"metadata"`
	// Timestamp is optional; zero means "now".
	Timestamp time.Time `json:"timestamp"`
}

// Execute stores one event. A caller-supplied id makes the call idempotent:
// replaying it reports created=false.
func (uc *StoreEventUseCase) Execute(ctx context.Context, in StoreEventInput) (bool, error) {
	now := uc.now().UTC()
	if err := uc.validateInput(in, now); err != nil {
		return false, err
	}

	e := toDomainEvent(in, now)

	created, err := uc.repo.InsertEvent(ctx, e)
	if err != nil {
		return false, err
	}

	return created, nil
}

func toDomainEvent(in StoreEventInput, now time.Time) *domain.Event {
	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}
	eventTime := in.Timestamp.UTC()
	if in.Timestamp.IsZero() {
		eventTime = now
	}
	return &domain.Event{
		ID:        id,
		EventType: in.EventType,
		Metadata:  in.Metadata,
		EventTime: eventTime,
	}
}

type BulkCreateEventsInput struct {
	Events []StoreEventInput
}

type BulkCreateEventsResult struct {
	Created    int
	Duplicates int
}

// BulkCreateEvents validates every event before storing any of them.
func (uc *StoreEventUseCase) BulkCreateEvents(ctx context.Context, in BulkCreateEventsInput) (BulkCreateEventsResult, error) {
	var res BulkCreateEventsResult

	now := uc.now().UTC()
	for i, ev := range in.Events {
		if err := uc.validateInput(ev, now); err != nil {
			return res, fmt.Errorf("event %d: %w", i, err)
		}
	}

	for _, ev := range in.Events {
		ok, err := uc.repo.InsertEvent(ctx, toDomainEvent(ev, now))
		if err != nil {
			return res, err
		}

		if ok {
			res.Created++
		} else {
			res.Duplicates++
		}
	}

	return res, nil
}

func (uc *StoreEventUseCase) validateInput(in StoreEventInput, now time.Time) error {
	if err := validation.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	if in.Timestamp.After(now.Add(allowedClockSkew)) {
		return ErrFutureTime
	}

	return nil
}
