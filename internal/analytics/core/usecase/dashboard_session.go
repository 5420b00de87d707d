package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"kb-analytics-service/internal/analytics/core/domain"
	"kb-analytics-service/internal/analytics/core/engine"

	"go.uber.org/zap"
)

// ErrStaleResult is returned when a newer selection superseded the request
// before its result was ready. The result is discarded.
var ErrStaleResult = errors.New("dashboard result superseded by a newer selection")

// DashboardSession holds the currently displayed dashboard. Every Select or
// Refresh gets a generation number; only the result of the latest generation
// is applied, and starting a new one cancels the context of the previous one.
type DashboardSession struct {
	builder DashboardBuilder
	now     func() time.Time
	log     *zap.Logger

	mu         sync.Mutex
	generation uint64
	selected   domain.TimeFrame
	cancel     context.CancelFunc
	current    *domain.Dashboard
}

func NewDashboardSession(builder DashboardBuilder, initial domain.TimeFrame, log *zap.Logger) *DashboardSession {
	return &DashboardSession{
		builder:  builder,
		now:      time.Now,
		log:      log,
		selected: initial,
	}
}

// Select switches the session to tf and loads it.
func (s *DashboardSession) Select(ctx context.Context, tf domain.TimeFrame) (domain.Dashboard, error) {
	tf, err := engine.ParseTimeFrame(string(tf))
	if err != nil {
		return domain.Dashboard{}, err
	}
	return s.run(ctx, &tf)
}

// Refresh reloads the current selection.
func (s *DashboardSession) Refresh(ctx context.Context) (domain.Dashboard, error) {
	return s.run(ctx, nil)
}

// Current returns the last applied dashboard and the selected timeframe.
// ok is false until a result has been applied.
func (s *DashboardSession) Current() (d domain.Dashboard, selected domain.TimeFrame, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return domain.Dashboard{}, s.selected, false
	}
	return *s.current, s.selected, true
}

func (s *DashboardSession) run(ctx context.Context, tf *domain.TimeFrame) (domain.Dashboard, error) {
	s.mu.Lock()
	if tf != nil {
		s.selected = *tf
	}
	selected := s.selected
	s.generation++
	gen := s.generation
	if s.cancel != nil {
		s.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	defer cancel()

	d, err := s.builder.Execute(runCtx, GetDashboardInput{TimeFrame: selected, Now: s.now()})

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.log.Debug("discarding stale dashboard result",
			zap.Uint64("generation", gen),
			zap.Uint64("latest", s.generation),
			zap.String("timeframe", string(selected)),
		)
		return domain.Dashboard{}, ErrStaleResult
	}
	s.cancel = nil

	if err != nil {
		return domain.Dashboard{}, err
	}

	s.current = &d
	return d, nil
}
