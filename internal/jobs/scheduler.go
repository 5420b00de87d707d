// Package jobs runs the service's periodic maintenance on cron schedules.
package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// jobTimeout bounds a single run so a stuck database call cannot pile up runs.
const jobTimeout = 2 * time.Minute

type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context) error
}

type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

func NewScheduler(loc *time.Location, log *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		log:     log,
		entries: map[string]cron.EntryID{},
	}
}

// Add registers j. An empty schedule disables the job.
func (s *Scheduler) Add(j Job) error {
	if j.Schedule == "" {
		s.log.Info("job disabled", zap.String("job", j.Name))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[j.Name]; exists {
		return fmt.Errorf("job %q already registered", j.Name)
	}

	id, err := s.cron.AddFunc(j.Schedule, func() { s.run(j) })
	if err != nil {
		return fmt.Errorf("schedule job %q: %w", j.Name, err)
	}
	s.entries[j.Name] = id
	return nil
}

// Next reports when the named job runs next. ok is false for unknown jobs.
func (s *Scheduler) Next(name string) (next time.Time, ok bool) {
	s.mu.Lock()
	id, exists := s.entries[name]
	s.mu.Unlock()
	if !exists {
		return time.Time{}, false
	}
	return s.cron.Entry(id).Schedule.Next(time.Now()), true
}

func (s *Scheduler) run(j Job) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	if err := j.Run(ctx); err != nil {
		s.log.Error("job failed", zap.String("job", j.Name), zap.Error(err))
		return
	}
	s.log.Debug("job finished", zap.String("job", j.Name), zap.Duration("took", time.Since(start)))
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs, or for ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Register ties the scheduler to the application lifecycle.
func Register(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			return nil
		},
		OnStop: s.Stop,
	})
}
