package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nogmois/nana-back/internal/domain/baby"
	rcron "github.com/robfig/cron/v3"
)

// ReportGenerator refreshes the daily reports of every active baby.
type ReportGenerator interface {
	GenerateAll(ctx context.Context, day time.Time) (int, error)
}

// Scheduler runs the nightly report job on a cron schedule evaluated in UTC.
type Scheduler struct {
	cron    *rcron.Cron
	reports ReportGenerator
	logger  *slog.Logger
	now     func() time.Time
	timeout time.Duration
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithTimeout bounds a single run. The default is five minutes.
func WithTimeout(d time.Duration) Option {
	return func(s *Scheduler) { s.timeout = d }
}

// New registers the report job under schedule, a five-field cron expression.
func New(reports ReportGenerator, schedule string, logger *slog.Logger, opts ...Option) (*Scheduler, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Scheduler{
		cron:    rcron.New(rcron.WithLocation(time.UTC)),
		reports: reports,
		logger:  logger,
		now:     time.Now,
		timeout: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid report schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("report scheduler started", "entries", len(s.cron.Entries()))
}

// Stop prevents new runs and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce generates the reports for the previous UTC day.
func (s *Scheduler) RunOnce(ctx context.Context) (int, error) {
	day := baby.Date(s.now()).AddDate(0, 0, -1)
	n, err := s.reports.GenerateAll(ctx, day)
	if err != nil {
		return n, fmt.Errorf("generating reports for %s: %w", day.Format("2006-01-02"), err)
	}
	return n, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("daily reports failed", "generated", n, "error", err)
		return
	}
	s.logger.Info("daily reports generated", "count", n, "duration_ms", time.Since(start).Milliseconds())
}
