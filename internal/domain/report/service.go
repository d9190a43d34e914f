package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nogmois/nana-back/internal/domain/baby"
	"github.com/nogmois/nana-back/internal/domain/event"
	"github.com/nogmois/nana-back/internal/domain/routine"
	"github.com/nogmois/nana-back/internal/repository"
)

// Service builds daily reports.
type Service struct {
	repo   Repository
	events EventReader
	babies BabyReader
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new report service.
func NewService(repo Repository, events EventReader, babies BabyReader, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, events: events, babies: babies, logger: logger, now: time.Now}
}

// Summarize totals sleep and feeds for a day of events ordered by timestamp.
// Durations are summed before converting to whole minutes.
// Naps are paired the same way the routine pairs them.
func Summarize(events []event.Event) Summary {
	var sum Summary
	var total, longest time.Duration
	for _, nap := range routine.ReconstructNaps(events) {
		d := nap.End.Sub(nap.Start)
		total += d
		if d > longest {
			longest = d
		}
	}
	sum.TotalSleepMinutes = int(total / time.Minute)
	sum.LongestNapMinutes = int(longest / time.Minute)
	for _, ev := range events {
		if ev.Type == event.TypeFeed {
			sum.TotalFeeds++
		}
	}
	return sum
}

// Generate computes and stores the report for the baby's UTC day.
func (s *Service) Generate(ctx context.Context, ownerID, babyID string, day time.Time) (*DailyReport, error) {
	if err := s.checkBaby(ctx, ownerID, babyID); err != nil {
		return nil, err
	}
	return s.generate(ctx, babyID, day)
}

// GetDaily returns the stored report for the baby's UTC day.
func (s *Service) GetDaily(ctx context.Context, ownerID, babyID string, day time.Time) (*DailyReport, error) {
	if err := s.checkBaby(ctx, ownerID, babyID); err != nil {
		return nil, err
	}
	r, err := s.repo.GetByDate(ctx, babyID, baby.Date(day))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("loading report: %w", err)
	}
	return r, nil
}

// History lists every stored report for the baby, oldest first.
func (s *Service) History(ctx context.Context, ownerID, babyID string) ([]DailyReport, error) {
	if err := s.checkBaby(ctx, ownerID, babyID); err != nil {
		return nil, err
	}
	reports, err := s.repo.ListByBaby(ctx, babyID)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	return reports, nil
}

// GenerateAll refreshes the report of every baby with events on day. Failures
// are logged per baby and do not stop the run.
func (s *Service) GenerateAll(ctx context.Context, day time.Time) (int, error) {
	from, to := dayBounds(day)
	babyIDs, err := s.events.BabiesWithEvents(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("listing babies with events: %w", err)
	}

	generated := 0
	for _, babyID := range babyIDs {
		if err := ctx.Err(); err != nil {
			return generated, err
		}
		if _, err := s.generate(ctx, babyID, day); err != nil {
			s.logger.Warn("daily report failed", "baby_id", babyID, "date", from.Format(routine.DateLayout), "error", err)
			continue
		}
		generated++
	}
	return generated, nil
}

func (s *Service) generate(ctx context.Context, babyID string, day time.Time) (*DailyReport, error) {
	from, to := dayBounds(day)
	events, err := s.events.ListBetween(ctx, babyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	sum := Summarize(events)
	now := s.now().UTC()
	r := &DailyReport{
		ID:                uuid.NewString(),
		BabyID:            babyID,
		Date:              from,
		TotalSleepMinutes: sum.TotalSleepMinutes,
		LongestNapMinutes: sum.LongestNapMinutes,
		TotalFeeds:        sum.TotalFeeds,
		Notes: fmt.Sprintf("Total sleep: %d minutes. Longest nap: %d minutes. Feeds: %d.",
			sum.TotalSleepMinutes, sum.LongestNapMinutes, sum.TotalFeeds),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, r); err != nil {
		return nil, fmt.Errorf("saving report: %w", err)
	}
	return r, nil
}

func (s *Service) checkBaby(ctx context.Context, ownerID, babyID string) error {
	if _, err := s.babies.Get(ctx, ownerID, babyID); err != nil {
		if errors.Is(err, baby.ErrBabyNotFound) || errors.Is(err, repository.ErrNotFound) {
			return ErrBabyNotFound
		}
		return fmt.Errorf("loading baby: %w", err)
	}
	return nil
}

// dayBounds returns the half-open UTC interval [from, to) covering day.
func dayBounds(day time.Time) (time.Time, time.Time) {
	from := baby.Date(day)
	return from, from.AddDate(0, 0, 1)
}
