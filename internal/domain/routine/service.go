package routine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nogmois/nana-back/internal/domain/baby"
	"github.com/nogmois/nana-back/internal/domain/event"
	"github.com/nogmois/nana-back/internal/repository"
)

// Service generates and serves daily routine plans.
//
// Regeneration reads history, projects and then upserts without a
// compare-and-swap, so two concurrent regenerations for the same baby and
// day race and the last write wins.
type Service struct {
	babies      BabyReader
	events      EventReader
	plans       PlanRepository
	logger      *slog.Logger
	now         func() time.Time
	historyDays int
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithHistoryDays sets how many days of naps feed the average.
func WithHistoryDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.historyDays = days
		}
	}
}

// NewService creates a new routine service.
func NewService(babies BabyReader, events EventReader, plans PlanRepository, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		babies:      babies,
		events:      events,
		plans:       plans,
		logger:      logger,
		now:         time.Now,
		historyDays: DefaultHistoryDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetTodayPlan returns today's stored plan while it is still valid and
// regenerates it otherwise.
func (s *Service) GetTodayPlan(ctx context.Context, ownerID, babyID string) (*Result, error) {
	if _, err := s.loadBaby(ctx, ownerID, babyID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	today := baby.Date(now)

	plan, err := s.plans.GetByDate(ctx, babyID, today)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading plan: %w", err)
	}

	if plan != nil {
		lastEnd, err := s.latest(ctx, babyID, event.TypeSleepEnd)
		if err != nil {
			return nil, err
		}
		decision := Decide(plan, lastEnd, now)
		s.logger.Debug("plan validity checked", "baby_id", babyID, "date", today.Format(DateLayout), "decision", decision.String())
		if decision == DecisionReuse {
			return &Result{
				Outcome: OutcomeReused,
				BabyID:  babyID,
				Date:    today.Format(DateLayout),
				Naps:    []Nap{{Start: plan.NapStart.UTC(), End: plan.NapEnd.UTC()}},
				Feeds:   []time.Time{plan.FeedTime.UTC()},
			}, nil
		}
	}

	return s.GeneratePlan(ctx, ownerID, babyID)
}

// GeneratePlan projects today's routine from the latest sleep event and
// stores its first slot.
func (s *Service) GeneratePlan(ctx context.Context, ownerID, babyID string) (*Result, error) {
	b, err := s.loadBaby(ctx, ownerID, babyID)
	if err != nil {
		return nil, err
	}

	anchorEvent, err := s.latest(ctx, babyID, event.SleepTypes...)
	if err != nil {
		return nil, err
	}
	if anchorEvent == nil {
		return nil, ErrNoSleepData
	}

	now := s.now().UTC()
	naps, err := s.HistoricalNaps(ctx, babyID, now)
	if err != nil {
		return nil, err
	}

	ageDays := b.AgeInDays(now)
	avgNap := AverageNapMinutes(naps, ageDays)
	napsCount := NapsPerDay(ageDays)

	anchor := anchorEvent.Timestamp.UTC()
	if anchorEvent.Type == event.TypeSleepStart {
		anchor = anchor.Add(time.Duration(avgNap) * time.Minute)
	}

	routine, err := BuildDailyRoutine(ProjectInput{
		LastSleepEnd:  anchor,
		AvgNapMinutes: avgNap,
		NapsCount:     napsCount,
		AgeDays:       ageDays,
		Now:           now,
	})
	if err != nil {
		return nil, err
	}

	first := routine.Naps[0]
	plan := &Plan{
		ID:        uuid.NewString(),
		BabyID:    babyID,
		Date:      baby.Date(first.Start),
		NapStart:  first.Start,
		NapEnd:    first.End,
		FeedTime:  routine.Feeds[0],
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.plans.Upsert(ctx, plan); err != nil {
		return nil, fmt.Errorf("saving plan: %w", err)
	}

	s.logger.Info("routine generated",
		"baby_id", babyID,
		"age_days", ageDays,
		"anchor_type", anchorEvent.Type,
		"avg_nap_minutes", avgNap,
		"naps", napsCount,
		"history_naps", len(naps),
	)

	return &Result{
		Outcome: OutcomeRegenerated,
		BabyID:  babyID,
		Date:    baby.Date(now).Format(DateLayout),
		Naps:    routine.Naps,
		Feeds:   routine.Feeds,
	}, nil
}

// HistoricalNaps rebuilds the naps recorded over the history window ending at now.
func (s *Service) HistoricalNaps(ctx context.Context, babyID string, now time.Time) ([]NapInterval, error) {
	since := now.UTC().AddDate(0, 0, -s.historyDays)
	events, err := s.events.ListByTypes(ctx, babyID, event.SleepTypes, since)
	if err != nil {
		return nil, fmt.Errorf("loading sleep history: %w", err)
	}
	naps, orphans := reconstruct(events)
	if orphans > 0 {
		s.logger.Debug("skipped unmatched sleep_end events", "baby_id", babyID, "count", orphans)
	}
	return naps, nil
}

func (s *Service) loadBaby(ctx context.Context, ownerID, babyID string) (*baby.Baby, error) {
	b, err := s.babies.Get(ctx, ownerID, babyID)
	if err != nil {
		if errors.Is(err, baby.ErrBabyNotFound) || errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBabyNotFound
		}
		return nil, fmt.Errorf("loading baby: %w", err)
	}
	return b, nil
}

// latest returns nil when the baby has no event of the given types.
func (s *Service) latest(ctx context.Context, babyID string, types ...event.Type) (*event.Event, error) {
	ev, err := s.events.Latest(ctx, babyID, types)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading latest event: %w", err)
	}
	return ev, nil
}
