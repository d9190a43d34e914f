package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nogmois/nana-back/internal/domain/baby"
	"github.com/nogmois/nana-back/internal/repository"
)

// Service handles event log operations.
type Service struct {
	repo   Repository
	babies BabyReader
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new event service.
func NewService(repo Repository, babies BabyReader, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, babies: babies, logger: logger, now: time.Now}
}

// Record validates and stores a batch of events. Either every event is
// stored or none is.
func (s *Service) Record(ctx context.Context, ownerID string, reqs []CreateRequest) ([]Event, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: no events", ErrInvalidInput)
	}

	owned := make(map[string]bool)
	events := make([]*Event, 0, len(reqs))
	createdAt := s.now().UTC()
	for _, req := range reqs {
		if err := validateCreate(req); err != nil {
			return nil, err
		}
		if !owned[req.BabyID] {
			if err := s.checkBaby(ctx, ownerID, req.BabyID); err != nil {
				return nil, err
			}
			owned[req.BabyID] = true
		}
		events = append(events, &Event{
			ID:        uuid.NewString(),
			OwnerID:   ownerID,
			BabyID:    req.BabyID,
			Type:      req.Type,
			Timestamp: req.Timestamp.UTC(),
			CreatedAt: createdAt,
		})
	}

	if err := s.repo.CreateBatch(ctx, events); err != nil {
		return nil, fmt.Errorf("recording events: %w", err)
	}
	s.logger.Debug("events recorded", "owner_id", ownerID, "count", len(events))

	out := make([]Event, 0, len(events))
	for _, ev := range events {
		out = append(out, *ev)
	}
	return out, nil
}

// List returns the owner's events, newest first unless opts say otherwise.
func (s *Service) List(ctx context.Context, ownerID string, opts ListOptions) ([]Event, error) {
	if opts.BabyID != "" {
		if err := s.checkBaby(ctx, ownerID, opts.BabyID); err != nil {
			return nil, err
		}
	}
	events, err := s.repo.List(ctx, ownerID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

// Update replaces the type and/or timestamp of an event.
func (s *Service) Update(ctx context.Context, ownerID, id string, req UpdateRequest) (*Event, error) {
	if err := validateUpdate(req); err != nil {
		return nil, err
	}

	ev, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("loading event: %w", err)
	}

	if req.Type != nil {
		ev.Type = *req.Type
	}
	if req.Timestamp != nil {
		ev.Timestamp = req.Timestamp.UTC()
	}

	if err := s.repo.Update(ctx, ev); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("updating event: %w", err)
	}
	return ev, nil
}

// Delete removes an event owned by the caller.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("deleting event: %w", err)
	}
	return nil
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
