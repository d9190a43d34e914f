package baby

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nogmois/nana-back/internal/repository"
)

var validate = validator.New()

// Service handles baby registry operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new baby service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// CreateRequest defines baby creation inputs.
type CreateRequest struct {
	Name             string    `json:"name" validate:"required"`
	BirthDate        time.Time `json:"birth_date" validate:"required"`
	BirthWeightGrams *int      `json:"birth_weight_grams,omitempty" validate:"omitempty,gt=0"`
	Gender           string    `json:"gender" validate:"required,max=6"`
}

// Create registers a baby for the owner. Birth dates in the future are
// rejected so that ages are never negative.
func (s *Service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Baby, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if ownerID == "" {
		return nil, ErrInvalidInput
	}
	birth := Date(req.BirthDate)
	if birth.After(Date(s.now())) {
		return nil, fmt.Errorf("%w: birth date is in the future", ErrInvalidInput)
	}

	b := &Baby{
		ID:               uuid.NewString(),
		OwnerID:          ownerID,
		Name:             req.Name,
		BirthDate:        birth,
		BirthWeightGrams: req.BirthWeightGrams,
		Gender:           req.Gender,
		CreatedAt:        s.now().UTC(),
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("creating baby: %w", err)
	}
	s.logger.Info("baby registered", "baby_id", b.ID, "owner_id", ownerID)
	return b, nil
}

// Get fetches a baby owned by ownerID. A baby owned by someone else is
// reported exactly like a missing one.
func (s *Service) Get(ctx context.Context, ownerID, id string) (*Baby, error) {
	b, err := s.repo.Get(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBabyNotFound
		}
		return nil, fmt.Errorf("getting baby: %w", err)
	}
	return b, nil
}

// List returns the owner's babies.
func (s *Service) List(ctx context.Context, ownerID string) ([]Baby, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}
