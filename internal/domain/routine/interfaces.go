package routine

import (
	"context"
	"time"

	"github.com/nogmois/nana-back/internal/domain/baby"
	"github.com/nogmois/nana-back/internal/domain/event"
)

// BabyReader loads a baby owned by the caller.
type BabyReader interface {
	Get(ctx context.Context, ownerID, id string) (*baby.Baby, error)
}

// EventReader reads a baby's event history.
type EventReader interface {
	// ListByTypes returns events of the given types at or after since,
	// ordered by timestamp ascending.
	ListByTypes(ctx context.Context, babyID string, types []event.Type, since time.Time) ([]event.Event, error)
	// Latest returns the most recent event of the given types or
	// repository.ErrNotFound.
	Latest(ctx context.Context, babyID string, types []event.Type) (*event.Event, error)
}

// PlanRepository stores one plan per baby and date.
type PlanRepository interface {
	GetByDate(ctx context.Context, babyID string, date time.Time) (*Plan, error)
	Upsert(ctx context.Context, plan *Plan) error
}
