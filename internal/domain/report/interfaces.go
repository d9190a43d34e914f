package report

import (
	"context"
	"time"

	"github.com/nogmois/nana-back/internal/domain/baby"
	"github.com/nogmois/nana-back/internal/domain/event"
)

// Repository stores one report per baby and date.
type Repository interface {
	Upsert(ctx context.Context, r *DailyReport) error
	GetByDate(ctx context.Context, babyID string, date time.Time) (*DailyReport, error)
	ListByBaby(ctx context.Context, babyID string) ([]DailyReport, error)
}

// EventReader reads the events of a day.
type EventReader interface {
	ListBetween(ctx context.Context, babyID string, from, to time.Time) ([]event.Event, error)
	BabiesWithEvents(ctx context.Context, from, to time.Time) ([]string, error)
}

// BabyReader loads a baby owned by the caller.
type BabyReader interface {
	Get(ctx context.Context, ownerID, id string) (*baby.Baby, error)
}
