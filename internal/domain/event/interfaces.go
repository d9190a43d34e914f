package event

import (
	"context"

	"github.com/nogmois/nana-back/internal/domain/baby"
)

// Repository provides persistence for events.
type Repository interface {
	CreateBatch(ctx context.Context, events []*Event) error
	Get(ctx context.Context, ownerID, id string) (*Event, error)
	Update(ctx context.Context, ev *Event) error
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID string, opts ListOptions) ([]Event, error)
}

// BabyReader resolves babies owned by the caller.
type BabyReader interface {
	Get(ctx context.Context, ownerID, id string) (*baby.Baby, error)
}
