package baby

import "context"

// Repository provides persistence for babies.
type Repository interface {
	Create(ctx context.Context, b *Baby) error
	Get(ctx context.Context, ownerID, id string) (*Baby, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Baby, error)
}
