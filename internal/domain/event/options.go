package event

import "time"

// ListOptions provides filtering options for listing events.
type ListOptions struct {
	BabyID string
	Types  []Type
	Since  *time.Time
	Until  *time.Time
	// Ascending orders by timestamp oldest first; the default is newest first.
	Ascending bool
	Limit     int
	Offset    int
}
