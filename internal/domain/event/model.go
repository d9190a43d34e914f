package event

import "time"

// Type identifies what a caregiver recorded.
type Type string

const (
	TypeSleepStart Type = "sleep_start"
	TypeSleepEnd   Type = "sleep_end"
	TypeFeed       Type = "feed"
	TypeDiaper     Type = "diaper"
)

// SleepTypes are the event types that bound a nap.
var SleepTypes = []Type{TypeSleepStart, TypeSleepEnd}

// Event is a single caregiver observation. Timestamps are stored in UTC.
type Event struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	BabyID    string    `json:"baby_id"`
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}
