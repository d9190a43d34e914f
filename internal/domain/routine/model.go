package routine

import "time"

// DateLayout is the wire format for plan dates.
const DateLayout = "2006-01-02"

// Plan is the persisted first slot of a day's routine. There is at most one
// plan per baby and date.
type Plan struct {
	ID        string    `json:"id"`
	BabyID    string    `json:"baby_id"`
	Date      time.Time `json:"date"`
	NapStart  time.Time `json:"nap_start"`
	NapEnd    time.Time `json:"nap_end"`
	FeedTime  time.Time `json:"feed_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Outcome tags how a Result was produced.
type Outcome string

const (
	OutcomeReused      Outcome = "reused"
	OutcomeRegenerated Outcome = "regenerated"
)

// Result is returned by both plan operations. A reused result carries only
// the stored slot; a regenerated one carries the full projected day.
type Result struct {
	Outcome Outcome     `json:"outcome"`
	BabyID  string      `json:"baby_id"`
	Date    string      `json:"date"`
	Naps    []Nap       `json:"naps"`
	Feeds   []time.Time `json:"feeds"`
}
