package routine

import (
	"fmt"
	"time"
)

const (
	// feedOffset separates the end of a nap from the following feed.
	feedOffset = 15 * time.Minute
	// lateStartOffset is used when the first nap would already be in the past.
	lateStartOffset = 15 * time.Minute
)

// Nap is a projected nap slot.
type Nap struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Routine is the projected day: Naps[i] is followed by Feeds[i].
type Routine struct {
	WakeWindowMinutes int         `json:"wake_window_minutes"`
	Naps              []Nap       `json:"naps"`
	Feeds             []time.Time `json:"feeds"`
}

// ProjectInput holds the projector parameters.
type ProjectInput struct {
	LastSleepEnd  time.Time
	AvgNapMinutes int
	NapsCount     int
	AgeDays       int
	Now           time.Time
}

// BuildDailyRoutine projects NapsCount naps forward from LastSleepEnd. The
// first nap never starts before Now.
func BuildDailyRoutine(in ProjectInput) (Routine, error) {
	if in.NapsCount < 1 {
		return Routine{}, fmt.Errorf("%w: naps count must be positive, got %d", ErrInvalidInput, in.NapsCount)
	}

	wakeMinutes := WakeWindowMinutes(in.AgeDays)
	wake := time.Duration(wakeMinutes) * time.Minute
	napLength := time.Duration(in.AvgNapMinutes) * time.Minute
	now := in.Now.UTC()

	start := in.LastSleepEnd.UTC().Add(wake)
	if start.Before(now) {
		start = now.Add(lateStartOffset)
	}

	routine := Routine{
		WakeWindowMinutes: wakeMinutes,
		Naps:              make([]Nap, 0, in.NapsCount),
		Feeds:             make([]time.Time, 0, in.NapsCount),
	}
	for i := 0; i < in.NapsCount; i++ {
		end := start.Add(napLength)
		routine.Naps = append(routine.Naps, Nap{Start: start, End: end})
		routine.Feeds = append(routine.Feeds, end.Add(feedOffset))
		start = end.Add(wake)
	}
	return routine, nil
}
