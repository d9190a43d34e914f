package routine

import (
	"time"

	"github.com/nogmois/nana-back/internal/domain/event"
)

// DefaultHistoryDays is how far back nap history is read.
const DefaultHistoryDays = 3

// minAverageSamples is the number of naps needed before history replaces the
// age-based fallback.
const minAverageSamples = 2

// NapInterval is a nap rebuilt from a sleep_start/sleep_end pair.
type NapInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ReconstructNaps pairs sleep events into naps. events must be ordered by
// timestamp ascending. A sleep_start replaces any still-open start and a
// sleep_end without an open start is skipped.
func ReconstructNaps(events []event.Event) []NapInterval {
	naps, _ := reconstruct(events)
	return naps
}

func reconstruct(events []event.Event) ([]NapInterval, int) {
	var (
		naps    []NapInterval
		pending *time.Time
		orphans int
	)
	for i := range events {
		ev := events[i]
		switch ev.Type {
		case event.TypeSleepStart:
			ts := ev.Timestamp.UTC()
			pending = &ts
		case event.TypeSleepEnd:
			if pending == nil {
				orphans++
				continue
			}
			naps = append(naps, NapInterval{Start: *pending, End: ev.Timestamp.UTC()})
			pending = nil
		}
	}
	return naps, orphans
}

// AverageNapMinutes returns the mean nap length in whole minutes, or the
// age-based fallback when fewer than two naps are known.
func AverageNapMinutes(naps []NapInterval, ageDays int) int {
	if len(naps) < minAverageSamples {
		return NapDurationFallback(ageDays)
	}
	total := 0
	for _, nap := range naps {
		total += napMinutes(nap)
	}
	mean := total / len(naps)
	if mean <= 0 {
		return NapDurationFallback(ageDays)
	}
	return mean
}

// napMinutes keeps only the part of the duration below one day, so a nap
// longer than 24h loses its whole days.
func napMinutes(nap NapInterval) int {
	const secondsPerDay = 24 * 60 * 60
	secs := int64(nap.End.Sub(nap.Start) / time.Second)
	secs = ((secs % secondsPerDay) + secondsPerDay) % secondsPerDay
	return int(secs / 60)
}
