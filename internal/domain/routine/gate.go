package routine

import (
	"time"

	"github.com/nogmois/nana-back/internal/domain/event"
)

// Decision tells the orchestrator what to do with a stored plan.
type Decision int

const (
	DecisionRegenerate Decision = iota
	DecisionReuse
)

func (d Decision) String() string {
	if d == DecisionReuse {
		return "reuse"
	}
	return "regenerate"
}

// Decide checks the stored plan against the latest sleep_end event. Only the
// plan's single nap is checked, not the rest of the day.
func Decide(plan *Plan, lastSleepEnd *event.Event, now time.Time) Decision {
	if plan == nil {
		return DecisionRegenerate
	}
	start := plan.NapStart.UTC()
	end := plan.NapEnd.UTC()

	if lastSleepEnd != nil {
		ts := lastSleepEnd.Timestamp.UTC()
		if !ts.Before(start) && !ts.After(end) {
			return DecisionReuse
		}
		return DecisionRegenerate
	}

	if now.UTC().Before(end) {
		return DecisionReuse
	}
	return DecisionRegenerate
}
