package routine_test

import (
	"testing"
	"time"

	"github.com/nogmois/nana-back/internal/domain/event"
	"github.com/nogmois/nana-back/internal/domain/routine"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 1, hour, minute, 0, 0, time.UTC)
}

func storedPlan() *routine.Plan {
	return &routine.Plan{NapStart: at(9, 0), NapEnd: at(10, 30), FeedTime: at(10, 45)}
}

func sleepEnd(ts time.Time) *event.Event {
	return &event.Event{Type: event.TypeSleepEnd, Timestamp: ts}
}

func TestDecide_SleepEndInsideWindowReuses(t *testing.T) {
	require.Equal(t, routine.DecisionReuse, routine.Decide(storedPlan(), sleepEnd(at(10, 0)), at(12, 0)))
}

func TestDecide_WindowIsInclusive(t *testing.T) {
	require.Equal(t, routine.DecisionReuse, routine.Decide(storedPlan(), sleepEnd(at(9, 0)), at(12, 0)))
	require.Equal(t, routine.DecisionReuse, routine.Decide(storedPlan(), sleepEnd(at(10, 30)), at(12, 0)))
}

func TestDecide_SleepEndOutsideWindowRegenerates(t *testing.T) {
	require.Equal(t, routine.DecisionRegenerate, routine.Decide(storedPlan(), sleepEnd(at(11, 15)), at(11, 20)))
	require.Equal(t, routine.DecisionRegenerate, routine.Decide(storedPlan(), sleepEnd(at(8, 59)), at(9, 30)))
}

func TestDecide_NoSleepEnd(t *testing.T) {
	require.Equal(t, routine.DecisionReuse, routine.Decide(storedPlan(), nil, at(10, 0)))
	require.Equal(t, routine.DecisionRegenerate, routine.Decide(storedPlan(), nil, at(10, 30)))
	require.Equal(t, routine.DecisionRegenerate, routine.Decide(nil, nil, at(8, 0)))
}

func TestDecide_ComparesInUTC(t *testing.T) {
	sp := time.FixedZone("BRT", -3*60*60)
	// 07:00 BRT is 10:00 UTC, inside the stored window.
	require.Equal(t, routine.DecisionReuse, routine.Decide(storedPlan(), sleepEnd(at(10, 0).In(sp)), at(12, 0)))
}
