package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/nogmois/nana-back/internal/domain/event"
	"github.com/nogmois/nana-back/internal/repository"
	"github.com/stretchr/testify/require"
)

func newEvent(id, babyID string, typ event.Type, ts time.Time) *event.Event {
	return &event.Event{
		ID:        id,
		OwnerID:   "owner1",
		BabyID:    babyID,
		Type:      typ,
		Timestamp: ts,
		CreatedAt: ts,
	}
}

func TestEventRepository_ListByTypesAndLatest(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertBaby(t, db, "b1", "owner1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	repo := NewEventRepository(db)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateBatch(ctx, []*event.Event{
		newEvent("e1", "b1", event.TypeSleepStart, base.Add(-5*24*time.Hour)),
		newEvent("e2", "b1", event.TypeSleepStart, base),
		newEvent("e3", "b1", event.TypeFeed, base.Add(30*time.Minute)),
		newEvent("e4", "b1", event.TypeSleepEnd, base.Add(time.Hour)),
	}))

	events, err := repo.ListByTypes(ctx, "b1", event.SleepTypes, base.Add(-3*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "e2", events[0].ID)
	require.Equal(t, "e4", events[1].ID)

	latest, err := repo.Latest(ctx, "b1", event.SleepTypes)
	require.NoError(t, err)
	require.Equal(t, "e4", latest.ID)
	require.True(t, latest.Timestamp.Equal(base.Add(time.Hour)))

	latestFeed, err := repo.Latest(ctx, "b1", []event.Type{event.TypeFeed})
	require.NoError(t, err)
	require.Equal(t, "e3", latestFeed.ID)

	_, err = repo.Latest(ctx, "b1", []event.Type{event.TypeDiaper})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventRepository_BatchIsAtomic(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertBaby(t, db, "b1", "owner1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	repo := NewEventRepository(db)

	ts := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	err := repo.CreateBatch(ctx, []*event.Event{
		newEvent("e1", "b1", event.TypeFeed, ts),
		newEvent("e2", "missing", event.TypeFeed, ts),
	})
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)

	events, err := repo.List(ctx, "owner1", event.ListOptions{})
	require.NoError(t, err)
	require.Len(t, events, 0)
}

func TestEventRepository_UpdateDeleteScopedToOwner(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertBaby(t, db, "b1", "owner1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	repo := NewEventRepository(db)

	ts := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateBatch(ctx, []*event.Event{newEvent("e1", "b1", event.TypeFeed, ts)}))

	_, err := repo.Get(ctx, "owner2", "e1")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "owner2", "e1"), repository.ErrNotFound)

	ev, err := repo.Get(ctx, "owner1", "e1")
	require.NoError(t, err)
	ev.Type = event.TypeSleepEnd
	ev.Timestamp = ts.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, ev))

	got, err := repo.Get(ctx, "owner1", "e1")
	require.NoError(t, err)
	require.Equal(t, event.TypeSleepEnd, got.Type)
	require.True(t, got.Timestamp.Equal(ts.Add(time.Hour)))

	require.NoError(t, repo.Delete(ctx, "owner1", "e1"))
	_, err = repo.Get(ctx, "owner1", "e1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventRepository_ListFilters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertBaby(t, db, "b1", "owner1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	insertBaby(t, db, "b2", "owner1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	repo := NewEventRepository(db)

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateBatch(ctx, []*event.Event{
		newEvent("e1", "b1", event.TypeFeed, day.Add(2*time.Hour)),
		newEvent("e2", "b1", event.TypeSleepStart, day.Add(3*time.Hour)),
		newEvent("e3", "b2", event.TypeFeed, day.Add(4*time.Hour)),
		newEvent("e4", "b1", event.TypeFeed, day.Add(26*time.Hour)),
	}))

	events, err := repo.List(ctx, "owner1", event.ListOptions{BabyID: "b1", Types: []event.Type{event.TypeFeed}})
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "e4", events[0].ID, "newest first by default")

	between, err := repo.ListBetween(ctx, "b1", day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, between, 2)
	require.Equal(t, "e1", between[0].ID)

	babies, err := repo.BabiesWithEvents(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, []string{"b1", "b2"}, babies)

	page, err := repo.List(ctx, "owner1", event.ListOptions{Ascending: true, Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "e2", page[0].ID)
}
