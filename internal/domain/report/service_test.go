package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nogmois/nana-back/internal/domain/baby"
	"github.com/nogmois/nana-back/internal/domain/event"
	"github.com/nogmois/nana-back/internal/domain/report"
	"github.com/nogmois/nana-back/internal/repository"
	"github.com/nogmois/nana-back/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func dayEvents() []event.Event {
	return []event.Event{
		{Type: event.TypeSleepEnd, Timestamp: at(0, 10)}, // closes a nap from the previous day
		{Type: event.TypeFeed, Timestamp: at(0, 30)},
		{Type: event.TypeSleepStart, Timestamp: at(9, 0)},
		{Type: event.TypeSleepEnd, Timestamp: at(10, 30)},
		{Type: event.TypeFeed, Timestamp: at(10, 45)},
		{Type: event.TypeSleepStart, Timestamp: at(13, 0)},
		{Type: event.TypeSleepEnd, Timestamp: at(13, 40)},
		{Type: event.TypeDiaper, Timestamp: at(14, 0)},
	}
}

func TestSummarize(t *testing.T) {
	sum := report.Summarize(dayEvents())
	require.Equal(t, report.Summary{TotalSleepMinutes: 130, LongestNapMinutes: 90, TotalFeeds: 2}, sum)
	require.Equal(t, report.Summary{}, report.Summarize(nil))
}

func TestSummarize_SumsSecondsBeforeTruncating(t *testing.T) {
	sec := func(h, m, s int) time.Time { return at(h, m).Add(time.Duration(s) * time.Second) }
	events := []event.Event{
		{Type: event.TypeSleepStart, Timestamp: at(9, 0)},
		{Type: event.TypeSleepEnd, Timestamp: sec(9, 40, 40)},
		{Type: event.TypeSleepStart, Timestamp: at(12, 0)},
		{Type: event.TypeSleepEnd, Timestamp: sec(12, 40, 30)},
		{Type: event.TypeSleepStart, Timestamp: at(15, 0)},
		{Type: event.TypeSleepEnd, Timestamp: sec(15, 20, 50)},
	}
	sum := report.Summarize(events)
	// 40m40s + 40m30s + 20m50s = 102m
	require.Equal(t, 102, sum.TotalSleepMinutes)
	require.Equal(t, 40, sum.LongestNapMinutes)
}

type fixture struct {
	repo   *mocks.ReportRepository
	events *mocks.EventRepository
	babies *mocks.BabyRepository
	svc    *report.Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:   new(mocks.ReportRepository),
		events: new(mocks.EventRepository),
		babies: new(mocks.BabyRepository),
	}
	f.svc = report.NewService(f.repo, f.events, f.babies, nil)
	return f
}

func TestGenerate_StoresReportForUTCDay(t *testing.T) {
	f := newFixture()
	f.babies.On("Get", mock.Anything, "owner-1", "baby-1").Return(&baby.Baby{ID: "baby-1"}, nil)
	f.events.On("ListBetween", mock.Anything, "baby-1", day, day.AddDate(0, 0, 1)).Return(dayEvents(), nil)
	f.repo.On("Upsert", mock.Anything, mock.MatchedBy(func(r *report.DailyReport) bool {
		return r.BabyID == "baby-1" && r.Date.Equal(day) && r.TotalFeeds == 2
	})).Return(nil)

	r, err := f.svc.Generate(context.Background(), "owner-1", "baby-1", at(18, 0))
	require.NoError(t, err)
	require.Equal(t, 130, r.TotalSleepMinutes)
	require.Contains(t, r.Notes, "Longest nap: 90 minutes")
	f.repo.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestGenerate_NoEvents(t *testing.T) {
	f := newFixture()
	f.babies.On("Get", mock.Anything, "owner-1", "baby-1").Return(&baby.Baby{ID: "baby-1"}, nil)
	f.events.On("ListBetween", mock.Anything, "baby-1", day, day.AddDate(0, 0, 1)).Return(nil, nil)

	_, err := f.svc.Generate(context.Background(), "owner-1", "baby-1", day)
	require.ErrorIs(t, err, report.ErrNoEvents)
	f.repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestGenerate_ForeignBaby(t *testing.T) {
	f := newFixture()
	f.babies.On("Get", mock.Anything, "owner-2", "baby-1").Return(nil, repository.ErrNotFound)

	_, err := f.svc.Generate(context.Background(), "owner-2", "baby-1", day)
	require.ErrorIs(t, err, report.ErrBabyNotFound)
}

func TestGetDaily_NotFound(t *testing.T) {
	f := newFixture()
	f.babies.On("Get", mock.Anything, "owner-1", "baby-1").Return(&baby.Baby{ID: "baby-1"}, nil)
	f.repo.On("GetByDate", mock.Anything, "baby-1", day).Return(nil, repository.ErrNotFound)

	_, err := f.svc.GetDaily(context.Background(), "owner-1", "baby-1", at(12, 0))
	require.ErrorIs(t, err, report.ErrReportNotFound)
}

func TestGenerateAll_ContinuesPastFailures(t *testing.T) {
	f := newFixture()
	to := day.AddDate(0, 0, 1)
	f.events.On("BabiesWithEvents", mock.Anything, day, to).Return([]string{"baby-1", "baby-2", "baby-3"}, nil)
	f.events.On("ListBetween", mock.Anything, "baby-1", day, to).Return(dayEvents(), nil)
	f.events.On("ListBetween", mock.Anything, "baby-2", day, to).Return(nil, errors.New("database is locked"))
	f.events.On("ListBetween", mock.Anything, "baby-3", day, to).Return(dayEvents()[:2], nil)
	f.repo.On("Upsert", mock.Anything, mock.AnythingOfType("*report.DailyReport")).Return(nil)

	n, err := f.svc.GenerateAll(context.Background(), at(23, 0))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	f.repo.AssertNumberOfCalls(t, "Upsert", 2)
}

func TestGenerateAll_StopsOnCancelledContext(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f.events.On("BabiesWithEvents", mock.Anything, day, day.AddDate(0, 0, 1)).Return([]string{"baby-1"}, nil)

	n, err := f.svc.GenerateAll(ctx, day)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, n)
}
