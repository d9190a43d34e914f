package mocks

import (
	"context"
	"time"

	"github.com/nogmois/nana-back/internal/domain/baby"
	"github.com/nogmois/nana-back/internal/domain/event"
	"github.com/nogmois/nana-back/internal/domain/report"
	"github.com/nogmois/nana-back/internal/domain/routine"
	"github.com/stretchr/testify/mock"
)

// BabyRepository is a mock for baby.Repository.
type BabyRepository struct {
	mock.Mock
}

func (m *BabyRepository) Create(ctx context.Context, b *baby.Baby) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BabyRepository) Get(ctx context.Context, ownerID, id string) (*baby.Baby, error) {
	args := m.Called(ctx, ownerID, id)
	if b, ok := args.Get(0).(*baby.Baby); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BabyRepository) ListByOwner(ctx context.Context, ownerID string) ([]baby.Baby, error) {
	args := m.Called(ctx, ownerID)
	if list, ok := args.Get(0).([]baby.Baby); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// EventRepository is a mock for event.Repository and the routine and
// report event readers.
type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) CreateBatch(ctx context.Context, events []*event.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *EventRepository) Get(ctx context.Context, ownerID, id string) (*event.Event, error) {
	args := m.Called(ctx, ownerID, id)
	if ev, ok := args.Get(0).(*event.Event); ok {
		return ev, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventRepository) Update(ctx context.Context, ev *event.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *EventRepository) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *EventRepository) List(ctx context.Context, ownerID string, opts event.ListOptions) ([]event.Event, error) {
	args := m.Called(ctx, ownerID, opts)
	if list, ok := args.Get(0).([]event.Event); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventRepository) ListByTypes(ctx context.Context, babyID string, types []event.Type, since time.Time) ([]event.Event, error) {
	args := m.Called(ctx, babyID, types, since)
	if list, ok := args.Get(0).([]event.Event); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventRepository) Latest(ctx context.Context, babyID string, types []event.Type) (*event.Event, error) {
	args := m.Called(ctx, babyID, types)
	if ev, ok := args.Get(0).(*event.Event); ok {
		return ev, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventRepository) ListBetween(ctx context.Context, babyID string, from, to time.Time) ([]event.Event, error) {
	args := m.Called(ctx, babyID, from, to)
	if list, ok := args.Get(0).([]event.Event); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EventRepository) BabiesWithEvents(ctx context.Context, from, to time.Time) ([]string, error) {
	args := m.Called(ctx, from, to)
	if list, ok := args.Get(0).([]string); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// PlanRepository is a mock for routine.PlanRepository.
type PlanRepository struct {
	mock.Mock
}

func (m *PlanRepository) GetByDate(ctx context.Context, babyID string, date time.Time) (*routine.Plan, error) {
	args := m.Called(ctx, babyID, date)
	if plan, ok := args.Get(0).(*routine.Plan); ok {
		return plan, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PlanRepository) Upsert(ctx context.Context, plan *routine.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

// ReportRepository is a mock for report.Repository.
type ReportRepository struct {
	mock.Mock
}

func (m *ReportRepository) Upsert(ctx context.Context, r *report.DailyReport) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *ReportRepository) GetByDate(ctx context.Context, babyID string, date time.Time) (*report.DailyReport, error) {
	args := m.Called(ctx, babyID, date)
	if r, ok := args.Get(0).(*report.DailyReport); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReportRepository) ListByBaby(ctx context.Context, babyID string) ([]report.DailyReport, error) {
	args := m.Called(ctx, babyID)
	if list, ok := args.Get(0).([]report.DailyReport); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
