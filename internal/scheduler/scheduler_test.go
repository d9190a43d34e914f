package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type generatorMock struct {
	mock.Mock
}

func (m *generatorMock) GenerateAll(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

func TestNew_RejectsBadSchedule(t *testing.T) {
	_, err := New(new(generatorMock), "every night", nil)
	require.Error(t, err)
}

func TestRunOnce_UsesPreviousUTCDay(t *testing.T) {
	gen := new(generatorMock)
	now := time.Date(2026, 3, 1, 0, 5, 0, 0, time.UTC)
	s, err := New(gen, "5 0 * * *", nil, WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	gen.On("GenerateAll", mock.Anything, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)).Return(3, nil).Once()

	n, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, n)
	gen.AssertExpectations(t)
}

func TestRunOnce_WrapsErrors(t *testing.T) {
	gen := new(generatorMock)
	s, err := New(gen, "@daily", nil)
	require.NoError(t, err)

	boom := errors.New("database is locked")
	gen.On("GenerateAll", mock.Anything, mock.Anything).Return(0, boom)

	_, err = s.RunOnce(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestStartStop(t *testing.T) {
	s, err := New(new(generatorMock), "@daily", nil)
	require.NoError(t, err)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}
