package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/nogmois/nana-back/internal/domain/baby"
	"github.com/nogmois/nana-back/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestBabyRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewBabyRepository(db)

	weight := 3200
	b := &baby.Baby{
		ID:               "b1",
		OwnerID:          "owner1",
		Name:             "Ana",
		BirthDate:        time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		BirthWeightGrams: &weight,
		Gender:           "female",
		CreatedAt:        time.Date(2026, 2, 12, 9, 30, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.Get(ctx, "owner1", "b1")
	require.NoError(t, err)
	require.Equal(t, "Ana", got.Name)
	require.True(t, got.BirthDate.Equal(b.BirthDate))
	require.True(t, got.CreatedAt.Equal(b.CreatedAt))
	require.NotNil(t, got.BirthWeightGrams)
	require.Equal(t, 3200, *got.BirthWeightGrams)

	require.ErrorIs(t, repo.Create(ctx, b), repository.ErrConflict)
}

func TestBabyRepository_OwnerIsolation(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertBaby(t, db, "b1", "owner1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	insertBaby(t, db, "b2", "owner2", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	repo := NewBabyRepository(db)
	_, err := repo.Get(ctx, "owner2", "b1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	list, err := repo.ListByOwner(ctx, "owner1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "b1", list[0].ID)
	require.Nil(t, list[0].BirthWeightGrams)
}
