package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nogmois/nana-back/internal/domain/routine"
	"github.com/nogmois/nana-back/internal/repository"
)

// PlanRepository implements routine.PlanRepository for SQLite
type PlanRepository struct {
	db *DB
}

// NewPlanRepository creates a new PlanRepository
func NewPlanRepository(db *DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// GetByDate retrieves the plan stored for a baby and UTC date
func (r *PlanRepository) GetByDate(ctx context.Context, babyID string, date time.Time) (*routine.Plan, error) {
	query := `
		SELECT id, baby_id, date, nap_start, nap_end, feed_time, created_at, updated_at
		FROM routine_plans
		WHERE baby_id = ? AND date = ?
	`

	var (
		plan                        routine.Plan
		day, napStart, napEnd, feed string
		createdAt, updatedAt        string
	)
	err := r.db.QueryRowContext(ctx, query, babyID, formatDate(date)).Scan(
		&plan.ID,
		&plan.BabyID,
		&day,
		&napStart,
		&napEnd,
		&feed,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	if plan.Date, err = parseDate(day); err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}
	for _, f := range []struct {
		dst *time.Time
		src string
	}{
		{&plan.NapStart, napStart},
		{&plan.NapEnd, napEnd},
		{&plan.FeedTime, feed},
		{&plan.CreatedAt, createdAt},
		{&plan.UpdatedAt, updatedAt},
	} {
		if *f.dst, err = parseTime(f.src); err != nil {
			return nil, fmt.Errorf("parse plan time: %w", err)
		}
	}

	return &plan, nil
}

// Upsert inserts the plan or overwrites the three slot timestamps of the
// existing plan for the same baby and date. The stored ID and creation time
// are written back into plan.
func (r *PlanRepository) Upsert(ctx context.Context, plan *routine.Plan) error {
	query := `
		INSERT INTO routine_plans (id, baby_id, date, nap_start, nap_end, feed_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (baby_id, date) DO UPDATE SET
			nap_start = excluded.nap_start,
			nap_end = excluded.nap_end,
			feed_time = excluded.feed_time,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`

	var id, createdAt string
	err := r.db.QueryRowContext(ctx, query,
		plan.ID,
		plan.BabyID,
		formatDate(plan.Date),
		formatTime(plan.NapStart),
		formatTime(plan.NapEnd),
		formatTime(plan.FeedTime),
		formatTime(plan.CreatedAt),
		formatTime(plan.UpdatedAt),
	).Scan(&id, &createdAt)
	if isForeignKeyViolation(err) {
		return repository.ErrForeignKeyViolation
	}
	if err != nil {
		return fmt.Errorf("failed to upsert plan: %w", err)
	}

	plan.ID = id
	if plan.CreatedAt, err = parseTime(createdAt); err != nil {
		return fmt.Errorf("parse created_at: %w", err)
	}
	return nil
}
