package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nogmois/nana-back/internal/domain/report"
	"github.com/nogmois/nana-back/internal/repository"
)

// ReportRepository implements report.Repository for SQLite
type ReportRepository struct {
	db *DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

const reportColumns = `id, baby_id, date, total_sleep_minutes, longest_nap_minutes, total_feeds, notes, created_at, updated_at`

// Upsert inserts the report or replaces the totals of the existing report
// for the same baby and date
func (r *ReportRepository) Upsert(ctx context.Context, rep *report.DailyReport) error {
	query := `
		INSERT INTO daily_reports (` + reportColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (baby_id, date) DO UPDATE SET
			total_sleep_minutes = excluded.total_sleep_minutes,
			longest_nap_minutes = excluded.longest_nap_minutes,
			total_feeds = excluded.total_feeds,
			notes = excluded.notes,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`

	var id, createdAt string
	err := r.db.QueryRowContext(ctx, query,
		rep.ID,
		rep.BabyID,
		formatDate(rep.Date),
		rep.TotalSleepMinutes,
		rep.LongestNapMinutes,
		rep.TotalFeeds,
		rep.Notes,
		formatTime(rep.CreatedAt),
		formatTime(rep.UpdatedAt),
	).Scan(&id, &createdAt)
	if isForeignKeyViolation(err) {
		return repository.ErrForeignKeyViolation
	}
	if err != nil {
		return fmt.Errorf("failed to upsert report: %w", err)
	}

	rep.ID = id
	if rep.CreatedAt, err = parseTime(createdAt); err != nil {
		return fmt.Errorf("parse created_at: %w", err)
	}
	return nil
}

// GetByDate retrieves the report for a baby and UTC date
func (r *ReportRepository) GetByDate(ctx context.Context, babyID string, date time.Time) (*report.DailyReport, error) {
	query := `SELECT ` + reportColumns + ` FROM daily_reports WHERE baby_id = ? AND date = ?`

	rep, err := scanReport(r.db.QueryRowContext(ctx, query, babyID, formatDate(date)))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return rep, nil
}

// ListByBaby returns all reports for a baby, oldest first
func (r *ReportRepository) ListByBaby(ctx context.Context, babyID string) ([]report.DailyReport, error) {
	query := `SELECT ` + reportColumns + ` FROM daily_reports WHERE baby_id = ? ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query, babyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []report.DailyReport
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, *rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}
	return reports, nil
}

func scanReport(row rowScanner) (*report.DailyReport, error) {
	var (
		rep                       report.DailyReport
		day, createdAt, updatedAt string
	)
	if err := row.Scan(
		&rep.ID,
		&rep.BabyID,
		&day,
		&rep.TotalSleepMinutes,
		&rep.LongestNapMinutes,
		&rep.TotalFeeds,
		&rep.Notes,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if rep.Date, err = parseDate(day); err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}
	if rep.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if rep.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &rep, nil
}
