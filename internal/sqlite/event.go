package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/nogmois/nana-back/internal/domain/event"
	"github.com/nogmois/nana-back/internal/repository"
)

// EventRepository implements event.Repository and the routine and report
// event readers for SQLite
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, owner_id, baby_id, type, ts, created_at`

// CreateBatch inserts all events in one transaction
func (r *EventRepository) CreateBatch(ctx context.Context, events []*event.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare event insert: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		_, err := stmt.ExecContext(ctx,
			ev.ID,
			ev.OwnerID,
			ev.BabyID,
			ev.Type,
			formatTime(ev.Timestamp),
			formatTime(ev.CreatedAt),
		)
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Get retrieves an event by ID, scoped to its owner
func (r *EventRepository) Get(ctx context.Context, ownerID, id string) (*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ? AND owner_id = ?`

	ev, err := scanEvent(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return ev, nil
}

// Update replaces an event's type and timestamp
func (r *EventRepository) Update(ctx context.Context, ev *event.Event) error {
	query := `
		UPDATE events
		SET type = ?, ts = ?
		WHERE id = ? AND owner_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, ev.Type, formatTime(ev.Timestamp), ev.ID, ev.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes an event, scoped to its owner
func (r *EventRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// List returns the owner's events matching the given filters
func (r *EventRepository) List(ctx context.Context, ownerID string, opts event.ListOptions) ([]event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE owner_id = ?`
	args := []interface{}{ownerID}
	conditions := []string{}

	if opts.BabyID != "" {
		conditions = append(conditions, "baby_id = ?")
		args = append(args, opts.BabyID)
	}
	if len(opts.Types) > 0 {
		conditions = append(conditions, typeCondition(len(opts.Types)))
		args = appendTypes(args, opts.Types)
	}
	if opts.Since != nil {
		conditions = append(conditions, "ts >= ?")
		args = append(args, formatTime(*opts.Since))
	}
	if opts.Until != nil {
		conditions = append(conditions, "ts < ?")
		args = append(args, formatTime(*opts.Until))
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	if opts.Ascending {
		query += " ORDER BY ts ASC, created_at ASC"
	} else {
		query += " ORDER BY ts DESC, created_at DESC"
	}

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	return r.query(ctx, query, args...)
}

// ListByTypes returns a baby's events of the given types at or after since,
// oldest first
func (r *EventRepository) ListByTypes(ctx context.Context, babyID string, types []event.Type, since time.Time) ([]event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE baby_id = ? AND ` + typeCondition(len(types)) + ` AND ts >= ?
		ORDER BY ts ASC, created_at ASC`

	args := appendTypes([]interface{}{babyID}, types)
	args = append(args, formatTime(since))
	return r.query(ctx, query, args...)
}

// Latest returns the most recent event of the given types
func (r *EventRepository) Latest(ctx context.Context, babyID string, types []event.Type) (*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE baby_id = ? AND ` + typeCondition(len(types)) + `
		ORDER BY ts DESC, created_at DESC
		LIMIT 1`

	args := appendTypes([]interface{}{babyID}, types)
	ev, err := scanEvent(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest event: %w", err)
	}
	return ev, nil
}

// ListBetween returns all of a baby's events in [from, to), oldest first
func (r *EventRepository) ListBetween(ctx context.Context, babyID string, from, to time.Time) ([]event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events
		WHERE baby_id = ? AND ts >= ? AND ts < ?
		ORDER BY ts ASC, created_at ASC`
	return r.query(ctx, query, babyID, formatTime(from), formatTime(to))
}

// BabiesWithEvents returns the IDs of babies with at least one event in [from, to)
func (r *EventRepository) BabiesWithEvents(ctx context.Context, from, to time.Time) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT baby_id FROM events
		WHERE ts >= ? AND ts < ?
		ORDER BY baby_id
	`, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list babies with events: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan baby id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating baby id rows: %w", err)
	}
	return ids, nil
}

func (r *EventRepository) query(ctx context.Context, query string, args ...interface{}) ([]event.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, *ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}

func scanEvent(row rowScanner) (*event.Event, error) {
	var (
		ev        event.Event
		ts        string
		createdAt string
	)
	if err := row.Scan(&ev.ID, &ev.OwnerID, &ev.BabyID, &ev.Type, &ts, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if ev.Timestamp, err = parseTime(ts); err != nil {
		return nil, fmt.Errorf("parse ts: %w", err)
	}
	if ev.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &ev, nil
}

func typeCondition(n int) string {
	if n == 0 {
		return "1 = 1"
	}
	return "type IN (" + strings.TrimSuffix(strings.Repeat("?, ", n), ", ") + ")"
}

func appendTypes(args []interface{}, types []event.Type) []interface{} {
	for _, t := range types {
		args = append(args, string(t))
	}
	return args
}
