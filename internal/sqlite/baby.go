package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nogmois/nana-back/internal/domain/baby"
	"github.com/nogmois/nana-back/internal/repository"
)

// BabyRepository implements baby.Repository for SQLite
type BabyRepository struct {
	db *DB
}

// NewBabyRepository creates a new BabyRepository
func NewBabyRepository(db *DB) *BabyRepository {
	return &BabyRepository{db: db}
}

// Create inserts a baby
func (r *BabyRepository) Create(ctx context.Context, b *baby.Baby) error {
	query := `
		INSERT INTO babies (id, owner_id, name, birth_date, birth_weight_grams, gender, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var weight sql.NullInt64
	if b.BirthWeightGrams != nil {
		weight = sql.NullInt64{Int64: int64(*b.BirthWeightGrams), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.OwnerID,
		b.Name,
		formatDate(b.BirthDate),
		weight,
		b.Gender,
		formatTime(b.CreatedAt),
	)
	if isUniqueViolation(err) {
		return repository.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to create baby: %w", err)
	}

	return nil
}

// Get retrieves a baby by ID, scoped to its owner
func (r *BabyRepository) Get(ctx context.Context, ownerID, id string) (*baby.Baby, error) {
	query := `
		SELECT id, owner_id, name, birth_date, birth_weight_grams, gender, created_at
		FROM babies
		WHERE id = ? AND owner_id = ?
	`

	b, err := scanBaby(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get baby: %w", err)
	}

	return b, nil
}

// ListByOwner returns the owner's babies in creation order
func (r *BabyRepository) ListByOwner(ctx context.Context, ownerID string) ([]baby.Baby, error) {
	query := `
		SELECT id, owner_id, name, birth_date, birth_weight_grams, gender, created_at
		FROM babies
		WHERE owner_id = ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list babies: %w", err)
	}
	defer rows.Close()

	var babies []baby.Baby
	for rows.Next() {
		b, err := scanBaby(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan baby: %w", err)
		}
		babies = append(babies, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating baby rows: %w", err)
	}

	return babies, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBaby(row rowScanner) (*baby.Baby, error) {
	var (
		b         baby.Baby
		birthDate string
		createdAt string
		weight    sql.NullInt64
	)
	if err := row.Scan(&b.ID, &b.OwnerID, &b.Name, &birthDate, &weight, &b.Gender, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if b.BirthDate, err = parseDate(birthDate); err != nil {
		return nil, fmt.Errorf("parse birth_date: %w", err)
	}
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if weight.Valid {
		w := int(weight.Int64)
		b.BirthWeightGrams = &w
	}
	return &b, nil
}
