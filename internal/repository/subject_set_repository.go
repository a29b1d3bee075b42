package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/attendance-api/internal/models"
)

const subjectSetColumns = `id, campus, subject_set_id, subject, subject_set_description, credits, created_date, updated_date`

// SubjectSetRepository handles subject set persistence.
type SubjectSetRepository struct {
	db *sqlx.DB
}

// NewSubjectSetRepository constructs a SubjectSetRepository.
func NewSubjectSetRepository(db *sqlx.DB) *SubjectSetRepository {
	return &SubjectSetRepository{db: db}
}

// List returns subject sets, newest first.
func (r *SubjectSetRepository) List(ctx context.Context) ([]models.SubjectSet, error) {
	query := fmt.Sprintf("SELECT %s FROM subject_sets ORDER BY created_date DESC", subjectSetColumns)
	sets := []models.SubjectSet{}
	if err := r.db.SelectContext(ctx, &sets, query); err != nil {
		return nil, fmt.Errorf("list subject sets: %w", err)
	}
	return sets, nil
}

// FindByID fetches a subject set by surrogate id.
func (r *SubjectSetRepository) FindByID(ctx context.Context, id int64) (*models.SubjectSet, error) {
	query := fmt.Sprintf("SELECT %s FROM subject_sets WHERE id = $1", subjectSetColumns)
	var set models.SubjectSet
	if err := r.db.GetContext(ctx, &set, query, id); err != nil {
		return nil, err
	}
	return &set, nil
}

// Exists reports whether (campus, subjectSetID) is registered.
func (r *SubjectSetRepository) Exists(ctx context.Context, campus, subjectSetID string) (bool, error) {
	const query = `SELECT 1 FROM subject_sets WHERE campus = $1 AND subject_set_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, campus, subjectSetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check subject set: %w", err)
	}
	return true, nil
}

// Create inserts a subject set.
func (r *SubjectSetRepository) Create(ctx context.Context, set *models.SubjectSet) error {
	const query = `INSERT INTO subject_sets (campus, subject_set_id, subject, subject_set_description, credits)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_date, updated_date`
	row := r.db.QueryRowxContext(ctx, query, set.Campus, set.SubjectSetID, set.Subject, set.SubjectSetDescription, set.Credits)
	if err := row.Scan(&set.ID, &set.CreatedDate, &set.UpdatedDate); err != nil {
		return classify("create subject set", err)
	}
	return nil
}
