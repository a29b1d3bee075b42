package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/attendance-api/internal/models"
)

const faceDataColumns = `id, person_type, person_code, image_data, face_descriptor, original_name, content_type, created_date, updated_date`

// FaceDataRepository stores face images and descriptors.
type FaceDataRepository struct {
	db *sqlx.DB
}

// NewFaceDataRepository constructs a FaceDataRepository.
func NewFaceDataRepository(db *sqlx.DB) *FaceDataRepository {
	return &FaceDataRepository{db: db}
}

// ListByPersonCode returns all face data for a code, newest first.
func (r *FaceDataRepository) ListByPersonCode(ctx context.Context, personCode string) ([]models.FaceData, error) {
	query := fmt.Sprintf("SELECT %s FROM face_data WHERE person_code = $1 ORDER BY created_date DESC", faceDataColumns)
	items := []models.FaceData{}
	if err := r.db.SelectContext(ctx, &items, query, personCode); err != nil {
		return nil, fmt.Errorf("list face data: %w", err)
	}
	return items, nil
}

// FindByID fetches one face data row.
func (r *FaceDataRepository) FindByID(ctx context.Context, id int64) (*models.FaceData, error) {
	query := fmt.Sprintf("SELECT %s FROM face_data WHERE id = $1", faceDataColumns)
	var item models.FaceData
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}

// LatestDescriptor returns the newest stored descriptor for a person. Rows
// without a descriptor are still considered; the result may be nil.
func (r *FaceDataRepository) LatestDescriptor(ctx context.Context, personType models.PersonType, personCode string) (*string, error) {
	const query = `SELECT face_descriptor FROM face_data WHERE person_type = $1 AND person_code = $2
        ORDER BY created_date DESC LIMIT 1`
	var descriptor *string
	if err := r.db.GetContext(ctx, &descriptor, query, personType, personCode); err != nil {
		return nil, err
	}
	return descriptor, nil
}

// Create inserts face data.
func (r *FaceDataRepository) Create(ctx context.Context, item *models.FaceData) error {
	const query = `INSERT INTO face_data (person_type, person_code, image_data, face_descriptor, original_name, content_type)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_date, updated_date`
	row := r.db.QueryRowxContext(ctx, query, item.PersonType, item.PersonCode, item.ImageData,
		item.FaceDescriptor, item.OriginalName, item.ContentType)
	if err := row.Scan(&item.ID, &item.CreatedDate, &item.UpdatedDate); err != nil {
		return classify("create face data", err)
	}
	return nil
}

// Update overwrites face data.
func (r *FaceDataRepository) Update(ctx context.Context, item *models.FaceData) error {
	item.UpdatedDate = time.Now().UTC()
	const query = `UPDATE face_data SET person_type = :person_type, person_code = :person_code, image_data = :image_data,
        face_descriptor = :face_descriptor, original_name = :original_name, content_type = :content_type, updated_date = :updated_date
        WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return classify("update face data", err)
	}
	return expectAffected(res)
}

// Delete removes face data.
func (r *FaceDataRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM face_data WHERE id = $1`, id)
	if err != nil {
		return classify("delete face data", err)
	}
	return expectAffected(res)
}
