package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/attendance-api/internal/models"
)

const teacherColumns = `id, teacher_code, teacher_nickname, teacher_name, teacher_image, email_address, campus, department, created_date, updated_date`

// TeacherRepository provides persistence for teacher records.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns every teacher, newest first.
func (r *TeacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	query := fmt.Sprintf("SELECT %s FROM teachers ORDER BY created_date DESC", teacherColumns)
	teachers := []models.Teacher{}
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// Roster returns the short teacher view ordered by name.
func (r *TeacherRepository) Roster(ctx context.Context) ([]models.TeacherSummary, error) {
	const query = `SELECT id, teacher_code, teacher_name, teacher_nickname, campus, department FROM teachers ORDER BY teacher_name ASC`
	roster := []models.TeacherSummary{}
	if err := r.db.SelectContext(ctx, &roster, query); err != nil {
		return nil, fmt.Errorf("list teacher roster: %w", err)
	}
	return roster, nil
}

// FindByID fetches a teacher by surrogate id.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	query := fmt.Sprintf("SELECT %s FROM teachers WHERE id = $1", teacherColumns)
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// FindSummaryByCode fetches the short teacher view by TeacherCode.
func (r *TeacherRepository) FindSummaryByCode(ctx context.Context, code string) (*models.TeacherSummary, error) {
	const query = `SELECT id, teacher_code, teacher_name, teacher_nickname, campus, department FROM teachers WHERE teacher_code = $1`
	var summary models.TeacherSummary
	if err := r.db.GetContext(ctx, &summary, query, code); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ExistsByCode checks whether a teacher code is taken, optionally ignoring one row.
func (r *TeacherRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM teachers WHERE teacher_code = $1"
	args := []interface{}{code}
	if excludeID > 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check teacher code: %w", err)
	}
	return true, nil
}

// Create inserts a teacher and fills in the generated columns.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	const query = `INSERT INTO teachers (teacher_code, teacher_nickname, teacher_name, teacher_image, email_address, campus, department)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_date, updated_date`
	row := r.db.QueryRowxContext(ctx, query,
		teacher.TeacherCode, teacher.TeacherNickname, teacher.TeacherName, teacher.TeacherImage,
		teacher.EmailAddress, teacher.Campus, teacher.Department)
	if err := row.Scan(&teacher.ID, &teacher.CreatedDate, &teacher.UpdatedDate); err != nil {
		return classify("create teacher", err)
	}
	return nil
}

// Update overwrites an existing teacher.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	teacher.UpdatedDate = time.Now().UTC()
	const query = `UPDATE teachers SET teacher_code = :teacher_code, teacher_nickname = :teacher_nickname, teacher_name = :teacher_name,
        teacher_image = :teacher_image, email_address = :email_address, campus = :campus, department = :department, updated_date = :updated_date
        WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, teacher)
	if err != nil {
		return classify("update teacher", err)
	}
	return expectAffected(res)
}

// Delete removes a teacher; classes and sessions cascade.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return classify("delete teacher", err)
	}
	return expectAffected(res)
}
