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

const studentColumns = `id, student_code, student_nickname, student_name, student_image, email_address, campus, form, created_date, updated_date`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns every student, newest first.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students ORDER BY created_date DESC", studentColumns)
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by surrogate id. It returns sql.ErrNoRows when absent.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	query := fmt.Sprintf("SELECT %s FROM students WHERE id = $1", studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindSummaryByCode fetches the short student view by StudentCode.
func (r *StudentRepository) FindSummaryByCode(ctx context.Context, code string) (*models.StudentSummary, error) {
	const query = `SELECT id, student_code, student_name, student_nickname, campus, form FROM students WHERE student_code = $1`
	var summary models.StudentSummary
	if err := r.db.GetContext(ctx, &summary, query, code); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ExistsByCode checks if a student with given code exists optionally excluding an ID.
func (r *StudentRepository) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM students WHERE student_code = $1"
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
		return false, fmt.Errorf("check student code: %w", err)
	}
	return true, nil
}

// Create inserts a new student and fills in the generated columns.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const query = `INSERT INTO students (student_code, student_nickname, student_name, student_image, email_address, campus, form)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_date, updated_date`
	row := r.db.QueryRowxContext(ctx, query,
		student.StudentCode, student.StudentNickname, student.StudentName, student.StudentImage,
		student.EmailAddress, student.Campus, student.Form)
	if err := row.Scan(&student.ID, &student.CreatedDate, &student.UpdatedDate); err != nil {
		return classify("create student", err)
	}
	return nil
}

// Update overwrites an existing student.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedDate = time.Now().UTC()
	const query = `UPDATE students SET student_code = :student_code, student_nickname = :student_nickname, student_name = :student_name,
        student_image = :student_image, email_address = :email_address, campus = :campus, form = :form, updated_date = :updated_date
        WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, student)
	if err != nil {
		return classify("update student", err)
	}
	return expectAffected(res)
}

// Delete removes a student; enrollments and attendance cascade.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return classify("delete student", err)
	}
	return expectAffected(res)
}

// expectAffected maps a zero-row write to sql.ErrNoRows.
func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
