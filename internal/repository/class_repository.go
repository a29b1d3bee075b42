package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/attendance-api/internal/models"
)

const classDetailSelect = `SELECT c.id, c.campus, c.subject_set_id, c.teacher_code, c.student_code, c.created_date, c.updated_date,
        ss.subject, t.teacher_name, st.student_name
        FROM classes c
        LEFT JOIN subject_sets ss ON ss.campus = c.campus AND ss.subject_set_id = c.subject_set_id
        LEFT JOIN teachers t ON t.teacher_code = c.teacher_code
        LEFT JOIN students st ON st.student_code = c.student_code`

// ClassRepository persists class enrollments.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns enrollments with subject, teacher and student names.
func (r *ClassRepository) List(ctx context.Context) ([]models.ClassDetail, error) {
	classes := []models.ClassDetail{}
	if err := r.db.SelectContext(ctx, &classes, classDetailSelect+" ORDER BY c.created_date DESC"); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindByID returns one enriched enrollment.
func (r *ClassRepository) FindByID(ctx context.Context, id int64) (*models.ClassDetail, error) {
	var class models.ClassDetail
	if err := r.db.GetContext(ctx, &class, classDetailSelect+" WHERE c.id = $1", id); err != nil {
		return nil, err
	}
	return &class, nil
}

// Exists reports whether the exact enrollment tuple is already stored.
func (r *ClassRepository) Exists(ctx context.Context, class *models.Class) (bool, error) {
	const query = `SELECT 1 FROM classes WHERE campus = $1 AND subject_set_id = $2 AND teacher_code = $3 AND student_code = $4 LIMIT 1`
	var exists int
	err := r.db.GetContext(ctx, &exists, query, class.Campus, class.SubjectSetID, class.TeacherCode, class.StudentCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check class enrollment: %w", err)
	}
	return true, nil
}

// Create inserts an enrollment.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	const query = `INSERT INTO classes (campus, subject_set_id, teacher_code, student_code)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_date, updated_date`
	row := r.db.QueryRowxContext(ctx, query, class.Campus, class.SubjectSetID, class.TeacherCode, class.StudentCode)
	if err := row.Scan(&class.ID, &class.CreatedDate, &class.UpdatedDate); err != nil {
		return classify("create class", err)
	}
	return nil
}

// TeacherClasses groups a teacher's enrollments per (campus, subject set).
func (r *ClassRepository) TeacherClasses(ctx context.Context, teacherCode string) ([]models.TeacherClass, error) {
	const query = `SELECT c.campus, c.subject_set_id, ss.subject, ss.subject_set_description, ss.credits,
        COUNT(DISTINCT c.student_code) AS student_count
        FROM classes c
        LEFT JOIN subject_sets ss ON ss.campus = c.campus AND ss.subject_set_id = c.subject_set_id
        WHERE c.teacher_code = $1
        GROUP BY c.campus, c.subject_set_id, ss.subject, ss.subject_set_description, ss.credits
        ORDER BY ss.subject`
	classes := []models.TeacherClass{}
	if err := r.db.SelectContext(ctx, &classes, query, teacherCode); err != nil {
		return nil, fmt.Errorf("list teacher classes: %w", err)
	}
	return classes, nil
}

// ClassStudents lists students enrolled with a teacher in one subject set.
func (r *ClassRepository) ClassStudents(ctx context.Context, teacherCode, campus, subjectSetID string) ([]models.ClassStudent, error) {
	const query = `SELECT DISTINCT s.id, s.student_code, s.student_name, s.student_nickname, s.email_address, s.form, s.campus
        FROM classes c
        JOIN students s ON s.student_code = c.student_code
        WHERE c.teacher_code = $1 AND c.campus = $2 AND c.subject_set_id = $3
        ORDER BY s.student_name`
	students := []models.ClassStudent{}
	if err := r.db.SelectContext(ctx, &students, query, teacherCode, campus, subjectSetID); err != nil {
		return nil, fmt.Errorf("list class students: %w", err)
	}
	return students, nil
}
