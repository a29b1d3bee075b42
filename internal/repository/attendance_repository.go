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

const attendanceDetailSelect = `SELECT a.id, a.session_id, a.student_code, a.status, a.attendance_date::text AS attendance_date,
        a.created_date, a.updated_date, s.session_name, st.student_name, st.student_nickname
        FROM attendance_records a
        LEFT JOIN sessions s ON s.id = a.session_id
        LEFT JOIN students st ON st.student_code = a.student_code`

// AttendanceRepository persists attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// List returns every record, latest attendance date first.
func (r *AttendanceRepository) List(ctx context.Context) ([]models.AttendanceDetail, error) {
	records := []models.AttendanceDetail{}
	query := attendanceDetailSelect + " ORDER BY a.attendance_date DESC, a.created_date DESC"
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// ListBySession returns one session's records ordered by student name.
func (r *AttendanceRepository) ListBySession(ctx context.Context, sessionID int64) ([]models.AttendanceDetail, error) {
	records := []models.AttendanceDetail{}
	query := attendanceDetailSelect + " WHERE a.session_id = $1 ORDER BY st.student_name"
	if err := r.db.SelectContext(ctx, &records, query, sessionID); err != nil {
		return nil, fmt.Errorf("list session attendance: %w", err)
	}
	return records, nil
}

// FindByID returns one enriched record.
func (r *AttendanceRepository) FindByID(ctx context.Context, id int64) (*models.AttendanceDetail, error) {
	var record models.AttendanceDetail
	if err := r.db.GetContext(ctx, &record, attendanceDetailSelect+" WHERE a.id = $1", id); err != nil {
		return nil, err
	}
	return &record, nil
}

// ExistsForSessionStudent reports whether the student already has a record
// in the session, ignoring excludeID when positive.
func (r *AttendanceRepository) ExistsForSessionStudent(ctx context.Context, sessionID int64, studentCode string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM attendance_records WHERE session_id = $1 AND student_code = $2"
	args := []interface{}{sessionID, studentCode}
	if excludeID > 0 {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check attendance record: %w", err)
	}
	return true, nil
}

// Create inserts a record.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	const query = `INSERT INTO attendance_records (session_id, student_code, status, attendance_date)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_date, updated_date`
	row := r.db.QueryRowxContext(ctx, query, record.SessionID, record.StudentCode, record.Status, record.AttendanceDate)
	if err := row.Scan(&record.ID, &record.CreatedDate, &record.UpdatedDate); err != nil {
		return classify("create attendance", err)
	}
	return nil
}

// Update overwrites a record.
func (r *AttendanceRepository) Update(ctx context.Context, record *models.AttendanceRecord) error {
	record.UpdatedDate = time.Now().UTC()
	const query = `UPDATE attendance_records SET session_id = :session_id, student_code = :student_code, status = :status,
        attendance_date = :attendance_date, updated_date = :updated_date
        WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		return classify("update attendance", err)
	}
	return expectAffected(res)
}

// Upsert writes the record keyed by (session, student) in one statement and
// reports whether a new row was inserted.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.AttendanceRecord) (bool, error) {
	const query = `INSERT INTO attendance_records (session_id, student_code, status, attendance_date)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (session_id, student_code) DO UPDATE
        SET status = EXCLUDED.status, attendance_date = EXCLUDED.attendance_date, updated_date = NOW()
        RETURNING id, created_date, updated_date, (xmax = 0) AS inserted`
	var inserted bool
	row := r.db.QueryRowxContext(ctx, query, record.SessionID, record.StudentCode, record.Status, record.AttendanceDate)
	if err := row.Scan(&record.ID, &record.CreatedDate, &record.UpdatedDate, &inserted); err != nil {
		return false, classify("upsert attendance", err)
	}
	return inserted, nil
}
