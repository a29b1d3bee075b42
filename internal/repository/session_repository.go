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

const sessionDetailSelect = `SELECT s.id, s.session_name, s.subject_set_id, s.teacher_code, s.campus,
        s.session_date::text AS session_date, s.start_time::text AS start_time, s.end_time::text AS end_time,
        s.created_date, s.updated_date, ss.subject, t.teacher_name
        FROM sessions s
        LEFT JOIN subject_sets ss ON ss.campus = s.campus AND ss.subject_set_id = s.subject_set_id
        LEFT JOIN teachers t ON t.teacher_code = s.teacher_code`

// SessionRepository persists class sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs a SessionRepository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// List returns sessions, latest date and start time first.
func (r *SessionRepository) List(ctx context.Context) ([]models.SessionDetail, error) {
	sessions := []models.SessionDetail{}
	if err := r.db.SelectContext(ctx, &sessions, sessionDetailSelect+" ORDER BY s.session_date DESC, s.start_time DESC"); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// FindByID returns one enriched session.
func (r *SessionRepository) FindByID(ctx context.Context, id int64) (*models.SessionDetail, error) {
	var session models.SessionDetail
	if err := r.db.GetContext(ctx, &session, sessionDetailSelect+" WHERE s.id = $1", id); err != nil {
		return nil, err
	}
	return &session, nil
}

// Exists reports whether a session id is stored.
func (r *SessionRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM sessions WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check session: %w", err)
	}
	return true, nil
}

// Create inserts a session.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	const query = `INSERT INTO sessions (session_name, subject_set_id, teacher_code, campus, session_date, start_time, end_time)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_date, updated_date`
	row := r.db.QueryRowxContext(ctx, query, session.SessionName, session.SubjectSetID, session.TeacherCode,
		session.Campus, session.SessionDate, session.StartTime, session.EndTime)
	if err := row.Scan(&session.ID, &session.CreatedDate, &session.UpdatedDate); err != nil {
		return classify("create session", err)
	}
	return nil
}

// Update overwrites a session.
func (r *SessionRepository) Update(ctx context.Context, session *models.Session) error {
	session.UpdatedDate = time.Now().UTC()
	const query = `UPDATE sessions SET session_name = :session_name, subject_set_id = :subject_set_id, teacher_code = :teacher_code,
        campus = :campus, session_date = :session_date, start_time = :start_time, end_time = :end_time, updated_date = :updated_date
        WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, session)
	if err != nil {
		return classify("update session", err)
	}
	return expectAffected(res)
}
