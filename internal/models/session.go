package models

import "time"

// Session is one scheduled meeting of a subject set. Dates are YYYY-MM-DD
// and times HH:MM:SS as rendered by PostgreSQL.
type Session struct {
	ID           int64     `db:"id" json:"Id"`
	SessionName  string    `db:"session_name" json:"SessionName"`
	SubjectSetID string    `db:"subject_set_id" json:"SubjectSetID"`
	TeacherCode  string    `db:"teacher_code" json:"TeacherCode"`
	Campus       string    `db:"campus" json:"Campus"`
	SessionDate  string    `db:"session_date" json:"SessionDate"`
	StartTime    string    `db:"start_time" json:"StartTime"`
	EndTime      string    `db:"end_time" json:"EndTime"`
	CreatedDate  time.Time `db:"created_date" json:"CreatedDate"`
	UpdatedDate  time.Time `db:"updated_date" json:"UpdatedDate"`
}

// SessionDetail adds the subject and teacher names.
type SessionDetail struct {
	Session
	Subject     *string `db:"subject" json:"Subject"`
	TeacherName *string `db:"teacher_name" json:"TeacherName"`
}
