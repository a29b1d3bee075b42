package models

import "time"

// AttendanceStatus enumerates attendance outcomes.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "Present"
	AttendanceStatusAbsent  AttendanceStatus = "Absent"
	AttendanceStatusLate    AttendanceStatus = "Late"
)

// AttendanceRecord stores one student's attendance for one session.
type AttendanceRecord struct {
	ID             int64            `db:"id" json:"Id"`
	SessionID      int64            `db:"session_id" json:"SessionId"`
	StudentCode    string           `db:"student_code" json:"StudentCode"`
	Status         AttendanceStatus `db:"status" json:"Status"`
	AttendanceDate string           `db:"attendance_date" json:"AttendanceDate"`
	CreatedDate    time.Time        `db:"created_date" json:"CreatedDate"`
	UpdatedDate    time.Time        `db:"updated_date" json:"UpdatedDate"`
}

// AttendanceDetail adds the session and student names.
type AttendanceDetail struct {
	AttendanceRecord
	SessionName     *string `db:"session_name" json:"SessionName"`
	StudentName     *string `db:"student_name" json:"StudentName"`
	StudentNickname *string `db:"student_nickname" json:"StudentNickname"`
}
