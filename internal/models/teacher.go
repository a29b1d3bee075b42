package models

import "time"

// Teacher represents an instructor identified by TeacherCode.
type Teacher struct {
	ID              int64     `db:"id" json:"Id"`
	TeacherCode     string    `db:"teacher_code" json:"TeacherCode"`
	TeacherNickname string    `db:"teacher_nickname" json:"TeacherNickname"`
	TeacherName     string    `db:"teacher_name" json:"TeacherName"`
	TeacherImage    []byte    `db:"teacher_image" json:"TeacherImage"`
	EmailAddress    string    `db:"email_address" json:"EmailAddress"`
	Campus          string    `db:"campus" json:"Campus"`
	Department      string    `db:"department" json:"Department"`
	CreatedDate     time.Time `db:"created_date" json:"CreatedDate"`
	UpdatedDate     time.Time `db:"updated_date" json:"UpdatedDate"`
}

// TeacherSummary is the roster view used by the login selection screen.
type TeacherSummary struct {
	ID              int64  `db:"id" json:"Id"`
	TeacherCode     string `db:"teacher_code" json:"TeacherCode"`
	TeacherName     string `db:"teacher_name" json:"TeacherName"`
	TeacherNickname string `db:"teacher_nickname" json:"TeacherNickname"`
	Campus          string `db:"campus" json:"Campus"`
	Department      string `db:"department" json:"Department"`
}

// TeacherClass aggregates one (campus, subject set) a teacher is assigned to.
type TeacherClass struct {
	Campus                string  `db:"campus" json:"Campus"`
	SubjectSetID          string  `db:"subject_set_id" json:"SubjectSetID"`
	Subject               *string `db:"subject" json:"Subject"`
	SubjectSetDescription *string `db:"subject_set_description" json:"SubjectSetDescription"`
	Credits               *int    `db:"credits" json:"Credits"`
	StudentCount          int     `db:"student_count" json:"StudentCount"`
}
