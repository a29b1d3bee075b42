package models

import "time"

// Student represents a learner identified by StudentCode.
type Student struct {
	ID              int64     `db:"id" json:"Id"`
	StudentCode     string    `db:"student_code" json:"StudentCode"`
	StudentNickname string    `db:"student_nickname" json:"StudentNickname"`
	StudentName     string    `db:"student_name" json:"StudentName"`
	StudentImage    []byte    `db:"student_image" json:"StudentImage"`
	EmailAddress    string    `db:"email_address" json:"EmailAddress"`
	Campus          string    `db:"campus" json:"Campus"`
	Form            string    `db:"form" json:"Form"`
	CreatedDate     time.Time `db:"created_date" json:"CreatedDate"`
	UpdatedDate     time.Time `db:"updated_date" json:"UpdatedDate"`
}

// StudentSummary is the subset of student columns shown next to face
// verification results.
type StudentSummary struct {
	ID              int64  `db:"id" json:"Id"`
	StudentCode     string `db:"student_code" json:"StudentCode"`
	StudentName     string `db:"student_name" json:"StudentName"`
	StudentNickname string `db:"student_nickname" json:"StudentNickname"`
	Campus          string `db:"campus" json:"Campus"`
	Form            string `db:"form" json:"Form"`
}

// ClassStudent is a student enrolled in a teacher's class.
type ClassStudent struct {
	ID              int64  `db:"id" json:"Id"`
	StudentCode     string `db:"student_code" json:"StudentCode"`
	StudentName     string `db:"student_name" json:"StudentName"`
	StudentNickname string `db:"student_nickname" json:"StudentNickname"`
	EmailAddress    string `db:"email_address" json:"EmailAddress"`
	Form            string `db:"form" json:"Form"`
	Campus          string `db:"campus" json:"Campus"`
}
