package models

import "time"

// Class links one student to a teacher's subject set on a campus.
type Class struct {
	ID           int64     `db:"id" json:"Id"`
	Campus       string    `db:"campus" json:"Campus"`
	SubjectSetID string    `db:"subject_set_id" json:"SubjectSetID"`
	TeacherCode  string    `db:"teacher_code" json:"TeacherCode"`
	StudentCode  string    `db:"student_code" json:"StudentCode"`
	CreatedDate  time.Time `db:"created_date" json:"CreatedDate"`
	UpdatedDate  time.Time `db:"updated_date" json:"UpdatedDate"`
}

// ClassDetail enriches a class with display names from related rows.
type ClassDetail struct {
	Class
	Subject     *string `db:"subject" json:"Subject"`
	TeacherName *string `db:"teacher_name" json:"TeacherName"`
	StudentName *string `db:"student_name" json:"StudentName"`
}
