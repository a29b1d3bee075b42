package models

import "time"

// SubjectSet is a subject offering, unique per campus.
type SubjectSet struct {
	ID                    int64     `db:"id" json:"Id"`
	Campus                string    `db:"campus" json:"Campus"`
	SubjectSetID          string    `db:"subject_set_id" json:"SubjectSetID"`
	Subject               string    `db:"subject" json:"Subject"`
	SubjectSetDescription *string   `db:"subject_set_description" json:"SubjectSetDescription"`
	Credits               int       `db:"credits" json:"Credits"`
	CreatedDate           time.Time `db:"created_date" json:"CreatedDate"`
	UpdatedDate           time.Time `db:"updated_date" json:"UpdatedDate"`
}
