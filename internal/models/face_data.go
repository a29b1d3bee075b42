package models

import "time"

// PersonType tells whether face data belongs to a student or a teacher.
type PersonType string

const (
	PersonTypeStudent PersonType = "Student"
	PersonTypeTeacher PersonType = "Teacher"
)

// FaceData holds a stored face image and its optional descriptor. The
// descriptor is kept as the JSON text the client supplied.
type FaceData struct {
	ID             int64      `db:"id" json:"Id"`
	PersonType     PersonType `db:"person_type" json:"PersonType"`
	PersonCode     string     `db:"person_code" json:"PersonCode"`
	ImageData      []byte     `db:"image_data" json:"ImageData"`
	FaceDescriptor *string    `db:"face_descriptor" json:"FaceDescriptor"`
	OriginalName   *string    `db:"original_name" json:"OriginalName"`
	ContentType    string     `db:"content_type" json:"ContentType"`
	CreatedDate    time.Time  `db:"created_date" json:"CreatedDate"`
	UpdatedDate    time.Time  `db:"updated_date" json:"UpdatedDate"`
}
