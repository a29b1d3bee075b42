package service

import (
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/repository"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
	"github.com/noah-isme/attendance-api/pkg/validation"
)

// Business messages for writes rejected by a schema constraint, keyed by
// constraint name.
var constraintMessages = map[string]string{
	"students_student_code_key":              "Student code already exists",
	"teachers_teacher_code_key":              "Teacher code already exists",
	"subject_sets_campus_subject_set_id_key": "Subject set ID already exists for this campus",
	"classes_enrollment_key":                 "Class enrollment already exists",
	"classes_subject_set_fkey":               "Subject set not found for this campus",
	"classes_teacher_code_fkey":              "Teacher not found",
	"classes_student_code_fkey":              "Student not found",
	"sessions_subject_set_fkey":              "Subject set not found for this campus",
	"sessions_teacher_code_fkey":             "Teacher not found",
	"sessions_time_order_check":              "Start time must be before end time",
	"attendance_records_session_student_key": "Attendance record already exists for this student in this session",
	"attendance_records_session_id_fkey":     "Session not found",
	"attendance_records_student_code_fkey":   "Student not found",
	"attendance_records_status_check":        "Status must be one of: Present, Absent, Late",
	"face_data_person_type_check":            `PersonType must be either "Student" or "Teacher"`,
}

func validationFailed(err error) *appErrors.Error {
	return appErrors.WithDetails(appErrors.ErrValidation, validation.Messages(err))
}

func notFound(entity string) *appErrors.Error {
	return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
}

func badRequest(message string) *appErrors.Error {
	return appErrors.Clone(appErrors.ErrBadRequest, message)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// internalError logs the cause and hides it behind message.
func internalError(logger *zap.Logger, err error, message string) *appErrors.Error {
	logger.Error(message, zap.Error(err))
	return appErrors.Internal(err, message)
}

// writeError maps a failed insert/update to the business message of the
// violated constraint, or to a logged 500.
func writeError(logger *zap.Logger, err error, message string) *appErrors.Error {
	if name := repository.ConstraintName(err); name != "" {
		if msg, ok := constraintMessages[name]; ok {
			return appErrors.Wrap(err, appErrors.ErrBadRequest.Code, appErrors.ErrBadRequest.Status, msg)
		}
	}
	return internalError(logger, err, message)
}
