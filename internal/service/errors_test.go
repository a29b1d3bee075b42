package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/repository"
	"github.com/noah-isme/attendance-api/pkg/validation"
)

func constraintErr(kind error, code pq.ErrorCode, constraint string) error {
	return &repository.ConstraintError{
		Kind:       kind,
		Constraint: constraint,
		Err:        &pq.Error{Code: code, Constraint: constraint},
	}
}

func TestWriteErrorMapsConstraints(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"unique student code", constraintErr(repository.ErrUniqueViolation, "23505", "students_student_code_key"), http.StatusBadRequest, "Student code already exists"},
		{"unique attendance pair", constraintErr(repository.ErrUniqueViolation, "23505", "attendance_records_session_student_key"), http.StatusBadRequest, "Attendance record already exists for this student in this session"},
		{"missing session", constraintErr(repository.ErrForeignKeyViolation, "23503", "attendance_records_session_id_fkey"), http.StatusBadRequest, "Session not found"},
		{"missing teacher", constraintErr(repository.ErrForeignKeyViolation, "23503", "classes_teacher_code_fkey"), http.StatusBadRequest, "Teacher not found"},
		{"inverted session times", constraintErr(repository.ErrCheckViolation, "23514", "sessions_time_order_check"), http.StatusBadRequest, "Start time must be before end time"},
		{"unknown constraint", constraintErr(repository.ErrUniqueViolation, "23505", "something_else_key"), http.StatusInternalServerError, "Failed to write"},
		{"driver failure", errors.New("pq: connection reset"), http.StatusInternalServerError, "Failed to write"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := writeError(zap.NewNop(), tc.err, "Failed to write")
			assert.Equal(t, tc.status, appErr.Status)
			assert.Equal(t, tc.message, appErr.Message)
			assert.ErrorIs(t, appErr, tc.err)
		})
	}
}

func TestStudentCreateLostUniqueRaceIsBadRequest(t *testing.T) {
	repo := newMockStudentRepo()
	repo.createErr = constraintErr(repository.ErrUniqueViolation, "23505", "students_student_code_key")
	svc := NewStudentService(repo, nil, validation.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), validStudentRequest())
	requireAppError(t, err, http.StatusBadRequest, "Student code already exists")
}

func TestSessionCreateCheckViolationIsBadRequest(t *testing.T) {
	svc, repo := newSessionFixture()
	repo.createErr = constraintErr(repository.ErrCheckViolation, "23514", "sessions_time_order_check")

	_, err := svc.Create(context.Background(), sessionRequest("09:00", "10:00"))
	requireAppError(t, err, http.StatusBadRequest, "Start time must be before end time")
}

func TestMarkAttendanceMissingSessionIsBadRequest(t *testing.T) {
	f := newAuthFixture()
	f.attendance.upsertErr = constraintErr(repository.ErrForeignKeyViolation, "23503", "attendance_records_session_id_fkey")

	_, _, err := f.svc.MarkAttendance(context.Background(), MarkAttendanceRequest{SessionID: 99, StudentCode: "S001"})
	requireAppError(t, err, http.StatusBadRequest, "Session not found")
	assert.Empty(t, f.attendance.records)
}
