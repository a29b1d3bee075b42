package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/internal/repository"
	"github.com/noah-isme/attendance-api/pkg/validation"
)

type attendanceRepository interface {
	List(ctx context.Context) ([]models.AttendanceDetail, error)
	ListBySession(ctx context.Context, sessionID int64) ([]models.AttendanceDetail, error)
	FindByID(ctx context.Context, id int64) (*models.AttendanceDetail, error)
	ExistsForSessionStudent(ctx context.Context, sessionID int64, studentCode string, excludeID int64) (bool, error)
	Create(ctx context.Context, record *models.AttendanceRecord) error
	Update(ctx context.Context, record *models.AttendanceRecord) error
}

// AttendanceRequest records one student's status for a session.
type AttendanceRequest struct {
	SessionID      int64  `json:"SessionId" validate:"required,gt=0"`
	StudentCode    string `json:"StudentCode" validate:"required,max=10"`
	Status         string `json:"Status" validate:"required,oneof=Present Absent Late"`
	AttendanceDate string `json:"AttendanceDate" validate:"required,datetime=2006-01-02"`
}

// AttendanceService manages attendance records.
type AttendanceService struct {
	repo      attendanceRepository
	sessions  sessionLookup
	students  studentLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService wires the attendance service.
func NewAttendanceService(repo attendanceRepository, sessions sessionLookup, students studentLookup, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, sessions: sessions, students: students, validator: validate, logger: logger}
}

// List returns every attendance record.
func (s *AttendanceService) List(ctx context.Context) ([]models.AttendanceDetail, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(s.logger, err, "Failed to fetch attendance records")
	}
	return records, nil
}

// ListBySession returns one session's records; 404 when the session is unknown.
func (s *AttendanceService) ListBySession(ctx context.Context, sessionID int64) ([]models.AttendanceDetail, error) {
	const failure = "Failed to fetch session attendance records"
	ok, err := s.sessions.Exists(ctx, sessionID)
	if err != nil {
		return nil, internalError(s.logger, err, failure)
	}
	if !ok {
		return nil, notFound("Session")
	}
	records, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, internalError(s.logger, err, failure)
	}
	return records, nil
}

// Create stores a new record; a student has at most one per session.
func (s *AttendanceService) Create(ctx context.Context, req AttendanceRequest) (*models.AttendanceDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}
	const failure = "Failed to create attendance record"
	if err := s.checkReferences(ctx, req, failure); err != nil {
		return nil, err
	}
	dup, err := s.repo.ExistsForSessionStudent(ctx, req.SessionID, req.StudentCode, 0)
	if err != nil {
		return nil, internalError(s.logger, err, failure)
	}
	if dup {
		return nil, badRequest("Attendance record already exists for this student in this session")
	}
	record := &models.AttendanceRecord{
		SessionID:      req.SessionID,
		StudentCode:    req.StudentCode,
		Status:         models.AttendanceStatus(req.Status),
		AttendanceDate: req.AttendanceDate,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, writeError(s.logger, err, failure)
	}
	detail, err := s.repo.FindByID(ctx, record.ID)
	if err != nil {
		return nil, internalError(s.logger, err, failure)
	}
	return detail, nil
}

// Update replaces a record without creating a second one for the pair.
func (s *AttendanceService) Update(ctx context.Context, id int64, req AttendanceRequest) (*models.AttendanceDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}
	const failure = "Failed to update attendance record"
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("Attendance record")
		}
		return nil, internalError(s.logger, err, failure)
	}
	if err := s.checkReferences(ctx, req, failure); err != nil {
		return nil, err
	}
	const conflict = "Another attendance record already exists for this student in this session"
	dup, err := s.repo.ExistsForSessionStudent(ctx, req.SessionID, req.StudentCode, id)
	if err != nil {
		return nil, internalError(s.logger, err, failure)
	}
	if dup {
		return nil, badRequest(conflict)
	}
	record := current.AttendanceRecord
	record.SessionID = req.SessionID
	record.StudentCode = req.StudentCode
	record.Status = models.AttendanceStatus(req.Status)
	record.AttendanceDate = req.AttendanceDate
	if err := s.repo.Update(ctx, &record); err != nil {
		switch {
		case isNoRows(err):
			return nil, notFound("Attendance record")
		case errors.Is(err, repository.ErrUniqueViolation):
			return nil, badRequest(conflict)
		}
		return nil, writeError(s.logger, err, failure)
	}
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, internalError(s.logger, err, failure)
	}
	return detail, nil
}

func (s *AttendanceService) checkReferences(ctx context.Context, req AttendanceRequest, failure string) error {
	ok, err := s.sessions.Exists(ctx, req.SessionID)
	if err != nil {
		return internalError(s.logger, err, failure)
	}
	if !ok {
		return badRequest("Session not found")
	}
	ok, err = studentExists(ctx, s.students, req.StudentCode)
	if err != nil {
		return internalError(s.logger, err, failure)
	}
	if !ok {
		return badRequest("Student not found")
	}
	return nil
}
