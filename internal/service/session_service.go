package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/models"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
	"github.com/noah-isme/attendance-api/pkg/validation"
)

type sessionRepository interface {
	List(ctx context.Context) ([]models.SessionDetail, error)
	FindByID(ctx context.Context, id int64) (*models.SessionDetail, error)
	Create(ctx context.Context, session *models.Session) error
	Update(ctx context.Context, session *models.Session) error
}

// SessionRequest describes one scheduled meeting.
type SessionRequest struct {
	SessionName  string `json:"SessionName" validate:"required,max=100"`
	SubjectSetID string `json:"SubjectSetID" validate:"required,max=20"`
	TeacherCode  string `json:"TeacherCode" validate:"required,max=10"`
	Campus       string `json:"Campus" validate:"required,max=20"`
	SessionDate  string `json:"SessionDate" validate:"required,datetime=2006-01-02"`
	StartTime    string `json:"StartTime" validate:"required,clock"`
	EndTime      string `json:"EndTime" validate:"required,clock"`
}

// SessionService manages sessions.
type SessionService struct {
	repo        sessionRepository
	subjectSets subjectSetLookup
	teachers    teacherLookup
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewSessionService wires the session service.
func NewSessionService(repo sessionRepository, subjectSets subjectSetLookup, teachers teacherLookup, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{repo: repo, subjectSets: subjectSets, teachers: teachers, validator: validate, logger: logger}
}

// List returns sessions, most recent first.
func (s *SessionService) List(ctx context.Context) ([]models.SessionDetail, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(s.logger, err, "Failed to fetch sessions")
	}
	return sessions, nil
}

// Get returns one session.
func (s *SessionService) Get(ctx context.Context, id int64) (*models.SessionDetail, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("Session")
		}
		return nil, internalError(s.logger, err, "Failed to fetch session")
	}
	return session, nil
}

// Create schedules a session.
func (s *SessionService) Create(ctx context.Context, req SessionRequest) (*models.SessionDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}
	const failure = "Failed to create session"
	if err := s.checkRequest(ctx, req, failure); err != nil {
		return nil, err
	}
	session := &models.Session{
		SessionName:  req.SessionName,
		SubjectSetID: req.SubjectSetID,
		TeacherCode:  req.TeacherCode,
		Campus:       req.Campus,
		SessionDate:  req.SessionDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, writeError(s.logger, err, failure)
	}
	detail, err := s.repo.FindByID(ctx, session.ID)
	if err != nil {
		return nil, internalError(s.logger, err, failure)
	}
	return detail, nil
}

// Update replaces a session.
func (s *SessionService) Update(ctx context.Context, id int64, req SessionRequest) (*models.SessionDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}
	const failure = "Failed to update session"
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("Session")
		}
		return nil, internalError(s.logger, err, failure)
	}
	if err := s.checkRequest(ctx, req, failure); err != nil {
		return nil, err
	}
	session := current.Session
	session.SessionName = req.SessionName
	session.SubjectSetID = req.SubjectSetID
	session.TeacherCode = req.TeacherCode
	session.Campus = req.Campus
	session.SessionDate = req.SessionDate
	session.StartTime = req.StartTime
	session.EndTime = req.EndTime
	if err := s.repo.Update(ctx, &session); err != nil {
		if isNoRows(err) {
			return nil, notFound("Session")
		}
		return nil, writeError(s.logger, err, failure)
	}
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, internalError(s.logger, err, failure)
	}
	return detail, nil
}

// checkRequest enforces time ordering first, then the subject set and
// teacher references.
func (s *SessionService) checkRequest(ctx context.Context, req SessionRequest, failure string) *appErrors.Error {
	start, _ := validation.ParseClock(req.StartTime)
	end, _ := validation.ParseClock(req.EndTime)
	if !start.Before(end) {
		return badRequest("Start time must be before end time")
	}
	ok, err := s.subjectSets.Exists(ctx, req.Campus, req.SubjectSetID)
	if err != nil {
		return internalError(s.logger, err, failure)
	}
	if !ok {
		return badRequest("Subject set not found for this campus")
	}
	ok, err = teacherExists(ctx, s.teachers, req.TeacherCode)
	if err != nil {
		return internalError(s.logger, err, failure)
	}
	if !ok {
		return badRequest("Teacher not found")
	}
	return nil
}
