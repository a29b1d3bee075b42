package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/pkg/validation"
)

type classRepository interface {
	List(ctx context.Context) ([]models.ClassDetail, error)
	FindByID(ctx context.Context, id int64) (*models.ClassDetail, error)
	Exists(ctx context.Context, class *models.Class) (bool, error)
	Create(ctx context.Context, class *models.Class) error
}

// ClassRequest enrolls a student with a teacher in a subject set.
type ClassRequest struct {
	Campus       string `json:"Campus" validate:"required,max=20"`
	SubjectSetID string `json:"SubjectSetID" validate:"required,max=20"`
	TeacherCode  string `json:"TeacherCode" validate:"required,max=10"`
	StudentCode  string `json:"StudentCode" validate:"required,max=10"`
}

// ClassService manages class enrollments.
type ClassService struct {
	repo        classRepository
	subjectSets subjectSetLookup
	teachers    teacherLookup
	students    studentLookup
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewClassService wires the class service.
func NewClassService(repo classRepository, subjectSets subjectSetLookup, teachers teacherLookup, students studentLookup, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{
		repo:        repo,
		subjectSets: subjectSets,
		teachers:    teachers,
		students:    students,
		cache:       cache,
		validator:   validate,
		logger:      logger,
	}
}

// List returns every enrollment with display names.
func (s *ClassService) List(ctx context.Context) ([]models.ClassDetail, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(s.logger, err, "Failed to fetch classes")
	}
	return classes, nil
}

// Get returns one enrollment.
func (s *ClassService) Get(ctx context.Context, id int64) (*models.ClassDetail, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("Class")
		}
		return nil, internalError(s.logger, err, "Failed to fetch class")
	}
	return class, nil
}

// Create enrolls a student after checking every reference.
func (s *ClassService) Create(ctx context.Context, req ClassRequest) (*models.ClassDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}
	const failure = "Failed to create class"

	ok, err := s.subjectSets.Exists(ctx, req.Campus, req.SubjectSetID)
	if err != nil {
		return nil, internalError(s.logger, err, failure)
	}
	if !ok {
		return nil, badRequest("Subject set not found for this campus")
	}
	if ok, err = teacherExists(ctx, s.teachers, req.TeacherCode); err != nil {
		return nil, internalError(s.logger, err, failure)
	} else if !ok {
		return nil, badRequest("Teacher not found")
	}
	if ok, err = studentExists(ctx, s.students, req.StudentCode); err != nil {
		return nil, internalError(s.logger, err, failure)
	} else if !ok {
		return nil, badRequest("Student not found")
	}

	class := &models.Class{
		Campus:       req.Campus,
		SubjectSetID: req.SubjectSetID,
		TeacherCode:  req.TeacherCode,
		StudentCode:  req.StudentCode,
	}
	dup, err := s.repo.Exists(ctx, class)
	if err != nil {
		return nil, internalError(s.logger, err, failure)
	}
	if dup {
		return nil, badRequest("Class enrollment already exists")
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, writeError(s.logger, err, failure)
	}
	s.cache.InvalidateTeacherClasses(ctx, class.TeacherCode)

	detail, err := s.repo.FindByID(ctx, class.ID)
	if err != nil {
		return nil, internalError(s.logger, err, failure)
	}
	return detail, nil
}
