package service

import (
	"context"
	"encoding/base64"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/pkg/validation"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// StudentRequest is the payload for creating or replacing a student.
type StudentRequest struct {
	StudentCode     string `json:"StudentCode" validate:"required,max=10"`
	StudentNickname string `json:"StudentNickname" validate:"required,max=50"`
	StudentName     string `json:"StudentName" validate:"required,max=100"`
	StudentImage    string `json:"StudentImage" validate:"omitempty,base64"`
	EmailAddress    string `json:"EmailAddress" validate:"required,email,max=100"`
	Campus          string `json:"Campus" validate:"required,max=20"`
	Form            string `json:"Form" validate:"required,max=20"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service. cache may be nil.
func NewStudentService(repo studentRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns all students.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(s.logger, err, "Failed to fetch students")
	}
	return students, nil
}

// Get returns one student.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("Student")
		}
		return nil, internalError(s.logger, err, "Failed to fetch student")
	}
	return student, nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}
	exists, err := s.repo.ExistsByCode(ctx, req.StudentCode, 0)
	if err != nil {
		return nil, internalError(s.logger, err, "Failed to create student")
	}
	if exists {
		return nil, badRequest("Student code already exists")
	}
	image, err := decodeImage(req.StudentImage)
	if err != nil {
		return nil, badRequest("Invalid image data format")
	}
	student := &models.Student{
		StudentCode:     req.StudentCode,
		StudentNickname: req.StudentNickname,
		StudentName:     req.StudentName,
		StudentImage:    image,
		EmailAddress:    req.EmailAddress,
		Campus:          req.Campus,
		Form:            req.Form,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, writeError(s.logger, err, "Failed to create student")
	}
	return student, nil
}

// Update replaces an existing student. An omitted image clears the stored one.
func (s *StudentService) Update(ctx context.Context, id int64, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("Student")
		}
		return nil, internalError(s.logger, err, "Failed to update student")
	}
	exists, err := s.repo.ExistsByCode(ctx, req.StudentCode, id)
	if err != nil {
		return nil, internalError(s.logger, err, "Failed to update student")
	}
	if exists {
		return nil, badRequest("Student code already exists")
	}
	image, err := decodeImage(req.StudentImage)
	if err != nil {
		return nil, badRequest("Invalid image data format")
	}
	current.StudentCode = req.StudentCode
	current.StudentNickname = req.StudentNickname
	current.StudentName = req.StudentName
	current.StudentImage = image
	current.EmailAddress = req.EmailAddress
	current.Campus = req.Campus
	current.Form = req.Form
	if err := s.repo.Update(ctx, current); err != nil {
		if isNoRows(err) {
			return nil, notFound("Student")
		}
		return nil, writeError(s.logger, err, "Failed to update student")
	}
	s.cache.InvalidateAuth(ctx)
	return current, nil
}

// Delete removes a student and, through cascades, their enrollments and
// attendance.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if isNoRows(err) {
			return notFound("Student")
		}
		return internalError(s.logger, err, "Failed to delete student")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if isNoRows(err) {
			return notFound("Student")
		}
		return internalError(s.logger, err, "Failed to delete student")
	}
	s.cache.InvalidateAuth(ctx)
	return nil
}

func decodeImage(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(raw)
}
