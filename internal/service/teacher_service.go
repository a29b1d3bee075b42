package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/pkg/validation"
)

type teacherRepository interface {
	List(ctx context.Context) ([]models.Teacher, error)
	FindByID(ctx context.Context, id int64) (*models.Teacher, error)
	ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id int64) error
}

// TeacherRequest is the payload for creating or replacing a teacher.
type TeacherRequest struct {
	TeacherCode     string `json:"TeacherCode" validate:"required,max=10"`
	TeacherNickname string `json:"TeacherNickname" validate:"required,max=50"`
	TeacherName     string `json:"TeacherName" validate:"required,max=100"`
	TeacherImage    string `json:"TeacherImage" validate:"omitempty,base64"`
	EmailAddress    string `json:"EmailAddress" validate:"required,email,max=100"`
	Campus          string `json:"Campus" validate:"required,max=20"`
	Department      string `json:"Department" validate:"required,max=50"`
}

// TeacherService handles teacher use-cases. Every write drops the cached
// login roster.
type TeacherService struct {
	repo      teacherRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService builds the teacher service.
func NewTeacherService(repo teacherRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns all teachers.
func (s *TeacherService) List(ctx context.Context) ([]models.Teacher, error) {
	teachers, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(s.logger, err, "Failed to fetch teachers")
	}
	return teachers, nil
}

// Get returns one teacher.
func (s *TeacherService) Get(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("Teacher")
		}
		return nil, internalError(s.logger, err, "Failed to fetch teacher")
	}
	return teacher, nil
}

// Create registers a teacher.
func (s *TeacherService) Create(ctx context.Context, req TeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}
	exists, err := s.repo.ExistsByCode(ctx, req.TeacherCode, 0)
	if err != nil {
		return nil, internalError(s.logger, err, "Failed to create teacher")
	}
	if exists {
		return nil, badRequest("Teacher code already exists")
	}
	image, err := decodeImage(req.TeacherImage)
	if err != nil {
		return nil, badRequest("Invalid image data format")
	}
	teacher := &models.Teacher{
		TeacherCode:     req.TeacherCode,
		TeacherNickname: req.TeacherNickname,
		TeacherName:     req.TeacherName,
		TeacherImage:    image,
		EmailAddress:    req.EmailAddress,
		Campus:          req.Campus,
		Department:      req.Department,
	}
	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, writeError(s.logger, err, "Failed to create teacher")
	}
	s.cache.InvalidateAuth(ctx)
	return teacher, nil
}

// Update replaces a teacher.
func (s *TeacherService) Update(ctx context.Context, id int64, req TeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}
	teacher, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("Teacher")
		}
		return nil, internalError(s.logger, err, "Failed to update teacher")
	}
	taken, err := s.repo.ExistsByCode(ctx, req.TeacherCode, id)
	if err != nil {
		return nil, internalError(s.logger, err, "Failed to update teacher")
	}
	if taken {
		return nil, badRequest("Teacher code already exists")
	}
	image, err := decodeImage(req.TeacherImage)
	if err != nil {
		return nil, badRequest("Invalid image data format")
	}
	teacher.TeacherCode = req.TeacherCode
	teacher.TeacherNickname = req.TeacherNickname
	teacher.TeacherName = req.TeacherName
	teacher.TeacherImage = image
	teacher.EmailAddress = req.EmailAddress
	teacher.Campus = req.Campus
	teacher.Department = req.Department
	if err := s.repo.Update(ctx, teacher); err != nil {
		if isNoRows(err) {
			return nil, notFound("Teacher")
		}
		return nil, writeError(s.logger, err, "Failed to update teacher")
	}
	s.cache.InvalidateAuth(ctx)
	return teacher, nil
}

// Delete removes a teacher together with their classes and sessions.
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if isNoRows(err) {
			return notFound("Teacher")
		}
		return internalError(s.logger, err, "Failed to delete teacher")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if isNoRows(err) {
			return notFound("Teacher")
		}
		return internalError(s.logger, err, "Failed to delete teacher")
	}
	s.cache.InvalidateAuth(ctx)
	return nil
}
