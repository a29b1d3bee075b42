package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/pkg/validation"
)

type subjectSetRepository interface {
	List(ctx context.Context) ([]models.SubjectSet, error)
	FindByID(ctx context.Context, id int64) (*models.SubjectSet, error)
	Exists(ctx context.Context, campus, subjectSetID string) (bool, error)
	Create(ctx context.Context, set *models.SubjectSet) error
}

// SubjectSetRequest is the payload for registering a subject set.
type SubjectSetRequest struct {
	Campus                string  `json:"Campus" validate:"required,max=20"`
	SubjectSetID          string  `json:"SubjectSetID" validate:"required,max=20"`
	Subject               string  `json:"Subject" validate:"required,max=100"`
	SubjectSetDescription *string `json:"SubjectSetDescription"`
	Credits               *int    `json:"Credits" validate:"required,gte=0"`
}

// SubjectSetService manages subject sets.
type SubjectSetService struct {
	repo      subjectSetRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectSetService builds the service.
func NewSubjectSetService(repo subjectSetRepository, validate *validator.Validate, logger *zap.Logger) *SubjectSetService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectSetService{repo: repo, validator: validate, logger: logger}
}

// List returns all subject sets.
func (s *SubjectSetService) List(ctx context.Context) ([]models.SubjectSet, error) {
	sets, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(s.logger, err, "Failed to fetch subject sets")
	}
	return sets, nil
}

// Get returns one subject set.
func (s *SubjectSetService) Get(ctx context.Context, id int64) (*models.SubjectSet, error) {
	set, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("Subject set")
		}
		return nil, internalError(s.logger, err, "Failed to fetch subject set")
	}
	return set, nil
}

// Create registers a subject set unique per campus.
func (s *SubjectSetService) Create(ctx context.Context, req SubjectSetRequest) (*models.SubjectSet, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}
	exists, err := s.repo.Exists(ctx, req.Campus, req.SubjectSetID)
	if err != nil {
		return nil, internalError(s.logger, err, "Failed to create subject set")
	}
	if exists {
		return nil, badRequest("Subject set ID already exists for this campus")
	}
	set := &models.SubjectSet{
		Campus:                req.Campus,
		SubjectSetID:          req.SubjectSetID,
		Subject:               req.Subject,
		SubjectSetDescription: req.SubjectSetDescription,
		Credits:               *req.Credits,
	}
	if err := s.repo.Create(ctx, set); err != nil {
		return nil, writeError(s.logger, err, "Failed to create subject set")
	}
	return set, nil
}
