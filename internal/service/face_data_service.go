package service

import (
	"context"
	"encoding/base64"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/pkg/validation"
)

const defaultFaceContentType = "image/jpeg"

type faceDataRepository interface {
	ListByPersonCode(ctx context.Context, personCode string) ([]models.FaceData, error)
	FindByID(ctx context.Context, id int64) (*models.FaceData, error)
	Create(ctx context.Context, item *models.FaceData) error
	Update(ctx context.Context, item *models.FaceData) error
	Delete(ctx context.Context, id int64) error
}

// FaceDataRequest registers a face image for a student or teacher.
// FaceDescriptor, when present, must be JSON text.
type FaceDataRequest struct {
	PersonType     string  `json:"PersonType" validate:"required,oneof=Student Teacher"`
	PersonCode     string  `json:"PersonCode" validate:"required,max=10"`
	ImageData      string  `json:"ImageData" validate:"required,base64"`
	FaceDescriptor *string `json:"FaceDescriptor" validate:"omitempty,json"`
	OriginalName   *string `json:"OriginalName" validate:"omitempty,max=255"`
	ContentType    string  `json:"ContentType" validate:"omitempty,max=100"`
}

// FaceDataService manages stored face images.
type FaceDataService struct {
	repo      faceDataRepository
	students  studentLookup
	teachers  teacherLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFaceDataService wires the face data service.
func NewFaceDataService(repo faceDataRepository, students studentLookup, teachers teacherLookup, validate *validator.Validate, logger *zap.Logger) *FaceDataService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FaceDataService{repo: repo, students: students, teachers: teachers, validator: validate, logger: logger}
}

// ListByPersonCode returns stored face data for a code, newest first.
func (s *FaceDataService) ListByPersonCode(ctx context.Context, personCode string) ([]models.FaceData, error) {
	items, err := s.repo.ListByPersonCode(ctx, personCode)
	if err != nil {
		return nil, internalError(s.logger, err, "Failed to fetch face data")
	}
	if len(items) == 0 {
		return nil, notFound("Face data")
	}
	return items, nil
}

// Create stores a face image.
func (s *FaceDataService) Create(ctx context.Context, req FaceDataRequest) (*models.FaceData, error) {
	const failure = "Failed to create face data"
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}
	item, err := s.build(ctx, req, failure)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, writeError(s.logger, err, failure)
	}
	return item, nil
}

// Update replaces a face data row.
func (s *FaceDataService) Update(ctx context.Context, id int64, req FaceDataRequest) (*models.FaceData, error) {
	const failure = "Failed to update face data"
	if err := s.validator.Struct(req); err != nil {
		return nil, validationFailed(err)
	}
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("Face data")
		}
		return nil, internalError(s.logger, err, failure)
	}
	item, err := s.build(ctx, req, failure)
	if err != nil {
		return nil, err
	}
	item.ID = current.ID
	item.CreatedDate = current.CreatedDate
	if err := s.repo.Update(ctx, item); err != nil {
		if isNoRows(err) {
			return nil, notFound("Face data")
		}
		return nil, writeError(s.logger, err, failure)
	}
	return item, nil
}

// Delete removes a face data row.
func (s *FaceDataService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if isNoRows(err) {
			return notFound("Face data")
		}
		return internalError(s.logger, err, "Failed to delete face data")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if isNoRows(err) {
			return notFound("Face data")
		}
		return internalError(s.logger, err, "Failed to delete face data")
	}
	return nil
}

// build checks the referenced person and decodes a validated payload.
func (s *FaceDataService) build(ctx context.Context, req FaceDataRequest, failure string) (*models.FaceData, error) {
	personType := models.PersonType(req.PersonType)
	var (
		ok  bool
		err error
	)
	switch personType {
	case models.PersonTypeStudent:
		ok, err = studentExists(ctx, s.students, req.PersonCode)
	case models.PersonTypeTeacher:
		ok, err = teacherExists(ctx, s.teachers, req.PersonCode)
	}
	if err != nil {
		return nil, internalError(s.logger, err, failure)
	}
	if !ok {
		return nil, badRequest(string(personType) + " not found")
	}
	image, err := base64.StdEncoding.DecodeString(req.ImageData)
	if err != nil {
		return nil, badRequest("Invalid image data format")
	}
	descriptor := req.FaceDescriptor
	if descriptor != nil && *descriptor == "" {
		descriptor = nil
	}
	originalName := req.OriginalName
	if originalName != nil && *originalName == "" {
		originalName = nil
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = defaultFaceContentType
	}
	return &models.FaceData{
		PersonType:     personType,
		PersonCode:     req.PersonCode,
		ImageData:      image,
		FaceDescriptor: descriptor,
		OriginalName:   originalName,
		ContentType:    contentType,
	}, nil
}
