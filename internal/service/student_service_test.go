package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/pkg/validation"
)

func validStudentRequest() StudentRequest {
	return StudentRequest{
		StudentCode:     "S001",
		StudentNickname: "Sam",
		StudentName:     "Sam Lee",
		EmailAddress:    "sam@x.com",
		Campus:          "MAIN",
		Form:            "5A",
	}
}

func TestStudentServiceCreateRejectsDuplicateCode(t *testing.T) {
	repo := newMockStudentRepo()
	svc := NewStudentService(repo, nil, validation.New(), zap.NewNop())

	student, err := svc.Create(context.Background(), validStudentRequest())
	require.NoError(t, err)
	assert.Equal(t, "S001", student.StudentCode)
	assert.NotZero(t, student.ID)

	_, err = svc.Create(context.Background(), validStudentRequest())
	requireAppError(t, err, http.StatusBadRequest, "Student code already exists")
	assert.Equal(t, 1, repo.creates)
}

func TestStudentServiceCreateCollectsValidationErrors(t *testing.T) {
	repo := newMockStudentRepo()
	svc := NewStudentService(repo, nil, nil, nil)

	req := StudentRequest{StudentCode: "S0000000001", EmailAddress: "not-an-email", StudentImage: "%%%"}
	_, err := svc.Create(context.Background(), req)
	appErr := requireAppError(t, err, http.StatusBadRequest, "Validation failed")
	assert.Contains(t, appErr.Errors, "StudentCode must be 10 characters or less")
	assert.Contains(t, appErr.Errors, "StudentNickname is required")
	assert.Contains(t, appErr.Errors, "Invalid email format")
	assert.Contains(t, appErr.Errors, "StudentImage must be valid base64 encoded string")
	assert.Zero(t, repo.creates)
}

func TestStudentServiceCreateDecodesImage(t *testing.T) {
	repo := newMockStudentRepo()
	svc := NewStudentService(repo, nil, nil, nil)

	req := validStudentRequest()
	req.StudentImage = "aW1n"
	student, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), student.StudentImage)
}

func TestStudentServiceUpdate(t *testing.T) {
	repo := newMockStudentRepo(
		models.Student{ID: 1, StudentCode: "S001", StudentName: "Sam Lee"},
		models.Student{ID: 2, StudentCode: "S002", StudentName: "Ada Tan"},
	)
	svc := NewStudentService(repo, nil, nil, nil)

	req := validStudentRequest()
	req.StudentName = "Samuel Lee"
	updated, err := svc.Update(context.Background(), 1, req)
	require.NoError(t, err)
	assert.Equal(t, "Samuel Lee", updated.StudentName)

	req.StudentCode = "S002"
	_, err = svc.Update(context.Background(), 1, req)
	requireAppError(t, err, http.StatusBadRequest, "Student code already exists")

	_, err = svc.Update(context.Background(), 99, validStudentRequest())
	requireAppError(t, err, http.StatusNotFound, "Student not found")
}

func TestStudentServiceGetAndDelete(t *testing.T) {
	repo := newMockStudentRepo(models.Student{ID: 1, StudentCode: "S001"})
	svc := NewStudentService(repo, nil, nil, nil)

	_, err := svc.Get(context.Background(), 5)
	requireAppError(t, err, http.StatusNotFound, "Student not found")

	require.NoError(t, svc.Delete(context.Background(), 1))
	err = svc.Delete(context.Background(), 1)
	requireAppError(t, err, http.StatusNotFound, "Student not found")
}

func TestStudentServiceListFailureIsInternal(t *testing.T) {
	repo := newMockStudentRepo()
	repo.listErr = assert.AnError
	svc := NewStudentService(repo, nil, nil, nil)

	_, err := svc.List(context.Background())
	appErr := requireAppError(t, err, http.StatusInternalServerError, "Failed to fetch students")
	assert.ErrorIs(t, appErr, assert.AnError)
}

func TestStudentServiceDeleteDropsCachedClassLists(t *testing.T) {
	repo := newMockStudentRepo(models.Student{ID: 1, StudentCode: "S001"})
	cacheRepo := newMockCacheRepo()
	cache := NewCacheService(cacheRepo, nil, 0, nil, true)
	cache.Set(context.Background(), teacherClassesCacheKey("T001"), []models.TeacherClass{{Campus: "MAIN"}}, 0)
	svc := NewStudentService(repo, cache, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Empty(t, cacheRepo.data)
}
