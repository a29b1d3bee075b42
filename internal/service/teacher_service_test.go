package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/attendance-api/internal/models"
)

func validTeacherRequest() TeacherRequest {
	return TeacherRequest{
		TeacherCode:     "T001",
		TeacherNickname: "Ana",
		TeacherName:     "Ana Lim",
		EmailAddress:    "ana@x.com",
		Campus:          "MAIN",
		Department:      "Science",
	}
}

func TestTeacherServiceCreate(t *testing.T) {
	repo := newMockTeacherRepo()
	svc := NewTeacherService(repo, nil, nil, nil)

	teacher, err := svc.Create(context.Background(), validTeacherRequest())
	require.NoError(t, err)
	assert.Equal(t, "Ana Lim", teacher.TeacherName)

	_, err = svc.Create(context.Background(), validTeacherRequest())
	requireAppError(t, err, http.StatusBadRequest, "Teacher code already exists")
	assert.Len(t, repo.teachers, 1)
}

func TestTeacherServiceValidation(t *testing.T) {
	svc := NewTeacherService(newMockTeacherRepo(), nil, nil, nil)

	req := validTeacherRequest()
	req.Department = ""
	req.EmailAddress = "ana"
	_, err := svc.Create(context.Background(), req)
	appErr := requireAppError(t, err, http.StatusBadRequest, "Validation failed")
	assert.ElementsMatch(t, []string{"Invalid email format", "Department is required"}, appErr.Errors)
}

func TestTeacherServiceUpdateKeepsOwnCode(t *testing.T) {
	repo := newMockTeacherRepo(models.Teacher{ID: 4, TeacherCode: "T001", TeacherName: "Ana"})
	svc := NewTeacherService(repo, nil, nil, nil)

	updated, err := svc.Update(context.Background(), 4, validTeacherRequest())
	require.NoError(t, err)
	assert.Equal(t, "Science", updated.Department)

	_, err = svc.Update(context.Background(), 5, validTeacherRequest())
	requireAppError(t, err, http.StatusNotFound, "Teacher not found")
}

func TestTeacherServiceWritesInvalidateRoster(t *testing.T) {
	repo := newMockTeacherRepo()
	cacheRepo := newMockCacheRepo()
	cache := NewCacheService(cacheRepo, nil, 0, nil, true)
	cache.Set(context.Background(), teacherRosterCacheKey, []models.TeacherSummary{}, 0)
	svc := NewTeacherService(repo, cache, nil, nil)

	teacher, err := svc.Create(context.Background(), validTeacherRequest())
	require.NoError(t, err)
	assert.NotContains(t, cacheRepo.data, teacherRosterCacheKey)

	cache.Set(context.Background(), teacherRosterCacheKey, []models.TeacherSummary{}, 0)
	require.NoError(t, svc.Delete(context.Background(), teacher.ID))
	assert.NotContains(t, cacheRepo.data, teacherRosterCacheKey)
}
