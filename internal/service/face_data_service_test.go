package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/attendance-api/internal/models"
)

func newFaceFixture(items ...models.FaceData) (*FaceDataService, *mockFaceRepo) {
	repo := newMockFaceRepo(items...)
	students := newMockStudentRepo(models.Student{ID: 1, StudentCode: "S001"})
	teachers := newMockTeacherRepo(models.Teacher{ID: 1, TeacherCode: "T001"})
	return NewFaceDataService(repo, students, teachers, nil, nil), repo
}

func strPtr(s string) *string { return &s }

func TestFaceDataServiceCreateDefaults(t *testing.T) {
	svc, repo := newFaceFixture()

	item, err := svc.Create(context.Background(), FaceDataRequest{
		PersonType:     "Teacher",
		PersonCode:     "T001",
		ImageData:      "aW1n",
		FaceDescriptor: strPtr("[0.12, 0.5]"),
	})
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", item.ContentType)
	assert.Equal(t, []byte("img"), item.ImageData)
	assert.Nil(t, item.OriginalName)
	assert.Len(t, repo.items, 1)
}

func TestFaceDataServiceRejectsBadPayloadBeforeWrite(t *testing.T) {
	svc, repo := newFaceFixture()

	_, err := svc.Create(context.Background(), FaceDataRequest{
		PersonType:     "student",
		PersonCode:     "S001",
		ImageData:      "not base64!",
		FaceDescriptor: strPtr("{oops"),
	})
	appErr := requireAppError(t, err, http.StatusBadRequest, "Validation failed")
	assert.ElementsMatch(t, []string{
		`PersonType must be either "Student" or "Teacher"`,
		"ImageData must be valid base64 encoded string",
		"FaceDescriptor must be valid JSON format",
	}, appErr.Errors)
	assert.Empty(t, repo.items)
}

func TestFaceDataServiceUnknownPerson(t *testing.T) {
	svc, repo := newFaceFixture()

	_, err := svc.Create(context.Background(), FaceDataRequest{PersonType: "Student", PersonCode: "S999", ImageData: "aW1n"})
	requireAppError(t, err, http.StatusBadRequest, "Student not found")

	_, err = svc.Create(context.Background(), FaceDataRequest{PersonType: "Teacher", PersonCode: "T999", ImageData: "aW1n"})
	requireAppError(t, err, http.StatusBadRequest, "Teacher not found")
	assert.Empty(t, repo.items)
}

func TestFaceDataServiceListUpdateDelete(t *testing.T) {
	svc, _ := newFaceFixture(models.FaceData{PersonType: models.PersonTypeStudent, PersonCode: "S001", ImageData: []byte("a"), ContentType: "image/png"})

	_, err := svc.ListByPersonCode(context.Background(), "S404")
	requireAppError(t, err, http.StatusNotFound, "Face data not found")

	items, err := svc.ListByPersonCode(context.Background(), "S001")
	require.NoError(t, err)
	require.Len(t, items, 1)

	updated, err := svc.Update(context.Background(), items[0].ID, FaceDataRequest{PersonType: "Student", PersonCode: "S001", ImageData: "aW1n", ContentType: "image/webp"})
	require.NoError(t, err)
	assert.Equal(t, "image/webp", updated.ContentType)
	assert.Equal(t, items[0].CreatedDate, updated.CreatedDate)

	_, err = svc.Update(context.Background(), 99, FaceDataRequest{PersonType: "Student", PersonCode: "S001", ImageData: "aW1n"})
	requireAppError(t, err, http.StatusNotFound, "Face data not found")

	require.NoError(t, svc.Delete(context.Background(), items[0].ID))
	requireAppError(t, svc.Delete(context.Background(), items[0].ID), http.StatusNotFound, "Face data not found")
}
