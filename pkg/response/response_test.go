package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreatedEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Created(c, "Student created successfully", map[string]string{"StudentCode": "S001"})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Student created successfully", body["message"])
	assert.Equal(t, "S001", body["data"].(map[string]interface{})["StudentCode"])
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestOKWithNilDataKeepsKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, "Student deleted successfully", nil)

	body := decode(t, w)
	_, present := body["data"]
	assert.True(t, present)
	assert.Nil(t, body["data"])
}

func TestErrorValidationListsDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, appErrors.WithDetails(appErrors.ErrValidation, []string{"StudentCode is required", "Invalid email format"}))

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["message"])
	assert.Len(t, body["errors"], 2)
}

func TestErrorHidesInternalCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, errors.New("pq: connection refused"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Internal server error", body["message"])
	_, leaked := body["error"]
	assert.False(t, leaked)
}

func TestErrorHidesCauseInGinDebugModeByDefault(t *testing.T) {
	gin.SetMode(gin.DebugMode)
	defer gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, appErrors.Internal(errors.New("pq: password authentication failed at 10.0.0.5:5432"), "Failed to fetch students"))

	body := decode(t, w)
	assert.Equal(t, "Failed to fetch students", body["message"])
	_, leaked := body["error"]
	assert.False(t, leaked)
}

func TestErrorExposesCauseWhenEnabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ExposeInternalErrors(true)
	defer ExposeInternalErrors(false)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, appErrors.Internal(errors.New("pq: connection refused"), "Failed to fetch students"))

	body := decode(t, w)
	assert.Equal(t, "Failed to fetch students", body["message"])
	assert.Equal(t, "pq: connection refused", body["error"])
}
