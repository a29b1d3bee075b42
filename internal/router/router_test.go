package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/attendance-api/internal/handler"
	"github.com/noah-isme/attendance-api/internal/service"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(ctx context.Context) error { return p.err }

func newTestRouter(ping error, maxBody int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	return New(Options{Metrics: metrics, MaxBodyBytes: maxBody}, Handlers{
		Students:    handler.NewStudentHandler(nil),
		Teachers:    handler.NewTeacherHandler(nil),
		SubjectSets: handler.NewSubjectSetHandler(nil),
		Classes:     handler.NewClassHandler(nil),
		Sessions:    handler.NewSessionHandler(nil),
		Attendance:  handler.NewAttendanceHandler(nil, nil),
		FaceData:    handler.NewFaceDataHandler(nil),
		Auth:        handler.NewAuthHandler(nil),
		System:      handler.NewMetricsHandler(metrics, fakePinger{err: ping}, nil),
	})
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRootBanner(t *testing.T) {
	r := newTestRouter(nil, 0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Educational Attendance Management API is running", body["message"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(nil, 0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope?x=1", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Route /nope?x=1 not found"}`, w.Body.String())
}

func TestReadiness(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(nil, 0).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	newTestRouter(errors.New("down"), 0).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Database unavailable", decode(t, w)["message"])
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(nil, 0)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `attendance_api_http_requests_total{method="GET",path="/health",status="200"} 1`)
}

func TestBodyLimitRejectsLargePayload(t *testing.T) {
	r := newTestRouter(nil, 16)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/students", strings.NewReader(`{"StudentCode":"S001","StudentName":"Sam"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(nil, 0)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/students", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
