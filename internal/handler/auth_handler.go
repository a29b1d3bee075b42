package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/internal/service"
	"github.com/noah-isme/attendance-api/pkg/response"
)

type authService interface {
	Teachers(ctx context.Context) ([]models.TeacherSummary, error)
	VerifyTeacherFace(ctx context.Context, req service.TeacherFaceRequest) (*service.TeacherFaceVerification, error)
	TeacherClasses(ctx context.Context, teacherCode string) ([]models.TeacherClass, error)
	ClassStudents(ctx context.Context, teacherCode, campus, subjectSetID string) ([]models.ClassStudent, error)
	VerifyStudentFace(ctx context.Context, req service.StudentFaceRequest) (*service.StudentFaceVerification, error)
	MarkAttendance(ctx context.Context, req service.MarkAttendanceRequest) (*models.AttendanceDetail, bool, error)
}

// AuthHandler wires the face-login flow to HTTP. Descriptor matching is
// done by the client; these endpoints only hand back stored data.
type AuthHandler struct {
	service authService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Teachers godoc
// @Summary Teacher roster for login selection
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/teachers [get]
func (h *AuthHandler) Teachers(c *gin.Context) {
	roster, err := h.service.Teachers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Teachers retrieved for login selection", roster)
}

// VerifyTeacherFace godoc
// @Summary Fetch a teacher's stored face descriptor
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body service.TeacherFaceRequest true "Teacher code and descriptor"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /auth/verify-teacher-face [post]
func (h *AuthHandler) VerifyTeacherFace(c *gin.Context) {
	var req service.TeacherFaceRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.VerifyTeacherFace(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Teacher face verification data retrieved", result)
}

// TeacherClasses godoc
// @Summary Subject sets taught by a teacher
// @Tags Authentication
// @Produce json
// @Param teacherCode path string true "Teacher code"
// @Success 200 {object} response.Envelope
// @Router /auth/teacher-classes/{teacherCode} [get]
func (h *AuthHandler) TeacherClasses(c *gin.Context) {
	classes, err := h.service.TeacherClasses(c.Request.Context(), strings.TrimSpace(c.Param("teacherCode")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Teacher classes retrieved successfully", classes)
}

// ClassStudents godoc
// @Summary Students enrolled in a teacher's subject set
// @Tags Authentication
// @Produce json
// @Param teacherCode path string true "Teacher code"
// @Param campus path string true "Campus"
// @Param subjectSetId path string true "Subject set ID"
// @Success 200 {object} response.Envelope
// @Router /auth/class-students/{teacherCode}/{campus}/{subjectSetId} [get]
func (h *AuthHandler) ClassStudents(c *gin.Context) {
	students, err := h.service.ClassStudents(c.Request.Context(), c.Param("teacherCode"), c.Param("campus"), c.Param("subjectSetId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Class students retrieved successfully", students)
}

// VerifyStudentFace godoc
// @Summary Fetch a student's stored face descriptor
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body service.StudentFaceRequest true "Student code, descriptor and session"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /auth/verify-student-face [post]
func (h *AuthHandler) VerifyStudentFace(c *gin.Context) {
	var req service.StudentFaceRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.VerifyStudentFace(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Student face verification data retrieved", result)
}

// MarkAttendance godoc
// @Summary Mark or update a student's attendance for a session
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body service.MarkAttendanceRequest true "Attendance mark"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /auth/mark-attendance [post]
func (h *AuthHandler) MarkAttendance(c *gin.Context) {
	var req service.MarkAttendanceRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	record, inserted, err := h.service.MarkAttendance(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	message := "Attendance updated successfully"
	if inserted {
		message = "Attendance marked successfully"
	}
	response.OK(c, message, record)
}
