package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/internal/service"
	"github.com/noah-isme/attendance-api/pkg/response"
)

type attendanceService interface {
	List(ctx context.Context) ([]models.AttendanceDetail, error)
	ListBySession(ctx context.Context, sessionID int64) ([]models.AttendanceDetail, error)
	Create(ctx context.Context, req service.AttendanceRequest) (*models.AttendanceDetail, error)
	Update(ctx context.Context, id int64, req service.AttendanceRequest) (*models.AttendanceDetail, error)
}

type attendanceExporter interface {
	ExportSessionAttendance(ctx context.Context, sessionID int64, format string) (*service.ExportFile, error)
}

// AttendanceHandler exposes attendance record endpoints and the roster export.
type AttendanceHandler struct {
	attendance attendanceService
	exports    attendanceExporter
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance attendanceService, exports attendanceExporter) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, exports: exports}
}

// List godoc
// @Summary List attendance records
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	records, err := h.attendance.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Attendance records retrieved successfully", records)
}

// ListBySession godoc
// @Summary List attendance for a session
// @Tags Attendance
// @Produce json
// @Param sessionId path int true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /attendance/session/{sessionId} [get]
func (h *AttendanceHandler) ListBySession(c *gin.Context) {
	sessionID, err := parseID(c, "sessionId")
	if err != nil {
		response.Error(c, err)
		return
	}
	records, err := h.attendance.ListBySession(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Session attendance records retrieved successfully", records)
}

// Create godoc
// @Summary Record attendance
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.AttendanceRequest true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Create(c *gin.Context) {
	var req service.AttendanceRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.attendance.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Attendance record created successfully", record)
}

// Update godoc
// @Summary Update attendance record
// @Tags Attendance
// @Accept json
// @Produce json
// @Param id path int true "Attendance record ID"
// @Param payload body service.AttendanceRequest true "Attendance payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /attendance/{id} [put]
func (h *AttendanceHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.AttendanceRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	record, err := h.attendance.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Attendance record updated successfully", record)
}

// Export godoc
// @Summary Export a session's attendance roster
// @Tags Attendance
// @Produce text/csv
// @Produce application/pdf
// @Param sessionId path int true "Session ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /attendance/session/{sessionId}/export [get]
func (h *AttendanceHandler) Export(c *gin.Context) {
	sessionID, err := parseID(c, "sessionId")
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exports.ExportSessionAttendance(c.Request.Context(), sessionID, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
