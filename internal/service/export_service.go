package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/pkg/export"
)

// Export formats accepted by the attendance export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var attendanceExportHeaders = []string{"StudentCode", "StudentName", "Status", "AttendanceDate"}

type sessionReader interface {
	FindByID(ctx context.Context, id int64) (*models.SessionDetail, error)
}

type sessionAttendanceReader interface {
	ListBySession(ctx context.Context, sessionID int64) ([]models.AttendanceDetail, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders a session's attendance roster as a document.
type ExportService struct {
	sessions   sessionReader
	attendance sessionAttendanceReader
	exporters  map[string]export.Exporter
	logger     *zap.Logger
}

// NewExportService constructs an ExportService with the CSV and PDF renderers.
func NewExportService(sessions sessionReader, attendance sessionAttendanceReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		sessions:   sessions,
		attendance: attendance,
		exporters: map[string]export.Exporter{
			ExportFormatCSV: export.NewCSVExporter(),
			ExportFormatPDF: export.NewPDFExporter(),
		},
		logger: logger,
	}
}

// ExportSessionAttendance renders the roster of sessionID in format, which
// defaults to CSV.
func (s *ExportService) ExportSessionAttendance(ctx context.Context, sessionID int64, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, badRequest(fmt.Sprintf("Unsupported export format: %s", format))
	}
	const failure = "Failed to export session attendance"
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("Session")
		}
		return nil, internalError(s.logger, err, failure)
	}
	records, err := s.attendance.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, internalError(s.logger, err, failure)
	}

	dataset := export.Dataset{Headers: attendanceExportHeaders, Rows: make([]map[string]string, 0, len(records))}
	for _, record := range records {
		name := ""
		if record.StudentName != nil {
			name = *record.StudentName
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"StudentCode":    record.StudentCode,
			"StudentName":    name,
			"Status":         string(record.Status),
			"AttendanceDate": record.AttendanceDate,
		})
	}
	title := fmt.Sprintf("Attendance - %s (%s)", session.SessionName, session.SessionDate)
	payload, err := exporter.Render(dataset, title)
	if err != nil {
		return nil, internalError(s.logger, err, failure)
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("attendance-session-%d.%s", sessionID, exporter.Extension()),
		ContentType: exporter.ContentType(),
		Data:        payload,
	}, nil
}
