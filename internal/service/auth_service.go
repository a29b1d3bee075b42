package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/models"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
	"github.com/noah-isme/attendance-api/pkg/validation"
)

type teacherRoster interface {
	Roster(ctx context.Context) ([]models.TeacherSummary, error)
	FindSummaryByCode(ctx context.Context, code string) (*models.TeacherSummary, error)
}

type classRoster interface {
	TeacherClasses(ctx context.Context, teacherCode string) ([]models.TeacherClass, error)
	ClassStudents(ctx context.Context, teacherCode, campus, subjectSetID string) ([]models.ClassStudent, error)
}

type faceDescriptorStore interface {
	LatestDescriptor(ctx context.Context, personType models.PersonType, personCode string) (*string, error)
}

type attendanceMarker interface {
	Upsert(ctx context.Context, record *models.AttendanceRecord) (bool, error)
	FindByID(ctx context.Context, id int64) (*models.AttendanceDetail, error)
}

// TeacherFaceRequest asks for a teacher's stored descriptor.
type TeacherFaceRequest struct {
	TeacherCode    string      `json:"TeacherCode"`
	FaceDescriptor interface{} `json:"FaceDescriptor"`
}

// StudentFaceRequest asks for a student's stored descriptor.
type StudentFaceRequest struct {
	StudentCode    string      `json:"StudentCode"`
	FaceDescriptor interface{} `json:"FaceDescriptor"`
	SessionID      interface{} `json:"SessionId"`
}

// SessionRef is a session id bound from either a JSON number or a numeric
// string, so the value echoed by verify-student-face can be sent back as is.
type SessionRef int64

// UnmarshalJSON accepts 5, "5" and null.
func (r *SessionRef) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*r = 0
		return nil
	}
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = strings.TrimSpace(raw[1 : len(raw)-1])
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("SessionId must be an integer: %w", err)
	}
	*r = SessionRef(id)
	return nil
}

// MarkAttendanceRequest marks a student after a successful face match.
type MarkAttendanceRequest struct {
	SessionID      SessionRef `json:"SessionId"`
	StudentCode    string `json:"StudentCode" validate:"max=10"`
	Status         string `json:"Status" validate:"omitempty,oneof=Present Absent Late"`
	AttendanceDate string `json:"AttendanceDate" validate:"omitempty,datetime=2006-01-02"`
}

// TeacherFaceVerification pairs the stored and provided descriptors. The
// comparison itself happens on the client.
type TeacherFaceVerification struct {
	Teacher                *models.TeacherSummary `json:"teacher"`
	StoredFaceDescriptor   *string                `json:"storedFaceDescriptor"`
	ProvidedFaceDescriptor interface{}            `json:"providedFaceDescriptor"`
	Message                string                 `json:"message"`
}

// StudentFaceVerification is the student counterpart, echoing the session.
type StudentFaceVerification struct {
	Student                *models.StudentSummary `json:"student"`
	StoredFaceDescriptor   *string                `json:"storedFaceDescriptor"`
	ProvidedFaceDescriptor interface{}            `json:"providedFaceDescriptor"`
	SessionID              interface{}            `json:"sessionId"`
	Message                string                 `json:"message"`
}

// AuthService serves the face-login flow: teacher selection, descriptor
// retrieval, class rosters and attendance marking.
type AuthService struct {
	teachers   teacherRoster
	students   studentLookup
	classes    classRoster
	faces      faceDescriptorStore
	attendance attendanceMarker
	cache      *CacheService
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
}

// AuthServiceDeps groups AuthService collaborators.
type AuthServiceDeps struct {
	Teachers   teacherRoster
	Students   studentLookup
	Classes    classRoster
	Faces      faceDescriptorStore
	Attendance attendanceMarker
	Cache      *CacheService
	Metrics    *MetricsService
	Validator  *validator.Validate
	Logger     *zap.Logger
}

// NewAuthService builds the auth service.
func NewAuthService(deps AuthServiceDeps) *AuthService {
	if deps.Validator == nil {
		deps.Validator = validation.New()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &AuthService{
		teachers:   deps.Teachers,
		students:   deps.Students,
		classes:    deps.Classes,
		faces:      deps.Faces,
		attendance: deps.Attendance,
		cache:      deps.Cache,
		metrics:    deps.Metrics,
		validator:  deps.Validator,
		logger:     deps.Logger,
	}
}

// Teachers returns the login roster ordered by name.
func (s *AuthService) Teachers(ctx context.Context) ([]models.TeacherSummary, error) {
	var roster []models.TeacherSummary
	if s.cache.Get(ctx, teacherRosterCacheKey, &roster) {
		return roster, nil
	}
	roster, err := s.teachers.Roster(ctx)
	if err != nil {
		return nil, internalError(s.logger, err, "Failed to fetch teachers")
	}
	s.cache.Set(ctx, teacherRosterCacheKey, roster, 0)
	return roster, nil
}

// VerifyTeacherFace returns the teacher's newest stored descriptor next to
// the provided one.
func (s *AuthService) VerifyTeacherFace(ctx context.Context, req TeacherFaceRequest) (*TeacherFaceVerification, error) {
	if strings.TrimSpace(req.TeacherCode) == "" || isBlank(req.FaceDescriptor) {
		return nil, badRequest("TeacherCode and FaceDescriptor are required")
	}
	const failure = "Failed to verify teacher face"
	stored, err := s.latestDescriptor(ctx, models.PersonTypeTeacher, req.TeacherCode)
	if err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "No face data found for this teacher. Please register face first.")
		}
		return nil, internalError(s.logger, err, failure)
	}
	teacher, err := s.teachers.FindSummaryByCode(ctx, req.TeacherCode)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("Teacher")
		}
		return nil, internalError(s.logger, err, failure)
	}
	return &TeacherFaceVerification{
		Teacher:                teacher,
		StoredFaceDescriptor:   stored,
		ProvidedFaceDescriptor: req.FaceDescriptor,
		Message:                "Face descriptors retrieved for comparison",
	}, nil
}

// TeacherClasses lists the teacher's (campus, subject set) pairs.
func (s *AuthService) TeacherClasses(ctx context.Context, teacherCode string) ([]models.TeacherClass, error) {
	key := teacherClassesCacheKey(teacherCode)
	var classes []models.TeacherClass
	if s.cache.Get(ctx, key, &classes) {
		return classes, nil
	}
	classes, err := s.classes.TeacherClasses(ctx, teacherCode)
	if err != nil {
		return nil, internalError(s.logger, err, "Failed to fetch teacher classes")
	}
	s.cache.Set(ctx, key, classes, 0)
	return classes, nil
}

// ClassStudents lists students enrolled with a teacher in one subject set.
func (s *AuthService) ClassStudents(ctx context.Context, teacherCode, campus, subjectSetID string) ([]models.ClassStudent, error) {
	students, err := s.classes.ClassStudents(ctx, teacherCode, campus, subjectSetID)
	if err != nil {
		return nil, internalError(s.logger, err, "Failed to fetch class students")
	}
	return students, nil
}

// VerifyStudentFace returns the student's newest stored descriptor.
func (s *AuthService) VerifyStudentFace(ctx context.Context, req StudentFaceRequest) (*StudentFaceVerification, error) {
	if strings.TrimSpace(req.StudentCode) == "" || isBlank(req.FaceDescriptor) {
		return nil, badRequest("StudentCode and FaceDescriptor are required")
	}
	const failure = "Failed to verify student face"
	stored, err := s.latestDescriptor(ctx, models.PersonTypeStudent, req.StudentCode)
	if err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "No face data found for this student. Please register face first.")
		}
		return nil, internalError(s.logger, err, failure)
	}
	student, err := s.students.FindSummaryByCode(ctx, req.StudentCode)
	if err != nil {
		if isNoRows(err) {
			return nil, notFound("Student")
		}
		return nil, internalError(s.logger, err, failure)
	}
	return &StudentFaceVerification{
		Student:                student,
		StoredFaceDescriptor:   stored,
		ProvidedFaceDescriptor: req.FaceDescriptor,
		SessionID:              req.SessionID,
		Message:                "Student face descriptors retrieved for comparison",
	}, nil
}

// MarkAttendance inserts or updates the (session, student) record in a
// single statement. The boolean reports whether a new record was created.
func (s *AuthService) MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (*models.AttendanceDetail, bool, error) {
	if req.SessionID <= 0 || strings.TrimSpace(req.StudentCode) == "" {
		return nil, false, badRequest("SessionId and StudentCode are required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, false, validationFailed(err)
	}
	record := &models.AttendanceRecord{
		SessionID:      int64(req.SessionID),
		StudentCode:    req.StudentCode,
		Status:         models.AttendanceStatus(req.Status),
		AttendanceDate: req.AttendanceDate,
	}
	if record.Status == "" {
		record.Status = models.AttendanceStatusPresent
	}
	if record.AttendanceDate == "" {
		record.AttendanceDate = validation.Today()
	}
	const failure = "Failed to mark attendance"
	inserted, err := s.attendance.Upsert(ctx, record)
	if err != nil {
		return nil, false, writeError(s.logger, err, failure)
	}
	s.metrics.RecordAttendanceMark(inserted)
	detail, err := s.attendance.FindByID(ctx, record.ID)
	if err != nil {
		return nil, false, internalError(s.logger, err, failure)
	}
	return detail, inserted, nil
}

func (s *AuthService) latestDescriptor(ctx context.Context, personType models.PersonType, code string) (*string, error) {
	stored, err := s.faces.LatestDescriptor(ctx, personType, code)
	if err == nil || isNoRows(err) {
		s.metrics.RecordFaceLookup(string(personType), err == nil)
	}
	return stored, err
}

func isBlank(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}
