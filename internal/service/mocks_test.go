package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/attendance-api/internal/models"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

func requireAppError(t *testing.T, err error, status int, message string) *appErrors.Error {
	t.Helper()
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr), "expected *errors.Error, got %T", err)
	require.Equal(t, status, appErr.Status)
	require.Equal(t, message, appErr.Message)
	return appErr
}

type mockStudentRepo struct {
	students  map[int64]models.Student
	nextID    int64
	creates   int
	listErr   error
	createErr error
}

func newMockStudentRepo(students ...models.Student) *mockStudentRepo {
	m := &mockStudentRepo{students: map[int64]models.Student{}}
	for _, s := range students {
		m.students[s.ID] = s
		if s.ID > m.nextID {
			m.nextID = s.ID
		}
	}
	return m
}

func (m *mockStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.Student, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	s, ok := m.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (m *mockStudentRepo) FindSummaryByCode(ctx context.Context, code string) (*models.StudentSummary, error) {
	for _, s := range m.students {
		if s.StudentCode == code {
			return &models.StudentSummary{ID: s.ID, StudentCode: s.StudentCode, StudentName: s.StudentName, StudentNickname: s.StudentNickname, Campus: s.Campus, Form: s.Form}, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	for id, s := range m.students {
		if s.StudentCode == code && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	m.creates++
	student.ID = m.nextID
	student.CreatedDate = time.Now()
	student.UpdatedDate = student.CreatedDate
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error {
	if _, ok := m.students[student.ID]; !ok {
		return sql.ErrNoRows
	}
	m.students[student.ID] = *student
	return nil
}

func (m *mockStudentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.students[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.students, id)
	return nil
}

type mockTeacherRepo struct {
	teachers    map[int64]models.Teacher
	nextID      int64
	rosterCalls int
}

func newMockTeacherRepo(teachers ...models.Teacher) *mockTeacherRepo {
	m := &mockTeacherRepo{teachers: map[int64]models.Teacher{}}
	for _, t := range teachers {
		m.teachers[t.ID] = t
		if t.ID > m.nextID {
			m.nextID = t.ID
		}
	}
	return m
}

func (m *mockTeacherRepo) List(ctx context.Context) ([]models.Teacher, error) {
	out := make([]models.Teacher, 0, len(m.teachers))
	for _, t := range m.teachers {
		out = append(out, t)
	}
	return out, nil
}

func (m *mockTeacherRepo) Roster(ctx context.Context) ([]models.TeacherSummary, error) {
	m.rosterCalls++
	out := make([]models.TeacherSummary, 0, len(m.teachers))
	for _, t := range m.teachers {
		out = append(out, models.TeacherSummary{ID: t.ID, TeacherCode: t.TeacherCode, TeacherName: t.TeacherName, TeacherNickname: t.TeacherNickname, Campus: t.Campus, Department: t.Department})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeacherName < out[j].TeacherName })
	return out, nil
}

func (m *mockTeacherRepo) FindByID(ctx context.Context, id int64) (*models.Teacher, error) {
	t, ok := m.teachers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &t, nil
}

func (m *mockTeacherRepo) FindSummaryByCode(ctx context.Context, code string) (*models.TeacherSummary, error) {
	for _, t := range m.teachers {
		if t.TeacherCode == code {
			return &models.TeacherSummary{ID: t.ID, TeacherCode: t.TeacherCode, TeacherName: t.TeacherName, TeacherNickname: t.TeacherNickname, Campus: t.Campus, Department: t.Department}, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockTeacherRepo) ExistsByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	for id, t := range m.teachers {
		if t.TeacherCode == code && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	m.nextID++
	teacher.ID = m.nextID
	m.teachers[teacher.ID] = *teacher
	return nil
}

func (m *mockTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	if _, ok := m.teachers[teacher.ID]; !ok {
		return sql.ErrNoRows
	}
	m.teachers[teacher.ID] = *teacher
	return nil
}

func (m *mockTeacherRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.teachers[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.teachers, id)
	return nil
}

type mockSubjectSetRepo struct {
	sets   map[int64]models.SubjectSet
	nextID int64
}

func newMockSubjectSetRepo(sets ...models.SubjectSet) *mockSubjectSetRepo {
	m := &mockSubjectSetRepo{sets: map[int64]models.SubjectSet{}}
	for _, s := range sets {
		m.nextID++
		s.ID = m.nextID
		m.sets[s.ID] = s
	}
	return m
}

func (m *mockSubjectSetRepo) List(ctx context.Context) ([]models.SubjectSet, error) {
	out := make([]models.SubjectSet, 0, len(m.sets))
	for _, s := range m.sets {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockSubjectSetRepo) FindByID(ctx context.Context, id int64) (*models.SubjectSet, error) {
	s, ok := m.sets[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (m *mockSubjectSetRepo) Exists(ctx context.Context, campus, subjectSetID string) (bool, error) {
	for _, s := range m.sets {
		if s.Campus == campus && s.SubjectSetID == subjectSetID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSubjectSetRepo) Create(ctx context.Context, set *models.SubjectSet) error {
	m.nextID++
	set.ID = m.nextID
	m.sets[set.ID] = *set
	return nil
}

type mockClassRepo struct {
	classes map[int64]models.ClassDetail
	nextID  int64
	creates int
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{classes: map[int64]models.ClassDetail{}}
}

func (m *mockClassRepo) List(ctx context.Context) ([]models.ClassDetail, error) {
	out := make([]models.ClassDetail, 0, len(m.classes))
	for _, c := range m.classes {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockClassRepo) FindByID(ctx context.Context, id int64) (*models.ClassDetail, error) {
	c, ok := m.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (m *mockClassRepo) Exists(ctx context.Context, class *models.Class) (bool, error) {
	for _, c := range m.classes {
		if c.Campus == class.Campus && c.SubjectSetID == class.SubjectSetID && c.TeacherCode == class.TeacherCode && c.StudentCode == class.StudentCode {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockClassRepo) Create(ctx context.Context, class *models.Class) error {
	m.nextID++
	m.creates++
	class.ID = m.nextID
	m.classes[class.ID] = models.ClassDetail{Class: *class}
	return nil
}

func (m *mockClassRepo) TeacherClasses(ctx context.Context, teacherCode string) ([]models.TeacherClass, error) {
	counts := map[string]*models.TeacherClass{}
	var keys []string
	for _, c := range m.classes {
		if c.TeacherCode != teacherCode {
			continue
		}
		key := c.Campus + "|" + c.SubjectSetID
		if _, ok := counts[key]; !ok {
			counts[key] = &models.TeacherClass{Campus: c.Campus, SubjectSetID: c.SubjectSetID}
			keys = append(keys, key)
		}
		counts[key].StudentCount++
	}
	sort.Strings(keys)
	out := make([]models.TeacherClass, 0, len(keys))
	for _, k := range keys {
		out = append(out, *counts[k])
	}
	return out, nil
}

func (m *mockClassRepo) ClassStudents(ctx context.Context, teacherCode, campus, subjectSetID string) ([]models.ClassStudent, error) {
	var out []models.ClassStudent
	for _, c := range m.classes {
		if c.TeacherCode == teacherCode && c.Campus == campus && c.SubjectSetID == subjectSetID {
			out = append(out, models.ClassStudent{StudentCode: c.StudentCode})
		}
	}
	return out, nil
}

type mockSessionRepo struct {
	sessions  map[int64]models.SessionDetail
	nextID    int64
	creates   int
	createErr error
}

func newMockSessionRepo(sessions ...models.Session) *mockSessionRepo {
	m := &mockSessionRepo{sessions: map[int64]models.SessionDetail{}}
	for _, s := range sessions {
		m.sessions[s.ID] = models.SessionDetail{Session: s}
		if s.ID > m.nextID {
			m.nextID = s.ID
		}
	}
	return m
}

func (m *mockSessionRepo) List(ctx context.Context) ([]models.SessionDetail, error) {
	out := make([]models.SessionDetail, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id int64) (*models.SessionDetail, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (m *mockSessionRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := m.sessions[id]
	return ok, nil
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.Session) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	m.creates++
	session.ID = m.nextID
	m.sessions[session.ID] = models.SessionDetail{Session: *session}
	return nil
}

func (m *mockSessionRepo) Update(ctx context.Context, session *models.Session) error {
	if _, ok := m.sessions[session.ID]; !ok {
		return sql.ErrNoRows
	}
	m.sessions[session.ID] = models.SessionDetail{Session: *session}
	return nil
}

type mockAttendanceRepo struct {
	records   map[int64]models.AttendanceDetail
	nextID    int64
	creates   int
	upsertErr error
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: map[int64]models.AttendanceDetail{}}
}

func (m *mockAttendanceRepo) List(ctx context.Context) ([]models.AttendanceDetail, error) {
	out := make([]models.AttendanceDetail, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockAttendanceRepo) ListBySession(ctx context.Context, sessionID int64) ([]models.AttendanceDetail, error) {
	var out []models.AttendanceDetail
	for _, r := range m.records {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentCode < out[j].StudentCode })
	return out, nil
}

func (m *mockAttendanceRepo) FindByID(ctx context.Context, id int64) (*models.AttendanceDetail, error) {
	r, ok := m.records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &r, nil
}

func (m *mockAttendanceRepo) ExistsForSessionStudent(ctx context.Context, sessionID int64, studentCode string, excludeID int64) (bool, error) {
	for id, r := range m.records {
		if r.SessionID == sessionID && r.StudentCode == studentCode && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAttendanceRepo) Create(ctx context.Context, record *models.AttendanceRecord) error {
	m.nextID++
	m.creates++
	record.ID = m.nextID
	m.records[record.ID] = models.AttendanceDetail{AttendanceRecord: *record}
	return nil
}

func (m *mockAttendanceRepo) Update(ctx context.Context, record *models.AttendanceRecord) error {
	if _, ok := m.records[record.ID]; !ok {
		return sql.ErrNoRows
	}
	m.records[record.ID] = models.AttendanceDetail{AttendanceRecord: *record}
	return nil
}

func (m *mockAttendanceRepo) Upsert(ctx context.Context, record *models.AttendanceRecord) (bool, error) {
	if m.upsertErr != nil {
		return false, m.upsertErr
	}
	for id, r := range m.records {
		if r.SessionID == record.SessionID && r.StudentCode == record.StudentCode {
			record.ID = id
			m.records[id] = models.AttendanceDetail{AttendanceRecord: *record}
			return false, nil
		}
	}
	return true, m.Create(ctx, record)
}

type mockFaceRepo struct {
	items  map[int64]models.FaceData
	nextID int64
}

func newMockFaceRepo(items ...models.FaceData) *mockFaceRepo {
	m := &mockFaceRepo{items: map[int64]models.FaceData{}}
	for _, item := range items {
		m.nextID++
		item.ID = m.nextID
		if item.CreatedDate.IsZero() {
			item.CreatedDate = time.Now().Add(time.Duration(m.nextID) * time.Second)
		}
		m.items[item.ID] = item
	}
	return m
}

func (m *mockFaceRepo) ListByPersonCode(ctx context.Context, personCode string) ([]models.FaceData, error) {
	out := []models.FaceData{}
	for _, item := range m.items {
		if item.PersonCode == personCode {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedDate.After(out[j].CreatedDate) })
	return out, nil
}

func (m *mockFaceRepo) FindByID(ctx context.Context, id int64) (*models.FaceData, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &item, nil
}

func (m *mockFaceRepo) LatestDescriptor(ctx context.Context, personType models.PersonType, personCode string) (*string, error) {
	var latest *models.FaceData
	for _, item := range m.items {
		item := item
		if item.PersonType == personType && item.PersonCode == personCode {
			if latest == nil || item.CreatedDate.After(latest.CreatedDate) {
				latest = &item
			}
		}
	}
	if latest == nil {
		return nil, sql.ErrNoRows
	}
	return latest.FaceDescriptor, nil
}

func (m *mockFaceRepo) Create(ctx context.Context, item *models.FaceData) error {
	m.nextID++
	item.ID = m.nextID
	m.items[item.ID] = *item
	return nil
}

func (m *mockFaceRepo) Update(ctx context.Context, item *models.FaceData) error {
	if _, ok := m.items[item.ID]; !ok {
		return sql.ErrNoRows
	}
	m.items[item.ID] = *item
	return nil
}

func (m *mockFaceRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

type mockCacheRepo struct {
	data map[string][]byte
	sets int
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{data: map[string][]byte{}}
}

func (m *mockCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.sets++
	m.data[key] = raw
	return nil
}

func (m *mockCacheRepo) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *mockCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			delete(m.data, k)
		}
	}
	return nil
}
