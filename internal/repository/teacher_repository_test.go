package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/attendance-api/internal/models"
)

func TestTeacherRepositoryRosterOrderedByName(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	rows := sqlmock.NewRows([]string{"id", "teacher_code", "teacher_name", "teacher_nickname", "campus", "department"}).
		AddRow(1, "T001", "Ana Lim", "Ana", "Main", "Science").
		AddRow(2, "T002", "Ben Koh", "Ben", "Main", "Math")
	mock.ExpectQuery(regexp.QuoteMeta("FROM teachers ORDER BY teacher_name ASC")).WillReturnRows(rows)

	roster, err := repo.Roster(context.Background())
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "T001", roster[0].TeacherCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryFindSummaryByCode(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery("FROM teachers WHERE teacher_code = \\$1").
		WithArgs("T001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "teacher_code", "teacher_name", "teacher_nickname", "campus", "department"}).
			AddRow(1, "T001", "Ana Lim", "Ana", "Main", "Science"))
	mock.ExpectQuery("FROM teachers WHERE teacher_code = \\$1").
		WithArgs("T404").
		WillReturnError(sql.ErrNoRows)

	summary, err := repo.FindSummaryByCode(context.Background(), "T001")
	require.NoError(t, err)
	assert.Equal(t, "Ana Lim", summary.TeacherName)

	_, err = repo.FindSummaryByCode(context.Background(), "T404")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryCreateAndUpdate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO teachers").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_date", "updated_date"}).AddRow(3, now, now))
	mock.ExpectExec("UPDATE teachers SET").WillReturnResult(sqlmock.NewResult(0, 1))

	teacher := &models.Teacher{TeacherCode: "T003", TeacherName: "Cara Ng", EmailAddress: "cara@x.edu", Campus: "Main", Department: "Art"}
	require.NoError(t, repo.Create(context.Background(), teacher))
	assert.Equal(t, int64(3), teacher.ID)

	teacher.Department = "Music"
	require.NoError(t, repo.Update(context.Background(), teacher))
	assert.False(t, teacher.UpdatedDate.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectExec("DELETE FROM teachers").WithArgs(int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
