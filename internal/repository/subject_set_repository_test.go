package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/attendance-api/internal/models"
)

func TestSubjectSetRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSubjectSetRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO subject_sets").
		WithArgs("Main", "MATH1", "Mathematics", nil, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_date", "updated_date"}).AddRow(9, now, now))

	set := &models.SubjectSet{Campus: "Main", SubjectSetID: "MATH1", Subject: "Mathematics", Credits: 3}
	require.NoError(t, repo.Create(context.Background(), set))
	assert.Equal(t, int64(9), set.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectSetRepositoryCreateDuplicate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSubjectSetRepository(db)

	mock.ExpectQuery("INSERT INTO subject_sets").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "subject_sets_campus_subject_set_id_key"})

	err := repo.Create(context.Background(), &models.SubjectSet{Campus: "Main", SubjectSetID: "MATH1", Subject: "Mathematics"})
	assert.True(t, errors.Is(err, ErrUniqueViolation))
}

func TestSubjectSetRepositoryExists(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSubjectSetRepository(db)

	mock.ExpectQuery("FROM subject_sets WHERE campus").
		WithArgs("Main", "MATH1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery("FROM subject_sets WHERE campus").
		WithArgs("Main", "ART9").
		WillReturnError(sql.ErrNoRows)

	ok, err := repo.Exists(context.Background(), "Main", "MATH1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(context.Background(), "Main", "ART9")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSubjectSetRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSubjectSetRepository(db)

	mock.ExpectQuery("FROM subject_sets WHERE id").WithArgs(int64(5)).WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 5)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}
