package service

import (
	"context"

	"github.com/noah-isme/attendance-api/internal/models"
)

// Narrow read-only views over other repositories, used for reference checks.

type subjectSetLookup interface {
	Exists(ctx context.Context, campus, subjectSetID string) (bool, error)
}

type teacherLookup interface {
	FindSummaryByCode(ctx context.Context, code string) (*models.TeacherSummary, error)
}

type studentLookup interface {
	FindSummaryByCode(ctx context.Context, code string) (*models.StudentSummary, error)
}

type sessionLookup interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

func teacherExists(ctx context.Context, teachers teacherLookup, code string) (bool, error) {
	if _, err := teachers.FindSummaryByCode(ctx, code); err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func studentExists(ctx context.Context, students studentLookup, code string) (bool, error) {
	if _, err := students.FindSummaryByCode(ctx, code); err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
