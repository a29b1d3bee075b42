package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Constraint violation kinds reported by PostgreSQL.
var (
	ErrUniqueViolation     = errors.New("unique violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrCheckViolation      = errors.New("check violation")
)

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateCheckViolation      = "23514"
)

// ConstraintError names the schema constraint that rejected a write.
type ConstraintError struct {
	Kind       error
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%v on %s: %v", e.Kind, e.Constraint, e.Err)
}

// Is reports whether target is the violation kind of e.
func (e *ConstraintError) Is(target error) bool {
	return target == e.Kind
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// ConstraintName returns the violated constraint carried by err, if any.
func ConstraintName(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Constraint
	}
	return ""
}

// classify turns driver constraint failures into *ConstraintError and wraps
// everything else with op.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		var kind error
		switch string(pqErr.Code) {
		case sqlStateUniqueViolation:
			kind = ErrUniqueViolation
		case sqlStateForeignKeyViolation:
			kind = ErrForeignKeyViolation
		case sqlStateCheckViolation:
			kind = ErrCheckViolation
		}
		if kind != nil {
			return &ConstraintError{Kind: kind, Constraint: pqErr.Constraint, Err: fmt.Errorf("%s: %w", op, err)}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
