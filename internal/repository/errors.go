package repository

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// Typed errors surfaced by the repositories and mapped to HTTP codes in the
// delivery layer.
var (
	ErrDuplicateName       = errors.New("class with this name already exists")
	ErrDuplicateRollNumber = errors.New("roll number already used in this class")
	ErrClassNotFound       = errors.New("class not found")
	ErrStudentNotFound     = errors.New("student not found")
)

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
