package service

import "errors"

// Typed errors for mapping onto HTTP codes in the delivery layer. Repository
// errors (duplicate name, duplicate roll number, not found) pass through
// wrapped and are matched with errors.Is.
var (
	ErrEmptyName    = errors.New("name must not be empty")
	ErrInvalidDate  = errors.New("date must be in YYYY-MM-DD format")
	ErrUnknownBatch = errors.New("unknown roster batch")
	ErrNoMarks      = errors.New("attendance marks must not be empty")
)
