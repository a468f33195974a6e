package models

// Data Transfer Objects

type CreateClassRequest struct {
	Name     string       `json:"name" validate:"required,min=1,max=255"`
	Students []NewStudent `json:"students" validate:"omitempty,dive"`
	// Batch names a predefined roster to populate the class from. Mutually
	// exclusive with Students.
	Batch string `json:"batch" validate:"omitempty,max=255"`
}

type CreateClassResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type RenameClassRequest struct {
	NewName string `json:"new_name" validate:"required,min=1,max=255"`
}

type UpdateStudentNameRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type SaveAttendanceRequest struct {
	Date string `json:"date" validate:"required"`
	// Marks maps roll number to presence.
	Marks map[string]bool `json:"marks" validate:"required"`
}

type SaveAttendanceResponse struct {
	Saved int `json:"saved"`
	// SkippedRollNumbers lists marks whose roll number did not resolve to a
	// student in the class (stale roster on the caller's side).
	SkippedRollNumbers []string `json:"skipped_roll_numbers,omitempty"`
}

type SessionsResponse struct {
	Dates []string `json:"dates"`
	Total int      `json:"total"`
}

type ImportStudentsResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
