package models

type Student struct {
	ID         int64  `json:"id" db:"id"`
	ClassID    int64  `json:"class_id" db:"class_id"`
	Name       string `json:"name" db:"name"`
	RollNumber string `json:"roll_number" db:"roll_number"`
}

// NewStudent is the payload for a student being added to a class, either
// individually or as part of a roster.
type NewStudent struct {
	Name       string `json:"name" validate:"required,min=1,max=255"`
	RollNumber string `json:"roll_number" validate:"required,min=1,max=64"`
}
