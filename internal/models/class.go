package models

type Class struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type ClassWithStats struct {
	Class
	StudentCount int `json:"student_count" db:"student_count"`
	SessionCount int `json:"session_count" db:"session_count"`
}
