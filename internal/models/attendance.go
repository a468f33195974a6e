package models

// AttendanceEntry is a single presence mark in a student's history.
// Date is always ISO YYYY-MM-DD.
type AttendanceEntry struct {
	Date    string `json:"date" db:"date"`
	Present bool   `json:"present" db:"present"`
}

// StudentAttendanceSummary is the per-student view: full history plus the
// aggregate counters the statistics screens show. Percentage is
// attended/total*100 rounded to two decimals, 0 when the class has held no
// sessions.
type StudentAttendanceSummary struct {
	Student       Student           `json:"student"`
	Entries       []AttendanceEntry `json:"entries"`
	AttendedCount int               `json:"attended_count"`
	TotalSessions int               `json:"total_sessions"`
	Percentage    float64           `json:"percentage"`
}

// AttendanceReport is the dense date x student matrix behind the printable
// export. Marks[studentID][date] is absent when the student was not marked
// for that session.
type AttendanceReport struct {
	Class    Class                     `json:"class"`
	Dates    []string                  `json:"dates"`
	Students []Student                 `json:"students"`
	Marks    map[int64]map[string]bool `json:"marks"`
}
