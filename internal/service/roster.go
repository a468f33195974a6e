package service

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/classtrack/attendance-service/internal/config"
	"github.com/classtrack/attendance-service/internal/models"
)

// Batch is a predefined roster usable to bulk-populate a new class.
type Batch struct {
	Name     string              `json:"name"`
	Students []models.NewStudent `json:"students"`
}

// Roster holds the predefined batches. Batches from the config file replace
// the built-in defaults.
type Roster struct {
	batches map[string][]models.NewStudent
}

func NewRoster(cfg config.RosterConfig) *Roster {
	batches := defaultBatches()
	if len(cfg.Batches) > 0 {
		batches = make(map[string][]models.NewStudent, len(cfg.Batches))
		for name, students := range cfg.Batches {
			converted := make([]models.NewStudent, 0, len(students))
			for _, s := range students {
				converted = append(converted, models.NewStudent{
					Name:       s.Name,
					RollNumber: s.RollNumber,
				})
			}
			batches[name] = converted
		}
	}

	return &Roster{batches: batches}
}

func (r *Roster) Batches() []Batch {
	names := make([]string, 0, len(r.batches))
	for name := range r.batches {
		names = append(names, name)
	}
	sort.Strings(names)

	batches := make([]Batch, 0, len(names))
	for _, name := range names {
		batches = append(batches, Batch{Name: name, Students: r.batches[name]})
	}

	return batches
}

func (r *Roster) Get(name string) ([]models.NewStudent, bool) {
	students, ok := r.batches[name]
	return students, ok
}

func defaultBatches() map[string][]models.NewStudent {
	return map[string][]models.NewStudent{
		"Batch A": {
			{Name: "Student 1", RollNumber: "1001"},
			{Name: "Student 2", RollNumber: "1002"},
		},
		"Batch B": {
			{Name: "Student 3", RollNumber: "1003"},
			{Name: "Student 4", RollNumber: "1004"},
			{Name: "Student 5", RollNumber: "1005"},
		},
		"Batch C": {
			{Name: "Student 6", RollNumber: "1006"},
		},
	}
}

// ParseStudentsXLSX reads a roster spreadsheet: column A roll number, column
// B name, first row assumed to be a header. Rows missing either field are
// skipped; the count of skipped rows is returned alongside the parsed
// students.
func ParseStudentsXLSX(file io.Reader) ([]models.NewStudent, int, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("excel file does not contain any sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}

	var (
		students []models.NewStudent
		skipped  int
	)
	for i, row := range rows {
		if i == 0 {
			continue
		}

		var rollNumber, name string
		if len(row) > 0 {
			rollNumber = row[0]
		}
		if len(row) > 1 {
			name = row[1]
		}

		if rollNumber == "" || name == "" {
			skipped++
			continue
		}

		students = append(students, models.NewStudent{
			Name:       name,
			RollNumber: rollNumber,
		})
	}

	return students, skipped, nil
}
