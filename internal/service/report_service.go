package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/classtrack/attendance-service/internal/models"
	"github.com/classtrack/attendance-service/internal/repository"
)

type ReportService interface {
	BuildReport(ctx context.Context, classID int64) (*models.AttendanceReport, error)
	ExportXLSX(ctx context.Context, classID int64) ([]byte, string, error)
}

type reportService struct {
	classRepo      repository.ClassRepository
	studentRepo    repository.StudentRepository
	attendanceRepo repository.AttendanceRepository
	logger         zerolog.Logger
}

func NewReportService(
	classRepo repository.ClassRepository,
	studentRepo repository.StudentRepository,
	attendanceRepo repository.AttendanceRepository,
	logger zerolog.Logger,
) ReportService {
	return &reportService{
		classRepo:      classRepo,
		studentRepo:    studentRepo,
		attendanceRepo: attendanceRepo,
		logger:         logger,
	}
}

// BuildReport assembles the dense date x student matrix: every student of
// the class against every session date. A missing entry in Marks means the
// student was not marked for that session.
func (s *reportService) BuildReport(ctx context.Context, classID int64) (*models.AttendanceReport, error) {
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	if class == nil {
		return nil, repository.ErrClassNotFound
	}

	students, err := s.studentRepo.GetByClass(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	dates, err := s.attendanceRepo.GetSessionDates(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session dates: %w", err)
	}

	rollToID := make(map[string]int64, len(students))
	for _, student := range students {
		rollToID[student.RollNumber] = student.ID
	}

	marks := make(map[int64]map[string]bool)
	for _, date := range dates {
		dayMarks, err := s.attendanceRepo.GetForDate(ctx, classID, date)
		if err != nil {
			return nil, fmt.Errorf("failed to get attendance for %s: %w", date, err)
		}

		for rollNumber, present := range dayMarks {
			studentID, ok := rollToID[rollNumber]
			if !ok {
				continue
			}
			if marks[studentID] == nil {
				marks[studentID] = make(map[string]bool, len(dates))
			}
			marks[studentID][date] = present
		}
	}

	return &models.AttendanceReport{
		Class:    *class,
		Dates:    dates,
		Students: students,
		Marks:    marks,
	}, nil
}

// ExportXLSX renders the report as a printable spreadsheet: one row per
// student, one column per session date, P/A cells ("-" for unmarked), then
// attended count and percentage. Returns the file bytes and a suggested
// file name.
func (s *reportService) ExportXLSX(ctx context.Context, classID int64) ([]byte, string, error) {
	report, err := s.BuildReport(ctx, classID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Name", "Roll No"}
	headers = append(headers, report.Dates...)
	headers = append(headers, "Attended", "Sessions", "Percentage")

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", err
		}
	}

	totalSessions := len(report.Dates)
	for rowIdx, student := range report.Students {
		row := rowIdx + 2

		attended := 0
		values := []interface{}{student.Name, student.RollNumber}
		for _, date := range report.Dates {
			present, marked := report.Marks[student.ID][date]
			switch {
			case !marked:
				values = append(values, "-")
			case present:
				values = append(values, "P")
				attended++
			default:
				values = append(values, "A")
			}
		}
		values = append(values, attended, totalSessions, Percentage(attended, totalSessions))

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write excel file: %w", err)
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx",
		sanitizeFilename(report.Class.Name),
		uuid.New().String()[:8],
	)

	s.logger.Info().
		Int64("class_id", classID).
		Int("students", len(report.Students)).
		Int("sessions", totalSessions).
		Str("filename", filename).
		Msg("Attendance report exported")

	return buf.Bytes(), filename, nil
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
