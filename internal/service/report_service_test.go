package service

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/classtrack/attendance-service/internal/models"
	"github.com/classtrack/attendance-service/internal/repository"
)

func setupReportClass(t *testing.T, svc testServices) (int64, []models.Student) {
	t.Helper()
	ctx := context.Background()

	class, err := svc.class.CreateClass(ctx, &models.CreateClassRequest{
		Name: "Physics",
		Students: []models.NewStudent{
			{Name: "A", RollNumber: "1"},
			{Name: "B", RollNumber: "2"},
		},
	})
	if err != nil {
		t.Fatalf("create class: %v", err)
	}

	saves := []struct {
		date  string
		marks map[string]bool
	}{
		{"2024-01-10", map[string]bool{"1": true, "2": false}},
		{"2024-01-11", map[string]bool{"1": true}}, // B not marked that day
	}
	for _, s := range saves {
		if _, err := svc.attendance.SaveAttendance(ctx, class.ID, &models.SaveAttendanceRequest{
			Date:  s.date,
			Marks: s.marks,
		}); err != nil {
			t.Fatalf("save %s: %v", s.date, err)
		}
	}

	students, err := svc.student.ListStudents(ctx, class.ID)
	if err != nil {
		t.Fatalf("list students: %v", err)
	}

	return class.ID, students
}

func TestReportService_BuildReport(t *testing.T) {
	svc := newTestServices(t)
	classID, students := setupReportClass(t, svc)

	report, err := svc.report.BuildReport(context.Background(), classID)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	if report.Class.Name != "Physics" {
		t.Errorf("class name = %q", report.Class.Name)
	}
	if !reflect.DeepEqual(report.Dates, []string{"2024-01-10", "2024-01-11"}) {
		t.Errorf("dates = %v", report.Dates)
	}
	if len(report.Students) != 2 {
		t.Fatalf("expected 2 students, got %d", len(report.Students))
	}

	a, b := students[0], students[1]
	if !report.Marks[a.ID]["2024-01-10"] || !report.Marks[a.ID]["2024-01-11"] {
		t.Errorf("marks for A = %v", report.Marks[a.ID])
	}
	if present := report.Marks[b.ID]["2024-01-10"]; present {
		t.Errorf("B should be marked absent on 2024-01-10")
	}
	if _, marked := report.Marks[b.ID]["2024-01-11"]; marked {
		t.Errorf("B should be unmarked on 2024-01-11, got %v", report.Marks[b.ID])
	}
}

func TestReportService_BuildReportMissingClass(t *testing.T) {
	svc := newTestServices(t)

	_, err := svc.report.BuildReport(context.Background(), 404)
	if !errors.Is(err, repository.ErrClassNotFound) {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}
}

func TestReportService_ExportXLSX(t *testing.T) {
	svc := newTestServices(t)
	classID, _ := setupReportClass(t, svc)

	data, filename, err := svc.report.ExportXLSX(context.Background(), classID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if !strings.HasPrefix(filename, "attendance_Physics_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("filename = %q", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open exported file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Attendance")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}

	// Header + one row per student.
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	wantHeader := []string{"Name", "Roll No", "2024-01-10", "2024-01-11", "Attended", "Sessions", "Percentage"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header = %v, want %v", rows[0], wantHeader)
	}

	// A: present both days.
	wantA := []string{"A", "1", "P", "P", "2", "2", "100"}
	if !reflect.DeepEqual(rows[1], wantA) {
		t.Errorf("row A = %v, want %v", rows[1], wantA)
	}

	// B: absent on day one, unmarked on day two.
	wantB := []string{"B", "2", "A", "-", "0", "2", "0"}
	if !reflect.DeepEqual(rows[2], wantB) {
		t.Errorf("row B = %v, want %v", rows[2], wantB)
	}
}
