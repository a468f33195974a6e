package repository

import (
	"context"
	"reflect"
	"testing"

	"github.com/classtrack/attendance-service/internal/models"
)

func setupPhysics(t *testing.T) (ClassRepository, StudentRepository, AttendanceRepository, int64) {
	t.Helper()

	classRepo, studentRepo, attendanceRepo := newTestRepos(t)
	classID, err := classRepo.Create(context.Background(), "Physics", []models.NewStudent{
		{Name: "A", RollNumber: "1"},
		{Name: "B", RollNumber: "2"},
	})
	if err != nil {
		t.Fatalf("create Physics: %v", err)
	}

	return classRepo, studentRepo, attendanceRepo, classID
}

func TestAttendanceRepository_SaveAndGet(t *testing.T) {
	_, studentRepo, attendanceRepo, classID := setupPhysics(t)
	ctx := context.Background()

	saved, skipped, err := attendanceRepo.Save(ctx, classID, "2024-01-10", map[string]bool{
		"1": true,
		"2": false,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved != 2 {
		t.Errorf("saved = %d, want 2", saved)
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %v, want none", skipped)
	}

	marks, err := attendanceRepo.GetForDate(ctx, classID, "2024-01-10")
	if err != nil {
		t.Fatalf("get for date: %v", err)
	}
	want := map[string]bool{"1": true, "2": false}
	if !reflect.DeepEqual(marks, want) {
		t.Errorf("marks = %v, want %v", marks, want)
	}

	total, err := attendanceRepo.CountSessions(ctx, classID)
	if err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if total != 1 {
		t.Errorf("sessions = %d, want 1", total)
	}

	students, err := studentRepo.GetByClass(ctx, classID)
	if err != nil {
		t.Fatalf("get students: %v", err)
	}
	entries, err := attendanceRepo.GetForStudent(ctx, students[0].ID) // "A"
	if err != nil {
		t.Fatalf("get for student: %v", err)
	}
	wantEntries := []models.AttendanceEntry{{Date: "2024-01-10", Present: true}}
	if !reflect.DeepEqual(entries, wantEntries) {
		t.Errorf("entries = %v, want %v", entries, wantEntries)
	}
}

func TestAttendanceRepository_SaveIsIdempotentUpsert(t *testing.T) {
	_, _, attendanceRepo, classID := setupPhysics(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, _, err := attendanceRepo.Save(ctx, classID, "2024-05-01", map[string]bool{"1": true}); err != nil {
			t.Fatalf("save #%d: %v", i+1, err)
		}
	}

	repo := attendanceRepo.(*attendanceRepository)
	var rows int
	err := repo.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attendance WHERE class_id = ? AND date = ?`,
		classID, "2024-05-01",
	).Scan(&rows)
	if err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected exactly 1 attendance row, got %d", rows)
	}

	marks, err := attendanceRepo.GetForDate(ctx, classID, "2024-05-01")
	if err != nil {
		t.Fatalf("get for date: %v", err)
	}
	if !marks["1"] {
		t.Errorf("present = %v, want true", marks["1"])
	}
}

func TestAttendanceRepository_SaveOverwritesPresent(t *testing.T) {
	_, _, attendanceRepo, classID := setupPhysics(t)
	ctx := context.Background()

	if _, _, err := attendanceRepo.Save(ctx, classID, "2024-05-01", map[string]bool{"1": true}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, _, err := attendanceRepo.Save(ctx, classID, "2024-05-01", map[string]bool{"1": false}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	marks, err := attendanceRepo.GetForDate(ctx, classID, "2024-05-01")
	if err != nil {
		t.Fatalf("get for date: %v", err)
	}
	if present, ok := marks["1"]; !ok || present {
		t.Errorf("marks[1] = %v/%v, want false/marked", present, ok)
	}
}

func TestAttendanceRepository_SaveReportsUnresolvableRolls(t *testing.T) {
	_, _, attendanceRepo, classID := setupPhysics(t)

	saved, skipped, err := attendanceRepo.Save(context.Background(), classID, "2024-05-01", map[string]bool{
		"1":   true,
		"999": true,
		"998": false,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved != 1 {
		t.Errorf("saved = %d, want 1", saved)
	}
	if !reflect.DeepEqual(skipped, []string{"998", "999"}) {
		t.Errorf("skipped = %v, want [998 999]", skipped)
	}
}

func TestAttendanceRepository_DeleteForDate(t *testing.T) {
	_, _, attendanceRepo, classID := setupPhysics(t)
	ctx := context.Background()

	if _, _, err := attendanceRepo.Save(ctx, classID, "2024-01-10", map[string]bool{"1": true, "2": false}); err != nil {
		t.Fatalf("save: %v", err)
	}

	deleted, err := attendanceRepo.DeleteForDate(ctx, classID, "2024-01-10")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	marks, err := attendanceRepo.GetForDate(ctx, classID, "2024-01-10")
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if len(marks) != 0 {
		t.Errorf("expected empty marks, got %v", marks)
	}

	total, err := attendanceRepo.CountSessions(ctx, classID)
	if err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if total != 0 {
		t.Errorf("sessions = %d, want 0", total)
	}

	deleted, err = attendanceRepo.DeleteForDate(ctx, classID, "2024-01-10")
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if deleted != 0 {
		t.Errorf("second delete = %d, want 0", deleted)
	}
}

func TestAttendanceRepository_HistoryOrderedByDate(t *testing.T) {
	_, studentRepo, attendanceRepo, classID := setupPhysics(t)
	ctx := context.Background()

	for _, date := range []string{"2024-03-01", "2024-01-15", "2024-02-10"} {
		if _, _, err := attendanceRepo.Save(ctx, classID, date, map[string]bool{"1": true}); err != nil {
			t.Fatalf("save %s: %v", date, err)
		}
	}

	students, err := studentRepo.GetByClass(ctx, classID)
	if err != nil {
		t.Fatalf("get students: %v", err)
	}
	entries, err := attendanceRepo.GetForStudent(ctx, students[0].ID)
	if err != nil {
		t.Fatalf("get for student: %v", err)
	}

	want := []string{"2024-01-15", "2024-02-10", "2024-03-01"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, date := range want {
		if entries[i].Date != date {
			t.Errorf("entries[%d].Date = %q, want %q", i, entries[i].Date, date)
		}
	}

	dates, err := attendanceRepo.GetSessionDates(ctx, classID)
	if err != nil {
		t.Fatalf("get session dates: %v", err)
	}
	if !reflect.DeepEqual(dates, want) {
		t.Errorf("session dates = %v, want %v", dates, want)
	}
}

func TestAttendanceRepository_StaleClassIDYieldsEmptyMap(t *testing.T) {
	_, _, attendanceRepo := newTestRepos(t)

	marks, err := attendanceRepo.GetForDate(context.Background(), 42, "2024-01-10")
	if err != nil {
		t.Fatalf("get for date: %v", err)
	}
	if marks == nil {
		t.Fatal("expected empty map, got nil")
	}
	if len(marks) != 0 {
		t.Errorf("expected empty map, got %v", marks)
	}
}
