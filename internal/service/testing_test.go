package service

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/classtrack/attendance-service/internal/config"
	"github.com/classtrack/attendance-service/internal/database"
	"github.com/classtrack/attendance-service/internal/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		BusyTimeout: time.Second,
	}

	db, err := database.NewSQLite(cfg)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	migrator, err := database.NewMigrator(db)
	if err != nil {
		t.Fatalf("failed to create migrator: %v", err)
	}
	if err := migrator.Up(); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	return db
}

type testServices struct {
	class      ClassService
	student    StudentService
	attendance AttendanceService
	report     ReportService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()

	db := newTestDB(t)
	log := zerolog.Nop()

	classRepo := repository.NewClassRepository(db, log)
	studentRepo := repository.NewStudentRepository(db, log)
	attendanceRepo := repository.NewAttendanceRepository(db, log)

	roster := NewRoster(config.RosterConfig{})

	return testServices{
		class:      NewClassService(classRepo, roster, log),
		student:    NewStudentService(studentRepo, log),
		attendance: NewAttendanceService(attendanceRepo, studentRepo, log),
		report:     NewReportService(classRepo, studentRepo, attendanceRepo, log),
	}
}
