package repository

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/classtrack/attendance-service/internal/config"
	"github.com/classtrack/attendance-service/internal/database"
)

// newTestDB opens a migrated throwaway store in a temp dir.
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

func newTestRepos(t *testing.T) (ClassRepository, StudentRepository, AttendanceRepository) {
	t.Helper()

	db := newTestDB(t)
	log := zerolog.Nop()

	return NewClassRepository(db, log),
		NewStudentRepository(db, log),
		NewAttendanceRepository(db, log)
}
