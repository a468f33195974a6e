package repository

import (
	"context"
	"database/sql"
	"sort"

	"github.com/rs/zerolog"

	"github.com/classtrack/attendance-service/internal/models"
)

type AttendanceRepository interface {
	Save(ctx context.Context, classID int64, date string, marks map[string]bool) (int, []string, error)
	GetForDate(ctx context.Context, classID int64, date string) (map[string]bool, error)
	DeleteForDate(ctx context.Context, classID int64, date string) (int64, error)
	GetForStudent(ctx context.Context, studentID int64) ([]models.AttendanceEntry, error)
	CountSessions(ctx context.Context, classID int64) (int, error)
	GetSessionDates(ctx context.Context, classID int64) ([]string, error)
}

type attendanceRepository struct {
	*SQLiteRepository
}

func NewAttendanceRepository(db *sql.DB, logger zerolog.Logger) AttendanceRepository {
	return &attendanceRepository{
		SQLiteRepository: NewSQLiteRepository(db, logger),
	}
}

// Save upserts the whole date's marks in one transaction. Each roll number
// is resolved to a student id within the class; marks whose roll number does
// not resolve are skipped and reported back. The upsert is keyed on
// (class_id, student_id, date), so re-submitting a sheet overwrites present
// flags instead of adding rows.
func (r *attendanceRepository) Save(ctx context.Context, classID int64, date string, marks map[string]bool) (int, []string, error) {
	// Deterministic order for logs and the skipped list.
	rollNumbers := make([]string, 0, len(marks))
	for roll := range marks {
		rollNumbers = append(rollNumbers, roll)
	}
	sort.Strings(rollNumbers)

	var (
		saved   int
		skipped []string
	)

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		resolve, err := tx.PrepareContext(ctx,
			`SELECT id FROM students WHERE class_id = ? AND roll_number = ?`,
		)
		if err != nil {
			return err
		}
		defer resolve.Close()

		upsert, err := tx.PrepareContext(ctx, `
			INSERT INTO attendance (class_id, student_id, date, present)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(class_id, student_id, date) DO UPDATE SET present = excluded.present
		`)
		if err != nil {
			return err
		}
		defer upsert.Close()

		for _, roll := range rollNumbers {
			var studentID int64
			err := resolve.QueryRowContext(ctx, classID, roll).Scan(&studentID)
			if err == sql.ErrNoRows {
				skipped = append(skipped, roll)
				continue
			}
			if err != nil {
				return err
			}

			present := 0
			if marks[roll] {
				present = 1
			}

			if _, err := upsert.ExecContext(ctx, classID, studentID, date, present); err != nil {
				return err
			}
			saved++
		}

		return nil
	})
	if err != nil {
		return 0, nil, err
	}

	if len(skipped) > 0 {
		r.logger.Warn().
			Int64("class_id", classID).
			Str("date", date).
			Strs("roll_numbers", skipped).
			Msg("Skipped attendance marks with unresolvable roll numbers")
	}

	return saved, skipped, nil
}

// GetForDate returns only the marks that exist for the date, keyed by roll
// number. A student with no row is absent from the map ("not marked", as
// opposed to marked absent). A stale class id yields an empty map, not an
// error.
func (r *attendanceRepository) GetForDate(ctx context.Context, classID int64, date string) (map[string]bool, error) {
	query := `
		SELECT s.roll_number, a.present
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		WHERE a.class_id = ? AND a.date = ?
	`

	rows, err := r.db.QueryContext(ctx, query, classID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	marks := make(map[string]bool)
	for rows.Next() {
		var (
			rollNumber string
			present    int
		)
		if err := rows.Scan(&rollNumber, &present); err != nil {
			return nil, err
		}
		marks[rollNumber] = present == 1
	}

	return marks, rows.Err()
}

// DeleteForDate returns every student of the class to unmarked for the date.
func (r *attendanceRepository) DeleteForDate(ctx context.Context, classID int64, date string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM attendance WHERE class_id = ? AND date = ?`,
		classID, date,
	)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (r *attendanceRepository) GetForStudent(ctx context.Context, studentID int64) ([]models.AttendanceEntry, error) {
	query := `
		SELECT date, present
		FROM attendance
		WHERE student_id = ?
		ORDER BY date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AttendanceEntry
	for rows.Next() {
		var (
			entry   models.AttendanceEntry
			present int
		)
		if err := rows.Scan(&entry.Date, &present); err != nil {
			return nil, err
		}
		entry.Present = present == 1
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// CountSessions counts the distinct dates with at least one attendance row
// for the class: the denominator for percentage computation, independent of
// any single student's history.
func (r *attendanceRepository) CountSessions(ctx context.Context, classID int64) (int, error) {
	query := `SELECT COUNT(DISTINCT date) FROM attendance WHERE class_id = ?`

	var total int
	err := r.db.QueryRowContext(ctx, query, classID).Scan(&total)
	return total, err
}

func (r *attendanceRepository) GetSessionDates(ctx context.Context, classID int64) ([]string, error) {
	query := `SELECT DISTINCT date FROM attendance WHERE class_id = ? ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}

	return dates, rows.Err()
}
