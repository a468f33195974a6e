package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/classtrack/attendance-service/internal/models"
)

type ClassRepository interface {
	Create(ctx context.Context, name string, students []models.NewStudent) (int64, error)
	GetAll(ctx context.Context) ([]models.ClassWithStats, error)
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	GetByName(ctx context.Context, name string) (*models.Class, error)
	Rename(ctx context.Context, oldName, newName string) (int64, error)
	Delete(ctx context.Context, name string) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type classRepository struct {
	*SQLiteRepository
}

func NewClassRepository(db *sql.DB, logger zerolog.Logger) ClassRepository {
	return &classRepository{
		SQLiteRepository: NewSQLiteRepository(db, logger),
	}
}

// Create inserts the class row and all initial student rows in one
// transaction: a duplicate roll number anywhere in the roster rolls the
// whole class back.
func (r *classRepository) Create(ctx context.Context, name string, students []models.NewStudent) (int64, error) {
	var classID int64

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO classes (name) VALUES (?)`,
			name,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateName
			}
			return err
		}

		classID, err = res.LastInsertId()
		if err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO students (class_id, name, roll_number) VALUES (?, ?, ?)`,
		)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, student := range students {
			if _, err := stmt.ExecContext(ctx, classID, student.Name, student.RollNumber); err != nil {
				if isUniqueViolation(err) {
					return ErrDuplicateRollNumber
				}
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return classID, nil
}

func (r *classRepository) GetAll(ctx context.Context) ([]models.ClassWithStats, error) {
	query := `
		SELECT
			c.id, c.name,
			COUNT(DISTINCT s.id) AS student_count,
			COUNT(DISTINCT a.date) AS session_count
		FROM classes c
		LEFT JOIN students s ON s.class_id = c.id
		LEFT JOIN attendance a ON a.class_id = c.id
		GROUP BY c.id
		ORDER BY c.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []models.ClassWithStats
	for rows.Next() {
		var class models.ClassWithStats
		err := rows.Scan(
			&class.ID,
			&class.Name,
			&class.StudentCount,
			&class.SessionCount,
		)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}

	return classes, rows.Err()
}

func (r *classRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	query := `SELECT id, name FROM classes WHERE id = ?`

	class := &models.Class{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&class.ID, &class.Name)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return class, err
}

func (r *classRepository) GetByName(ctx context.Context, name string) (*models.Class, error) {
	query := `SELECT id, name FROM classes WHERE name = ?`

	class := &models.Class{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&class.ID, &class.Name)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return class, err
}

// Rename is metadata-only: students and attendance reference the class by
// id, so only the classes row is touched. Returns 0 when oldName does not
// exist.
func (r *classRepository) Rename(ctx context.Context, oldName, newName string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE classes SET name = ? WHERE name = ?`,
		newName, oldName,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateName
		}
		return 0, err
	}

	return res.RowsAffected()
}

// Delete removes attendance, then students, then the class row, all in one
// transaction. Returns 0 when the class does not exist.
func (r *classRepository) Delete(ctx context.Context, name string) (int64, error) {
	var deleted int64

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		var classID int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM classes WHERE name = ?`,
			name,
		).Scan(&classID)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM attendance WHERE class_id = ?`, classID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM students WHERE class_id = ?`, classID); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM classes WHERE id = ?`, classID)
		if err != nil {
			return err
		}

		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

func (r *classRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM classes WHERE id = ?)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}
