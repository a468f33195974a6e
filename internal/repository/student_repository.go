package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/classtrack/attendance-service/internal/models"
)

type StudentRepository interface {
	Add(ctx context.Context, classID int64, student models.NewStudent) (int64, error)
	GetByClass(ctx context.Context, classID int64) ([]models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	UpdateName(ctx context.Context, id int64, name string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type studentRepository struct {
	*SQLiteRepository
}

func NewStudentRepository(db *sql.DB, logger zerolog.Logger) StudentRepository {
	return &studentRepository{
		SQLiteRepository: NewSQLiteRepository(db, logger),
	}
}

func (r *studentRepository) Add(ctx context.Context, classID int64, student models.NewStudent) (int64, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM classes WHERE id = ?)`,
		classID,
	).Scan(&exists)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrClassNotFound
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO students (class_id, name, roll_number) VALUES (?, ?, ?)`,
		classID, student.Name, student.RollNumber,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateRollNumber
		}
		if isForeignKeyViolation(err) {
			return 0, ErrClassNotFound
		}
		return 0, err
	}

	return res.LastInsertId()
}

func (r *studentRepository) GetByClass(ctx context.Context, classID int64) ([]models.Student, error) {
	query := `
		SELECT id, class_id, name, roll_number
		FROM students
		WHERE class_id = ?
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var student models.Student
		err := rows.Scan(
			&student.ID,
			&student.ClassID,
			&student.Name,
			&student.RollNumber,
		)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

func (r *studentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT id, class_id, name, roll_number FROM students WHERE id = ?`

	student := &models.Student{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&student.ID,
		&student.ClassID,
		&student.Name,
		&student.RollNumber,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return student, err
}

// UpdateName changes only the display name; roll number and class are
// immutable through this path. Name collisions between students are allowed.
func (r *studentRepository) UpdateName(ctx context.Context, id int64, name string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE students SET name = ? WHERE id = ?`,
		name, id,
	)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

// Delete removes the student and all of their attendance rows in one
// transaction.
func (r *studentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var deleted int64

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM attendance WHERE student_id = ?`, id); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id)
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
