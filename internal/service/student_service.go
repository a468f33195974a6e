package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/classtrack/attendance-service/internal/models"
	"github.com/classtrack/attendance-service/internal/repository"
)

type StudentService interface {
	AddStudent(ctx context.Context, classID int64, student models.NewStudent) (*models.Student, error)
	ListStudents(ctx context.Context, classID int64) ([]models.Student, error)
	UpdateStudentName(ctx context.Context, id int64, name string) error
	DeleteStudent(ctx context.Context, id int64) error
	ImportStudents(ctx context.Context, classID int64, file io.Reader) (*models.ImportStudentsResponse, error)
}

type studentService struct {
	studentRepo repository.StudentRepository
	logger      zerolog.Logger
}

func NewStudentService(studentRepo repository.StudentRepository, logger zerolog.Logger) StudentService {
	return &studentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

func (s *studentService) AddStudent(ctx context.Context, classID int64, student models.NewStudent) (*models.Student, error) {
	student.Name = strings.TrimSpace(student.Name)
	student.RollNumber = strings.TrimSpace(student.RollNumber)
	if student.Name == "" || student.RollNumber == "" {
		return nil, ErrEmptyName
	}

	id, err := s.studentRepo.Add(ctx, classID, student)
	if err != nil {
		return nil, fmt.Errorf("failed to add student: %w", err)
	}

	s.logger.Info().
		Int64("student_id", id).
		Int64("class_id", classID).
		Str("roll_number", student.RollNumber).
		Msg("Student added")

	return &models.Student{
		ID:         id,
		ClassID:    classID,
		Name:       student.Name,
		RollNumber: student.RollNumber,
	}, nil
}

func (s *studentService) ListStudents(ctx context.Context, classID int64) ([]models.Student, error) {
	students, err := s.studentRepo.GetByClass(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return students, nil
}

func (s *studentService) UpdateStudentName(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	updated, err := s.studentRepo.UpdateName(ctx, id, name)
	if err != nil {
		return fmt.Errorf("failed to update student name: %w", err)
	}
	if updated == 0 {
		return repository.ErrStudentNotFound
	}

	return nil
}

func (s *studentService) DeleteStudent(ctx context.Context, id int64) error {
	deleted, err := s.studentRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if deleted == 0 {
		return repository.ErrStudentNotFound
	}

	s.logger.Info().Int64("student_id", id).Msg("Student deleted")

	return nil
}

// ImportStudents populates a class from an uploaded roster spreadsheet.
// Rows that collide with an existing roll number are skipped rather than
// failing the whole import.
func (s *studentService) ImportStudents(ctx context.Context, classID int64, file io.Reader) (*models.ImportStudentsResponse, error) {
	students, skippedRows, err := ParseStudentsXLSX(file)
	if err != nil {
		return nil, err
	}

	resp := &models.ImportStudentsResponse{Skipped: skippedRows}
	for _, student := range students {
		if _, err := s.studentRepo.Add(ctx, classID, student); err != nil {
			if errors.Is(err, repository.ErrDuplicateRollNumber) {
				resp.Skipped++
				continue
			}
			return nil, fmt.Errorf("failed to import student %s: %w", student.RollNumber, err)
		}
		resp.Imported++
	}

	s.logger.Info().
		Int64("class_id", classID).
		Int("imported", resp.Imported).
		Int("skipped", resp.Skipped).
		Msg("Roster imported")

	return resp, nil
}
