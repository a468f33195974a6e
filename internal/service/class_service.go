package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/classtrack/attendance-service/internal/models"
	"github.com/classtrack/attendance-service/internal/repository"
)

type ClassService interface {
	CreateClass(ctx context.Context, req *models.CreateClassRequest) (*models.Class, error)
	ListClasses(ctx context.Context) ([]models.ClassWithStats, error)
	RenameClass(ctx context.Context, oldName, newName string) (int64, error)
	DeleteClass(ctx context.Context, name string) (int64, error)
	GetClass(ctx context.Context, id int64) (*models.Class, error)
	ListBatches() []Batch
}

type classService struct {
	classRepo repository.ClassRepository
	roster    *Roster
	logger    zerolog.Logger
}

func NewClassService(classRepo repository.ClassRepository, roster *Roster, logger zerolog.Logger) ClassService {
	return &classService{
		classRepo: classRepo,
		roster:    roster,
		logger:    logger,
	}
}

// CreateClass inserts the class together with its initial students in one
// transaction. The roster comes either from the request payload or, when
// Batch is set, from a predefined batch.
func (s *classService) CreateClass(ctx context.Context, req *models.CreateClassRequest) (*models.Class, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	students := req.Students
	if req.Batch != "" {
		batchStudents, ok := s.roster.Get(req.Batch)
		if !ok {
			return nil, ErrUnknownBatch
		}
		students = batchStudents
	}

	classID, err := s.classRepo.Create(ctx, name, students)
	if err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}

	s.logger.Info().
		Int64("class_id", classID).
		Str("name", name).
		Int("students", len(students)).
		Msg("Class created")

	return &models.Class{ID: classID, Name: name}, nil
}

func (s *classService) ListClasses(ctx context.Context) ([]models.ClassWithStats, error) {
	classes, err := s.classRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}

	return classes, nil
}

// RenameClass returns the number of updated rows: 0 means oldName did not
// exist, which is not an error.
func (s *classService) RenameClass(ctx context.Context, oldName, newName string) (int64, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return 0, ErrEmptyName
	}

	updated, err := s.classRepo.Rename(ctx, oldName, newName)
	if err != nil {
		return 0, fmt.Errorf("failed to rename class: %w", err)
	}

	if updated > 0 {
		s.logger.Info().
			Str("old_name", oldName).
			Str("new_name", newName).
			Msg("Class renamed")
	}

	return updated, nil
}

// DeleteClass cascades to students and attendance. Returns 0 when the class
// did not exist.
func (s *classService) DeleteClass(ctx context.Context, name string) (int64, error) {
	deleted, err := s.classRepo.Delete(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("failed to delete class: %w", err)
	}

	if deleted > 0 {
		s.logger.Info().Str("name", name).Msg("Class deleted")
	}

	return deleted, nil
}

func (s *classService) GetClass(ctx context.Context, id int64) (*models.Class, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	if class == nil {
		return nil, repository.ErrClassNotFound
	}

	return class, nil
}

func (s *classService) ListBatches() []Batch {
	return s.roster.Batches()
}
