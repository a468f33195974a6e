package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/classtrack/attendance-service/internal/models"
	"github.com/classtrack/attendance-service/internal/repository"
)

type AttendanceService interface {
	SaveAttendance(ctx context.Context, classID int64, req *models.SaveAttendanceRequest) (*models.SaveAttendanceResponse, error)
	GetAttendanceForDate(ctx context.Context, classID int64, date string) (map[string]bool, error)
	DeleteAttendanceForDate(ctx context.Context, classID int64, date string) (int64, error)
	GetSessions(ctx context.Context, classID int64) (*models.SessionsResponse, error)
	GetStudentSummary(ctx context.Context, studentID int64) (*models.StudentAttendanceSummary, error)
}

type attendanceService struct {
	attendanceRepo repository.AttendanceRepository
	studentRepo    repository.StudentRepository
	logger         zerolog.Logger
}

func NewAttendanceService(
	attendanceRepo repository.AttendanceRepository,
	studentRepo repository.StudentRepository,
	logger zerolog.Logger,
) AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		studentRepo:    studentRepo,
		logger:         logger,
	}
}

// SaveAttendance commits the whole sheet for a date in one transaction.
// Marks whose roll number no longer exists in the class are skipped and
// reported in the response.
func (s *attendanceService) SaveAttendance(ctx context.Context, classID int64, req *models.SaveAttendanceRequest) (*models.SaveAttendanceResponse, error) {
	if len(req.Marks) == 0 {
		return nil, ErrNoMarks
	}

	date, err := NormalizeDate(req.Date)
	if err != nil {
		return nil, err
	}

	saved, skipped, err := s.attendanceRepo.Save(ctx, classID, date, req.Marks)
	if err != nil {
		return nil, fmt.Errorf("failed to save attendance: %w", err)
	}

	s.logger.Info().
		Int64("class_id", classID).
		Str("date", date).
		Int("saved", saved).
		Int("skipped", len(skipped)).
		Msg("Attendance saved")

	return &models.SaveAttendanceResponse{
		Saved:              saved,
		SkippedRollNumbers: skipped,
	}, nil
}

func (s *attendanceService) GetAttendanceForDate(ctx context.Context, classID int64, date string) (map[string]bool, error) {
	date, err := NormalizeDate(date)
	if err != nil {
		return nil, err
	}

	marks, err := s.attendanceRepo.GetForDate(ctx, classID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	return marks, nil
}

func (s *attendanceService) DeleteAttendanceForDate(ctx context.Context, classID int64, date string) (int64, error) {
	date, err := NormalizeDate(date)
	if err != nil {
		return 0, err
	}

	deleted, err := s.attendanceRepo.DeleteForDate(ctx, classID, date)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance: %w", err)
	}

	if deleted > 0 {
		s.logger.Info().
			Int64("class_id", classID).
			Str("date", date).
			Int64("deleted", deleted).
			Msg("Attendance deleted for date")
	}

	return deleted, nil
}

func (s *attendanceService) GetSessions(ctx context.Context, classID int64) (*models.SessionsResponse, error) {
	dates, err := s.attendanceRepo.GetSessionDates(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session dates: %w", err)
	}

	return &models.SessionsResponse{
		Dates: dates,
		Total: len(dates),
	}, nil
}

// GetStudentSummary joins the student's full history with the class-level
// session count. The denominator counts every session the class held,
// whether or not this student was marked.
func (s *attendanceService) GetStudentSummary(ctx context.Context, studentID int64) (*models.StudentAttendanceSummary, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return nil, repository.ErrStudentNotFound
	}

	entries, err := s.attendanceRepo.GetForStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance history: %w", err)
	}

	totalSessions, err := s.attendanceRepo.CountSessions(ctx, student.ClassID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	attended := 0
	for _, entry := range entries {
		if entry.Present {
			attended++
		}
	}

	return &models.StudentAttendanceSummary{
		Student:       *student,
		Entries:       entries,
		AttendedCount: attended,
		TotalSessions: totalSessions,
		Percentage:    Percentage(attended, totalSessions),
	}, nil
}
