package httpd

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/classtrack/attendance-service/internal/repository"
	"github.com/classtrack/attendance-service/internal/service"
)

type Handler struct {
	classService      service.ClassService
	studentService    service.StudentService
	attendanceService service.AttendanceService
	reportService     service.ReportService
	validate          *validator.Validate
	logger            zerolog.Logger
}

func NewHandler(
	classService service.ClassService,
	studentService service.StudentService,
	attendanceService service.AttendanceService,
	reportService service.ReportService,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		classService:      classService,
		studentService:    studentService,
		attendanceService: attendanceService,
		reportService:     reportService,
		validate:          validator.New(),
		logger:            logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api/v1", func(api chi.Router) {
		api.Route("/classes", func(r chi.Router) {
			r.Post("/", h.CreateClass)
			r.Get("/", h.ListClasses)

			// Rename/delete address the class by name (the natural key the
			// UI holds); the nested routes address it by numeric id.
			r.Route("/{class}", func(r chi.Router) {
				r.Put("/", h.RenameClass)
				r.Delete("/", h.DeleteClass)

				r.Get("/students", h.ListStudents)
				r.Post("/students", h.AddStudent)
				r.Post("/students/import", h.ImportStudents)
				r.Get("/attendance", h.GetAttendanceForDate)
				r.Post("/attendance", h.SaveAttendance)
				r.Delete("/attendance", h.DeleteAttendanceForDate)
				r.Get("/sessions", h.GetSessions)
				r.Get("/report", h.GetReport)
				r.Get("/report/export", h.ExportReport)
			})
		})

		api.Route("/students", func(r chi.Router) {
			r.Put("/{id}/name", h.UpdateStudentName)
			r.Delete("/{id}", h.DeleteStudent)
			r.Get("/{id}/attendance", h.GetStudentAttendance)
		})

		api.Get("/roster/batches", h.ListBatches)
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "attendance-service",
		"timestamp": time.Now().UTC(),
	}

	writeJSON(w, http.StatusOK, response)
}

// handleError maps domain errors onto HTTP codes; anything unclassified is a
// store-level failure and surfaces as 500.
func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrDuplicateName),
		errors.Is(err, repository.ErrDuplicateRollNumber):
		writeError(w, http.StatusConflict, unwrapMessage(err))
	case errors.Is(err, repository.ErrClassNotFound),
		errors.Is(err, repository.ErrStudentNotFound),
		errors.Is(err, service.ErrUnknownBatch):
		writeError(w, http.StatusNotFound, unwrapMessage(err))
	case errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrNoMarks):
		writeError(w, http.StatusBadRequest, unwrapMessage(err))
	default:
		h.logger.Error().Err(err).Msg("Service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// unwrapMessage strips the wrapping context so the client sees the sentinel
// message, not the internal call chain.
func unwrapMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}

func getIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func getClassIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "class"), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	response := map[string]interface{}{
		"success": true,
		"data":    data,
	}
	writeJSON(w, http.StatusOK, response)
}
