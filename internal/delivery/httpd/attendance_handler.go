package httpd

import (
	"encoding/json"
	"net/http"

	"github.com/classtrack/attendance-service/internal/models"
)

func (h *Handler) SaveAttendance(w http.ResponseWriter, r *http.Request) {
	classID, err := getClassIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid class ID")
		return
	}

	var req models.SaveAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.attendanceService.SaveAttendance(r.Context(), classID, &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, result)
}

func (h *Handler) GetAttendanceForDate(w http.ResponseWriter, r *http.Request) {
	classID, err := getClassIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid class ID")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date query parameter is required")
		return
	}

	marks, err := h.attendanceService.GetAttendanceForDate(r.Context(), classID, date)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, marks)
}

func (h *Handler) DeleteAttendanceForDate(w http.ResponseWriter, r *http.Request) {
	classID, err := getClassIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid class ID")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date query parameter is required")
		return
	}

	deleted, err := h.attendanceService.DeleteAttendanceForDate(r.Context(), classID, date)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"deleted": deleted,
	})
}

func (h *Handler) GetSessions(w http.ResponseWriter, r *http.Request) {
	classID, err := getClassIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid class ID")
		return
	}

	sessions, err := h.attendanceService.GetSessions(r.Context(), classID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, sessions)
}

func (h *Handler) GetStudentAttendance(w http.ResponseWriter, r *http.Request) {
	studentID, err := getIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	summary, err := h.attendanceService.GetStudentSummary(r.Context(), studentID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, summary)
}
