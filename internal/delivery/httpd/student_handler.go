package httpd

import (
	"encoding/json"
	"net/http"

	"github.com/classtrack/attendance-service/internal/models"
)

func (h *Handler) AddStudent(w http.ResponseWriter, r *http.Request) {
	classID, err := getClassIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid class ID")
		return
	}

	var req models.NewStudent
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	student, err := h.studentService.AddStudent(r.Context(), classID, req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, student)
}

func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	classID, err := getClassIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid class ID")
		return
	}

	students, err := h.studentService.ListStudents(r.Context(), classID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	if students == nil {
		students = []models.Student{}
	}

	writeSuccess(w, students)
}

func (h *Handler) UpdateStudentName(w http.ResponseWriter, r *http.Request) {
	studentID, err := getIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	var req models.UpdateStudentNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.studentService.UpdateStudentName(r.Context(), studentID, req.Name); err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Student updated successfully",
	})
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := getIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	if err := h.studentService.DeleteStudent(r.Context(), studentID); err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Student deleted successfully",
	})
}

// ImportStudents accepts a multipart upload with a roster spreadsheet under
// the "file" field.
func (h *Handler) ImportStudents(w http.ResponseWriter, r *http.Request) {
	classID, err := getClassIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid class ID")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	result, err := h.studentService.ImportStudents(r.Context(), classID, file)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, result)
}
