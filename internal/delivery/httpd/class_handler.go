package httpd

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/classtrack/attendance-service/internal/models"
)

func (h *Handler) CreateClass(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(req.Students) > 0 && req.Batch != "" {
		writeError(w, http.StatusBadRequest, "students and batch are mutually exclusive")
		return
	}

	class, err := h.classService.CreateClass(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.CreateClassResponse{
		ID:   class.ID,
		Name: class.Name,
	})
}

func (h *Handler) ListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classService.ListClasses(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	if classes == nil {
		classes = []models.ClassWithStats{}
	}

	writeSuccess(w, classes)
}

func (h *Handler) RenameClass(w http.ResponseWriter, r *http.Request) {
	oldName := chi.URLParam(r, "class")
	if oldName == "" {
		writeError(w, http.StatusBadRequest, "Class name is required")
		return
	}

	var req models.RenameClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.classService.RenameClass(r.Context(), oldName, req.NewName)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"updated": updated,
	})
}

func (h *Handler) DeleteClass(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "class")
	if name == "" {
		writeError(w, http.StatusBadRequest, "Class name is required")
		return
	}

	deleted, err := h.classService.DeleteClass(r.Context(), name)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"deleted": deleted,
	})
}

func (h *Handler) ListBatches(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, h.classService.ListBatches())
}
