package httpd

import (
	"fmt"
	"net/http"
)

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	classID, err := getClassIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid class ID")
		return
	}

	report, err := h.reportService.BuildReport(r.Context(), classID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeSuccess(w, report)
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	classID, err := getClassIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid class ID")
		return
	}

	data, filename, err := h.reportService.ExportXLSX(r.Context(), classID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
