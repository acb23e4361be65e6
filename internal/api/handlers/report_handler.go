package handlers

import (
	"net/http"
	"strconv"

	"github.com/St1cky1/taskr-service/internal/api/middleware"
	"github.com/St1cky1/taskr-service/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type ReportHandler struct {
	reportService *usecase.ReportService
}

func NewReportHandler(reportService *usecase.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// MyReport - отчет для аутентифицированного пользователя
func (h *ReportHandler) MyReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	report, err := h.reportService.GetUserReport(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// UserReport - отчет по конкретному пользователю
func (h *ReportHandler) UserReport(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid user Id")
		return
	}

	report, err := h.reportService.GetUserReport(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
