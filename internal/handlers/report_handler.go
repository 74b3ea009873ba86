package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Lixing-Zhang/restaurant-api/internal/service"
)

// ReportHandler serves sales reports
type ReportHandler struct {
	service *service.ReportService
	logger  *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *service.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger,
	}
}

// DailyReport handles GET /reports/daily?date=
func (h *ReportHandler) DailyReport(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	report, err := h.service.DailyReport(r.Context(), date)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			WriteError(w, http.StatusBadRequest, "Invalid date. Use 'yyyy-MM-dd', 'dd.MM.yyyy' or 'dd-MM-yyyy'.", h.logger)
			return
		}
		h.logger.Error("failed to build daily report", "date", date, "error", err, "request_id", chimiddleware.GetReqID(r.Context()))
		WriteServerError(w, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, report, h.logger)
}
