package handler

import (
	"net/http"

	"github.com/mcoot/hvztracker/internal/api/request"
	"github.com/mcoot/hvztracker/internal/api/response"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/services/report"
)

// ReportHandler handles incident report endpoints
type ReportHandler struct {
	reportService *report.Service
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *report.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// List handles GET /api/v1/reports
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportService.ListReports(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	out := make([]response.Report, len(reports))
	for i, rep := range reports {
		out[i] = response.ReportFromModel(rep)
	}
	response.JSON(w, http.StatusOK, out)
}

// Create handles POST /api/v1/reports
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReportRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	rep, err := h.reportService.CreateReport(r.Context(), req.Text, req.ReporterEmail, model.PlayerID(req.Reporter))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.ReportFromModel(rep))
}
