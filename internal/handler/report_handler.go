package handler

import (
	"net/http"

	"github.com/eduadmin/eduadmin-backend/internal/response"
	"github.com/eduadmin/eduadmin-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles activity report endpoints.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Get godoc
// GET /api/v1/reports?from=...&to=...
// Per-teacher and per-student activity over the optional date range.
func (h *ReportHandler) Get(c *gin.Context) {
	from, ok := parseTimeQuery(c, "start_date")
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "end_date")
	if !ok {
		return
	}

	report, err := h.reportService.Build(c.Request.Context(), from, to)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"report": report})
}
