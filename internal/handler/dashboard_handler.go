package handler

import (
	"net/http"
	"time"

	"github.com/eduadmin/eduadmin-backend/internal/response"
	"github.com/eduadmin/eduadmin-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles the admin landing page snapshot.
type DashboardHandler struct {
	dashboardService *service.DashboardService
	loc              *time.Location
}

// NewDashboardHandler creates a new DashboardHandler. loc defines the
// center's calendar day for the "today" metrics.
func NewDashboardHandler(dashboardService *service.DashboardService, loc *time.Location) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, loc: loc}
}

// Summary godoc
// GET /api/v1/dashboard
// Live counts, recomputed on every request.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary(c.Request.Context(), time.Now(), h.loc)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}
