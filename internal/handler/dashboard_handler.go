package handler

import (
	"github.com/gin-gonic/gin"

	"hisaab/internal/service"
)

// DashboardHandler serves the landing page summary.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get handles GET /api/v1/dashboard
// @Summary      Sales totals and latest invoices
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} APIResponse{data=domain.Dashboard}
// @Router       /dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	d, err := h.dashboardService.Get(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, d)
}
