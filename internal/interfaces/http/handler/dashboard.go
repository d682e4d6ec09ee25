package handler

import (
	"time"

	"github.com/fintrack/backend/internal/application/report"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard API endpoints
type DashboardHandler struct {
	BaseHandler
	service *report.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service *report.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetDashboard returns the normal dashboard: profile, live balance,
// all-time totals, savings, and category-wise month groupings.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	dashboard, err := h.service.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dashboard)
}

// GetAdvancedDashboard returns the timeframe-scoped summary. The timeframe
// defaults to monthly and the anchor to the current instant.
func (h *DashboardHandler) GetAdvancedDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	timeframe, err := report.ParseTimeframe(c.Query("timeframe"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	anchor, err := report.ParseAnchor(c.Query("anchor"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	if anchor.IsZero() {
		anchor = time.Now()
	}

	dashboard, err := h.service.GetAdvancedDashboard(c.Request.Context(), userID, timeframe, anchor)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dashboard)
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("", h.GetDashboard)
		dashboard.GET("/advanced", h.GetAdvancedDashboard)
	}
}
