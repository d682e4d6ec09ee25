package handler

import (
	"strconv"

	"github.com/fintrack/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// BalanceHandler handles balance and snapshot API endpoints
type BalanceHandler struct {
	BaseHandler
	service *finance.BalanceService
}

// NewBalanceHandler creates a new BalanceHandler
func NewBalanceHandler(service *finance.BalanceService) *BalanceHandler {
	return &BalanceHandler{service: service}
}

// GetBalance returns the user's live balance
func (h *BalanceHandler) GetBalance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	balance, err := h.service.GetBalance(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, balance)
}

// GetCurrentSnapshot returns the snapshot for the current month and week
func (h *BalanceHandler) GetCurrentSnapshot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	snapshot, err := h.service.GetCurrentSnapshot(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, snapshot)
}

// GetLastMonthSnapshot returns the latest snapshot of the previous month
func (h *BalanceHandler) GetLastMonthSnapshot(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	snapshot, err := h.service.GetLastMonthSnapshot(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, snapshot)
}

// ListSnapshots returns the user's snapshot history, newest first
func (h *BalanceHandler) ListSnapshots(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	limit := 12
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			h.BadRequest(c, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	snapshots, err := h.service.ListSnapshots(c.Request.Context(), userID, limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, snapshots)
}

// RegisterRoutes registers balance routes
func (h *BalanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	balance := rg.Group("/balance")
	{
		balance.GET("", h.GetBalance)
		balance.GET("/current", h.GetCurrentSnapshot)
		balance.GET("/last-month", h.GetLastMonthSnapshot)
		balance.GET("/snapshots", h.ListSnapshots)
	}
}
