package handler

import (
	"github.com/fintrack/backend/internal/application/finance"
	"github.com/fintrack/backend/internal/interfaces/http/dto"
	"github.com/fintrack/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvestmentHandler handles investment API endpoints
type InvestmentHandler struct {
	BaseHandler
	service *finance.InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler
func NewInvestmentHandler(service *finance.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{service: service}
}

// List returns the user's investments, optionally filtered to one month
func (h *InvestmentHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if req.Month != "" {
		investments, err := h.service.ListByMonth(c.Request.Context(), userID, req.Month)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, investments)
		return
	}

	investments, err := h.service.List(c.Request.Context(), userID, toFilter(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, investments)
}

// Get returns a single investment by ID
func (h *InvestmentHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	investmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid investment ID")
		return
	}

	investment, err := h.service.Get(c.Request.Context(), userID, investmentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, investment)
}

// Create records an investment and debits the balance
func (h *InvestmentHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	var req finance.CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	investment, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, investment)
}

// Update edits an investment, adjusting the balance by the amount delta
func (h *InvestmentHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	investmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid investment ID")
		return
	}

	var req finance.UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	investment, err := h.service.Update(c.Request.Context(), userID, investmentID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, investment)
}

// Delete removes an investment and credits the balance back
func (h *InvestmentHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	investmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid investment ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, investmentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ProfitSummary returns total invested principal and projected profit
func (h *InvestmentHandler) ProfitSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	summary, err := h.service.ProfitSummary(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// RegisterRoutes registers investment routes
func (h *InvestmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	investments := rg.Group("/investments")
	{
		investments.GET("", h.List)
		investments.GET("/summary", h.ProfitSummary)
		investments.GET("/:id", h.Get)
		investments.POST("", h.Create)
		investments.PUT("/:id", h.Update)
		investments.DELETE("/:id", h.Delete)
	}
}
