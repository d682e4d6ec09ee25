package handler

import (
	"github.com/fintrack/backend/internal/application/finance"
	"github.com/fintrack/backend/internal/interfaces/http/dto"
	"github.com/fintrack/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IncomeHandler handles income entry API endpoints
type IncomeHandler struct {
	BaseHandler
	service *finance.IncomeService
}

// NewIncomeHandler creates a new IncomeHandler
func NewIncomeHandler(service *finance.IncomeService) *IncomeHandler {
	return &IncomeHandler{service: service}
}

// List returns the user's income entries, optionally filtered to one month
func (h *IncomeHandler) List(c *gin.Context) {
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
		incomes, err := h.service.ListByMonth(c.Request.Context(), userID, req.Month)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, incomes)
		return
	}

	incomes, err := h.service.List(c.Request.Context(), userID, toFilter(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, incomes)
}

// Get returns a single income entry by ID
func (h *IncomeHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	incomeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid income ID")
		return
	}

	income, err := h.service.Get(c.Request.Context(), userID, incomeID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, income)
}

// Create records an income entry and credits the balance
func (h *IncomeHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	var req finance.CreateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	income, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, income)
}

// Update edits an income entry, adjusting the balance by the delta
func (h *IncomeHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	incomeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid income ID")
		return
	}

	var req finance.UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	income, err := h.service.Update(c.Request.Context(), userID, incomeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, income)
}

// Delete removes an income entry and debits the balance back
func (h *IncomeHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	incomeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid income ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, incomeID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers income routes
func (h *IncomeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	incomes := rg.Group("/incomes")
	{
		incomes.GET("", h.List)
		incomes.GET("/:id", h.Get)
		incomes.POST("", h.Create)
		incomes.PUT("/:id", h.Update)
		incomes.DELETE("/:id", h.Delete)
	}
}
