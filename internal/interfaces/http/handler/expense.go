package handler

import (
	"time"

	"github.com/fintrack/backend/internal/application/finance"
	"github.com/fintrack/backend/internal/application/limits"
	"github.com/fintrack/backend/internal/domain/period"
	"github.com/fintrack/backend/internal/interfaces/http/dto"
	"github.com/fintrack/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseHandler handles expense entry API endpoints, including split
// expenses and spending-limit pre-checks.
type ExpenseHandler struct {
	BaseHandler
	service      *finance.ExpenseService
	limitService *limits.LimitService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(service *finance.ExpenseService, limitService *limits.LimitService) *ExpenseHandler {
	return &ExpenseHandler{
		service:      service,
		limitService: limitService,
	}
}

// CheckLimitRequest represents a pre-flight limit check for a prospective expense
type CheckLimitRequest struct {
	Amount decimal.Decimal `form:"amount" binding:"required"`
	Tag    string          `form:"tag" binding:"max=50"`
}

// List returns the user's expenses, optionally filtered to one month
func (h *ExpenseHandler) List(c *gin.Context) {
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
		expenses, err := h.service.ListByMonth(c.Request.Context(), userID, req.Month)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, expenses)
		return
	}

	expenses, err := h.service.List(c.Request.Context(), userID, toFilter(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expenses)
}

// Get returns a single expense by ID, including its split shares
func (h *ExpenseHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	expense, err := h.service.Get(c.Request.Context(), userID, expenseID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expense)
}

// Create records an expense, debits the balance, applies any splits, and
// surfaces limit warnings in the response.
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	var req finance.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	expense, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, expense)
}

// Update edits an expense, re-settling balance and splits
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	var req finance.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	expense, err := h.service.Update(c.Request.Context(), userID, expenseID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expense)
}

// Delete removes an expense, credits the balance back, and rolls back splits
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, expenseID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// MonthSummary returns total, count, and average spend for one month
func (h *ExpenseHandler) MonthSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	month := c.Query("month")
	if month == "" {
		month = period.MonthKey(time.Now())
	}

	summary, err := h.service.MonthSummary(c.Request.Context(), userID, month)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// CheckLimit evaluates a prospective expense against the user's active
// limits without recording anything.
func (h *ExpenseHandler) CheckLimit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	var req CheckLimitRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.limitService.CheckExpense(c.Request.Context(), userID, limits.CheckExpenseRequest{
		Amount: req.Amount,
		Tag:    req.Tag,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers expense routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.GET("", h.List)
		expenses.GET("/summary", h.MonthSummary)
		expenses.GET("/check-limit", h.CheckLimit)
		expenses.GET("/:id", h.Get)
		expenses.POST("", h.Create)
		expenses.PUT("/:id", h.Update)
		expenses.DELETE("/:id", h.Delete)
	}
}
