package handler

import (
	"github.com/fintrack/backend/internal/application/finance"
	"github.com/fintrack/backend/internal/interfaces/http/dto"
	"github.com/fintrack/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LendingHandler handles money-lent and money-borrowed API endpoints
type LendingHandler struct {
	BaseHandler
	service *finance.LendingService
}

// NewLendingHandler creates a new LendingHandler
func NewLendingHandler(service *finance.LendingService) *LendingHandler {
	return &LendingHandler{service: service}
}

// ListLent returns the user's money-lent records
func (h *LendingHandler) ListLent(c *gin.Context) {
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

	records, err := h.service.ListLent(c.Request.Context(), userID, toFilter(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, records)
}

// CreateLent records money lent out and debits the balance
func (h *LendingHandler) CreateLent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	var req finance.CreateMoneyLentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	record, err := h.service.CreateLent(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, record)
}

// UpdateLent edits a money-lent record, settling the balance by the delta
func (h *LendingHandler) UpdateLent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid record ID")
		return
	}

	var req finance.UpdateLendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	record, err := h.service.UpdateLent(c.Request.Context(), userID, recordID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// DeleteLent removes a money-lent record and credits the balance back
func (h *LendingHandler) DeleteLent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid record ID")
		return
	}

	if err := h.service.DeleteLent(c.Request.Context(), userID, recordID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListBorrowed returns the user's money-borrowed records
func (h *LendingHandler) ListBorrowed(c *gin.Context) {
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

	records, err := h.service.ListBorrowed(c.Request.Context(), userID, toFilter(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, records)
}

// CreateBorrowed records money borrowed and credits the balance
func (h *LendingHandler) CreateBorrowed(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	var req finance.CreateMoneyBorrowedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	record, err := h.service.CreateBorrowed(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, record)
}

// UpdateBorrowed edits a money-borrowed record, settling the balance by the delta
func (h *LendingHandler) UpdateBorrowed(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid record ID")
		return
	}

	var req finance.UpdateLendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	record, err := h.service.UpdateBorrowed(c.Request.Context(), userID, recordID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, record)
}

// DeleteBorrowed removes a money-borrowed record and debits the balance back
func (h *LendingHandler) DeleteBorrowed(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid record ID")
		return
	}

	if err := h.service.DeleteBorrowed(c.Request.Context(), userID, recordID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers lending routes
func (h *LendingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	lent := rg.Group("/money-lent")
	{
		lent.GET("", h.ListLent)
		lent.POST("", h.CreateLent)
		lent.PUT("/:id", h.UpdateLent)
		lent.DELETE("/:id", h.DeleteLent)
	}

	borrowed := rg.Group("/money-borrowed")
	{
		borrowed.GET("", h.ListBorrowed)
		borrowed.POST("", h.CreateBorrowed)
		borrowed.PUT("/:id", h.UpdateBorrowed)
		borrowed.DELETE("/:id", h.DeleteBorrowed)
	}
}
