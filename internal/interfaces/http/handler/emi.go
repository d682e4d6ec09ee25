package handler

import (
	"github.com/fintrack/backend/internal/application/finance"
	"github.com/fintrack/backend/internal/interfaces/http/dto"
	"github.com/fintrack/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EMIHandler handles EMI commitment API endpoints
type EMIHandler struct {
	BaseHandler
	service *finance.EMIService
}

// NewEMIHandler creates a new EMIHandler
func NewEMIHandler(service *finance.EMIService) *EMIHandler {
	return &EMIHandler{service: service}
}

// List returns the user's EMI commitments
func (h *EMIHandler) List(c *gin.Context) {
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

	emis, err := h.service.List(c.Request.Context(), userID, toFilter(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, emis)
}

// Get returns a single EMI commitment by ID
func (h *EMIHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	emiID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid EMI ID")
		return
	}

	emi, err := h.service.Get(c.Request.Context(), userID, emiID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, emi)
}

// Create registers an EMI commitment, optionally linked to a loan
func (h *EMIHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	var req finance.CreateEMIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	emi, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, emi)
}

// RecordInstallment pays one installment, debiting the balance. A zero
// amount defaults to the derived per-installment amount.
func (h *EMIHandler) RecordInstallment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	emiID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid EMI ID")
		return
	}

	var req finance.RecordEMIInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	emi, err := h.service.RecordInstallment(c.Request.Context(), userID, emiID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, emi)
}

// Delete removes an EMI commitment
func (h *EMIHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	emiID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid EMI ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, emiID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers EMI routes
func (h *EMIHandler) RegisterRoutes(rg *gin.RouterGroup) {
	emis := rg.Group("/emis")
	{
		emis.GET("", h.List)
		emis.GET("/:id", h.Get)
		emis.POST("", h.Create)
		emis.POST("/:id/installments", h.RecordInstallment)
		emis.DELETE("/:id", h.Delete)
	}
}
