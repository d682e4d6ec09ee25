package handler

import (
	"github.com/fintrack/backend/internal/application/limits"
	"github.com/fintrack/backend/internal/interfaces/http/dto"
	"github.com/fintrack/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LimitHandler handles spending limit API endpoints
type LimitHandler struct {
	BaseHandler
	service *limits.LimitService
}

// NewLimitHandler creates a new LimitHandler
func NewLimitHandler(service *limits.LimitService) *LimitHandler {
	return &LimitHandler{service: service}
}

// List returns the user's spending limits
func (h *LimitHandler) List(c *gin.Context) {
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

	limitList, err := h.service.List(c.Request.Context(), userID, toFilter(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, limitList)
}

// ListActive returns the limits whose period covers the current instant
func (h *LimitHandler) ListActive(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	limitList, err := h.service.ListActive(c.Request.Context(), userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, limitList)
}

// Get returns a single spending limit by ID
func (h *LimitHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	limitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid limit ID")
		return
	}

	limit, err := h.service.Get(c.Request.Context(), userID, limitID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, limit)
}

// Create sets a spending limit for a daily, weekly, or monthly period
func (h *LimitHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	var req limits.CreateLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	limit, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, limit)
}

// Update changes a limit's amount
func (h *LimitHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	limitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid limit ID")
		return
	}

	var req limits.UpdateLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	limit, err := h.service.Update(c.Request.Context(), userID, limitID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, limit)
}

// Delete removes a spending limit
func (h *LimitHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	limitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid limit ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, limitID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterRoutes registers spending limit routes
func (h *LimitHandler) RegisterRoutes(rg *gin.RouterGroup) {
	limitGroup := rg.Group("/limits")
	{
		limitGroup.GET("", h.List)
		limitGroup.GET("/active", h.ListActive)
		limitGroup.GET("/:id", h.Get)
		limitGroup.POST("", h.Create)
		limitGroup.PUT("/:id", h.Update)
		limitGroup.DELETE("/:id", h.Delete)
	}
}
