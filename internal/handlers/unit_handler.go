package handlers

import (
	"errors"
	"strconv"

	"rentoasis/internal/middleware"
	"rentoasis/internal/rent"
	"rentoasis/internal/services"
	apperrors "rentoasis/pkg/errors"
	"rentoasis/pkg/response"

	"github.com/gin-gonic/gin"
)

type UnitHandler struct {
	service *services.UnitService
}

func NewUnitHandler(service *services.UnitService) *UnitHandler {
	return &UnitHandler{
		service: service,
	}
}

// UnitRequest 创建/更新单元的请求结构体；金额走字符串避免浮点
type UnitRequest struct {
	UnitNumber string `json:"unit_number" binding:"required"`
	Bedrooms   int    `json:"bedrooms"`
	Bathrooms  int    `json:"bathrooms"`
	SquareFeet int    `json:"square_feet"`
	RentAmount string `json:"rent_amount" binding:"required"`
}

type AssignTenantRequest struct {
	TenantID uint `json:"tenant_id" binding:"required"`
}

// Create 在物业下创建单元
func (h *UnitHandler) Create(c *gin.Context) {
	propertyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid property id")
		return
	}

	var req UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	rentCents, err := rent.ParseAmountToCents(req.RentAmount)
	if err != nil {
		response.BadRequest(c, "Invalid rent amount")
		return
	}

	landlordID := middleware.CurrentUserID(c)
	unit, err := h.service.Create(uint(propertyID), landlordID, req.UnitNumber, req.Bedrooms, req.Bathrooms, req.SquareFeet, rentCents)
	if err != nil {
		h.respondServiceError(c, err, "Failed to create unit")
		return
	}

	response.Success(c, unit)
}

// GetByProperty 某物业下的单元列表
func (h *UnitHandler) GetByProperty(c *gin.Context) {
	propertyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid property id")
		return
	}

	units, err := h.service.GetByProperty(uint(propertyID))
	if err != nil {
		response.ServerError(c, "Failed to list units")
		return
	}

	response.Success(c, units)
}

// GetMine 当前租客入住的单元
func (h *UnitHandler) GetMine(c *gin.Context) {
	tenantID := middleware.CurrentUserID(c)

	units, err := h.service.GetByTenant(tenantID)
	if err != nil {
		response.ServerError(c, "Failed to list units")
		return
	}

	response.Success(c, units)
}

// Update 更新单元属性
func (h *UnitHandler) Update(c *gin.Context) {
	unitID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid unit id")
		return
	}

	var req UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	rentCents, err := rent.ParseAmountToCents(req.RentAmount)
	if err != nil {
		response.BadRequest(c, "Invalid rent amount")
		return
	}

	landlordID := middleware.CurrentUserID(c)
	unit, err := h.service.Update(uint(unitID), landlordID, req.UnitNumber, req.Bedrooms, req.Bathrooms, req.SquareFeet, rentCents)
	if err != nil {
		h.respondServiceError(c, err, "Failed to update unit")
		return
	}

	response.Success(c, unit)
}

// AssignTenant 安排租客入住
func (h *UnitHandler) AssignTenant(c *gin.Context) {
	unitID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid unit id")
		return
	}

	var req AssignTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	landlordID := middleware.CurrentUserID(c)
	unit, err := h.service.AssignTenant(uint(unitID), landlordID, req.TenantID)
	if err != nil {
		h.respondServiceError(c, err, "Failed to assign tenant")
		return
	}

	response.Success(c, unit)
}

// Vacate 办理退租
func (h *UnitHandler) Vacate(c *gin.Context) {
	unitID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid unit id")
		return
	}

	landlordID := middleware.CurrentUserID(c)
	unit, err := h.service.Vacate(uint(unitID), landlordID)
	if err != nil {
		h.respondServiceError(c, err, "Failed to vacate unit")
		return
	}

	response.Success(c, unit)
}

// respondServiceError 服务层错误到响应的统一映射
func (h *UnitHandler) respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		response.NotFound(c, "Unit or property not found")
	case errors.Is(err, apperrors.ErrAlreadyExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, apperrors.ErrInvalidArgument):
		response.BadRequest(c, err.Error())
	default:
		response.ServerError(c, fallback)
	}
}
