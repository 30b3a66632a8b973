package handlers

import (
	"errors"
	"strconv"

	"rentoasis/internal/middleware"
	"rentoasis/internal/services"
	apperrors "rentoasis/pkg/errors"
	"rentoasis/pkg/pagination"
	"rentoasis/pkg/response"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	service *services.PropertyService
}

func NewPropertyHandler(service *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		service: service,
	}
}

// PropertyRequest 创建/更新物业的请求结构体
type PropertyRequest struct {
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	Zip       string `json:"zip" binding:"required"`
	UnitCount int    `json:"unit_count"`
	ImageURL  string `json:"image_url"`
}

// Create 创建物业
func (h *PropertyHandler) Create(c *gin.Context) {
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	landlordID := middleware.CurrentUserID(c)
	property, err := h.service.Create(landlordID, req.Name, req.Address, req.City, req.State, req.Zip, req.ImageURL, req.UnitCount)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "Failed to create property")
		return
	}

	response.Success(c, property)
}

// GetAll 当前房东的物业列表（分页）
func (h *PropertyHandler) GetAll(c *gin.Context) {
	pageParams := pagination.ParsePageParams(c)
	keyword := c.Query("keyword")
	landlordID := middleware.CurrentUserID(c)

	properties, total, err := h.service.GetByLandlordWithPage(landlordID, keyword, pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.ServerError(c, "Failed to list properties")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, properties, pageInfo)
}

// GetByID 获取物业详情
func (h *PropertyHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid property id")
		return
	}

	property, err := h.service.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Property not found")
			return
		}
		response.ServerError(c, "Failed to load property")
		return
	}

	response.Success(c, property)
}

// Update 更新物业（仅属主）
func (h *PropertyHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid property id")
		return
	}

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	landlordID := middleware.CurrentUserID(c)
	property, err := h.service.Update(uint(id), landlordID, req.Name, req.Address, req.City, req.State, req.Zip, req.ImageURL, req.UnitCount)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Property not found")
			return
		}
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "Failed to update property")
		return
	}

	response.Success(c, property)
}

// Delete 删除物业（仅属主）
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid property id")
		return
	}

	landlordID := middleware.CurrentUserID(c)
	if err := h.service.Delete(uint(id), landlordID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Property not found")
			return
		}
		response.ServerError(c, "Failed to delete property")
		return
	}

	response.SuccessWithMessage(c, "Property deleted", nil)
}
