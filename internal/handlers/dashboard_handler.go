package handlers

import (
	"rentoasis/internal/middleware"
	"rentoasis/internal/models"
	"rentoasis/internal/services"
	"rentoasis/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		service: service,
	}
}

// Overview 按角色返回仪表盘数据
func (h *DashboardHandler) Overview(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	role, _ := c.Get("role")

	if role == models.RoleLandlord {
		stats, err := h.service.LandlordOverview(userID)
		if err != nil {
			response.ServerError(c, "Failed to load dashboard")
			return
		}
		response.Success(c, stats)
		return
	}

	stats, err := h.service.TenantOverview(userID)
	if err != nil {
		response.ServerError(c, "Failed to load dashboard")
		return
	}
	response.Success(c, stats)
}
