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

type NotificationHandler struct {
	service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service: service,
	}
}

// GetMine 当前用户的通知列表（最新在前，分页）
func (h *NotificationHandler) GetMine(c *gin.Context) {
	pageParams := pagination.ParsePageParams(c)
	unreadOnly := c.Query("unread") == "true"
	userID := middleware.CurrentUserID(c)

	notifications, total, err := h.service.GetByUserWithPage(userID, unreadOnly, pageParams.Page, pageParams.PageSize)
	if err != nil {
		response.ServerError(c, "Failed to list notifications")
		return
	}

	pageInfo := pagination.NewPageInfo(pageParams.Page, pageParams.PageSize, total)
	response.SuccessWithPage(c, notifications, pageInfo)
}

// UnreadCount 未读数量
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	count, err := h.service.UnreadCount(userID)
	if err != nil {
		response.ServerError(c, "Failed to count notifications")
		return
	}

	response.Success(c, gin.H{"unread": count})
}

// MarkRead 标记单条已读
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid notification id")
		return
	}

	userID := middleware.CurrentUserID(c)
	if err := h.service.MarkRead(uint(id), userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Notification not found")
			return
		}
		response.ServerError(c, "Failed to mark notification read")
		return
	}

	response.SuccessWithMessage(c, "Notification marked read", nil)
}

// MarkAllRead 全部标记已读
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	if err := h.service.MarkAllRead(userID); err != nil {
		response.ServerError(c, "Failed to mark notifications read")
		return
	}

	response.SuccessWithMessage(c, "All notifications marked read", nil)
}
