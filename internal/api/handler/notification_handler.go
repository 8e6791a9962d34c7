package handler

import (
	"Atmosphere/internal/api/dto"
	"Atmosphere/internal/api/middleware"
	"Atmosphere/internal/pkg/response"
	"Atmosphere/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GetList 通知列表
func (h *NotificationHandler) GetList(c *gin.Context) {
	var req dto.NotificationListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}
	userID := middleware.CurrentUserID(c)

	resp, err := h.notificationService.GetNotificationList(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// MarkAsRead 标记单条已读
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if err := h.notificationService.MarkAsRead(c.Request.Context(), userID, c.Param("notification_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// MarkAllAsRead 一键已读
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if err := h.notificationService.MarkAllAsRead(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetUnreadCount 未读数
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	count, err := h.notificationService.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"unreadCount": count})
}
