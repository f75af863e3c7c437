package handlers

import (
	"pmp/internal/services"
	"pmp/pkg/pagination"
	"pmp/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List 当前用户的通知列表
func (h *NotificationHandler) List(c *gin.Context) {
	params := pagination.ParsePageParams(c)
	userID := c.MustGet("user_id").(uint)
	unreadOnly := c.Query("unread") == "true"

	notifications, total, err := h.notificationService.ListByUser(userID, unreadOnly,
		params.GetOffset(), params.GetLimit())
	if err != nil {
		response.ServerError(c, "查询通知列表失败")
		return
	}

	response.SuccessWithPage(c, notifications, pagination.NewPageInfo(params.Page, params.PageSize, total))
}

// UnreadCount 未读通知数
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	count, err := h.notificationService.UnreadCount(userID)
	if err != nil {
		response.ServerError(c, "查询未读通知数失败")
		return
	}

	response.Success(c, gin.H{"unread": count})
}

// MarkRead 标记单条通知已读
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.BadRequest(c, "无效的ID")
		return
	}

	userID := c.MustGet("user_id").(uint)
	if err := h.notificationService.MarkRead(userID, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			response.NotFound(c, "通知不存在")
			return
		}
		response.ServerError(c, "标记已读失败")
		return
	}

	response.SuccessWithMessage(c, "已标记为已读", nil)
}

// MarkAllRead 标记全部通知已读
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.MustGet("user_id").(uint)

	if err := h.notificationService.MarkAllRead(userID); err != nil {
		response.ServerError(c, "标记已读失败")
		return
	}

	response.SuccessWithMessage(c, "全部已读", nil)
}
