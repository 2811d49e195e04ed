package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/notify"
)

// NotificationController 通知控制器
type NotificationController struct {
	notifier *notify.Notifier
}

// NewNotificationController 创建通知控制器
func NewNotificationController(notifier *notify.Notifier) *NotificationController {
	return &NotificationController{notifier: notifier}
}

// RegisterRoutes 挂载通知路由
func (ctl *NotificationController) RegisterRoutes(group *gin.RouterGroup) {
	g := group.Group("/notifications")
	g.GET("", ctl.list)
	g.POST("/:id/read", ctl.markRead)
	g.GET("/preferences", ctl.preferences)
	g.PUT("/preferences", ctl.savePreferences)
}

// list 通知历史，最新在前
func (ctl *NotificationController) list(c *gin.Context) {
	items, err := ctl.notifier.List()
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, items)
}

// markRead 标记通知已读
func (ctl *NotificationController) markRead(c *gin.Context) {
	if err := ctl.notifier.MarkRead(c.Param("id")); err != nil {
		Fail(c, err)
		return
	}
	Success(c, gin.H{"read": c.Param("id")})
}

// preferences 读取通知偏好
func (ctl *NotificationController) preferences(c *gin.Context) {
	prefs, err := ctl.notifier.Preferences()
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, prefs)
}

// savePreferences 保存通知偏好
func (ctl *NotificationController) savePreferences(c *gin.Context) {
	var prefs model.NotificationPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		Error(c, http.StatusBadRequest, ReasonBadRequest, "malformed request body", err.Error())
		return
	}
	if err := ctl.notifier.SavePreferences(prefs); err != nil {
		Fail(c, err)
		return
	}
	Success(c, prefs)
}
