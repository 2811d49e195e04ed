package model

import "time"

// NotificationType 通知投递方式
type NotificationType string

const (
	NotificationEmail  NotificationType = "Email"
	NotificationSystem NotificationType = "System"
)

// NotificationCategory 通知分类
type NotificationCategory string

const (
	CategoryDeviation NotificationCategory = "Deviation"
	CategoryCAPA      NotificationCategory = "CAPA"
	CategoryTask      NotificationCategory = "Task"
	CategoryAudit     NotificationCategory = "Audit"
)

// Notification 通知记录
type Notification struct {
	ID        string               `json:"id"`
	Type      NotificationType     `json:"type"`
	Category  NotificationCategory `json:"category"`
	Priority  Severity             `json:"priority"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Timestamp time.Time            `json:"timestamp"`
	IsRead    bool                 `json:"isRead"`
	Recipient string               `json:"recipient"`
}

// NotificationPreferences 用户通知偏好
type NotificationPreferences struct {
	EmailOnCriticalDeviation bool `json:"emailOnCriticalDeviation"`
	EmailOnCapaAssignment    bool `json:"emailOnCapaAssignment"`
	EmailOnOverdueTask       bool `json:"emailOnOverdueTask"`
	SystemAlertsEnabled      bool `json:"systemAlertsEnabled"`
}

// DefaultNotificationPreferences 默认通知偏好
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		EmailOnCriticalDeviation: true,
		EmailOnCapaAssignment:    true,
		EmailOnOverdueTask:       true,
		SystemAlertsEnabled:      true,
	}
}
