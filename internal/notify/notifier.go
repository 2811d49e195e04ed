package notify

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaqualify/qms-gin/internal/metrics"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/store"
	"github.com/pharmaqualify/qms-gin/internal/utils"
	"github.com/sirupsen/logrus"
)

// MaxHistory 通知历史上限，超出后淘汰最旧的
const MaxHistory = 50

// Broadcaster 实时推送通道（WebSocket Hub 实现）
type Broadcaster interface {
	Broadcast(message []byte)
}

// Notifier 通知旁路
// 纯派生效果：通知失败绝不阻塞或回滚触发它的仓储操作
type Notifier struct {
	history     *store.Collection[model.Notification]
	adapter     store.Adapter
	broadcaster Broadcaster
	logger      *logrus.Logger
	mu          sync.Mutex
	now         func() time.Time
}

// NewNotifier 创建通知旁路
func NewNotifier(adapter store.Adapter, logger *logrus.Logger) *Notifier {
	return &Notifier{
		history: store.NewCollection[model.Notification](adapter, store.KeyNotifications),
		adapter: adapter,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SetBroadcaster 挂接实时推送通道
func (n *Notifier) SetBroadcaster(b Broadcaster) {
	n.broadcaster = b
}

// Preferences 读取用户通知偏好，未设置时返回默认值
func (n *Notifier) Preferences() (model.NotificationPreferences, error) {
	doc, ok, err := n.adapter.Get(store.KeyNotifPrefs)
	if err != nil {
		return model.DefaultNotificationPreferences(), err
	}
	if !ok || doc == "" {
		return model.DefaultNotificationPreferences(), nil
	}
	var prefs model.NotificationPreferences
	if err := json.Unmarshal([]byte(doc), &prefs); err != nil {
		return model.DefaultNotificationPreferences(), err
	}
	return prefs, nil
}

// SavePreferences 保存通知偏好
func (n *Notifier) SavePreferences(prefs model.NotificationPreferences) error {
	doc, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return n.adapter.Set(store.KeyNotifPrefs, string(doc))
}

// Notify 记录一条通知并按规则表决定是否模拟邮件派发
func (n *Notifier) Notify(user model.User, category model.NotificationCategory, priority model.Severity, title string, message string) (model.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	prefs, err := n.Preferences()
	if err != nil {
		// 偏好读不出来时按默认值继续，通知旁路不因此失败
		prefs = model.DefaultNotificationPreferences()
	}

	kind := model.NotificationSystem
	if shouldSendEmail(category, priority, prefs) {
		kind = model.NotificationEmail
	}

	// 标题和正文带有记录里的自由文本，推送前先清理
	notification := model.Notification{
		ID:        uuid.NewString(),
		Type:      kind,
		Category:  category,
		Priority:  priority,
		Title:     utils.SanitizeString(title),
		Message:   utils.SanitizeString(message),
		Timestamp: n.now(),
		Recipient: user.Email,
	}

	history, err := n.history.Load()
	if err != nil {
		return notification, err
	}
	updated := append([]model.Notification{notification}, history...)
	if len(updated) > MaxHistory {
		updated = updated[:MaxHistory]
	}
	if err := n.history.Save(updated); err != nil {
		return notification, err
	}
	metrics.RecordNotification(string(kind))

	if kind == model.NotificationEmail {
		n.logger.WithFields(logrus.Fields{
			"recipient": user.Email,
			"subject":   "CRITICAL QUALITY ALERT: " + title,
			"category":  category,
			"priority":  priority,
		}).Info("simulated email dispatch")
	}

	if n.broadcaster != nil {
		if payload, err := json.Marshal(notification); err == nil {
			n.broadcaster.Broadcast(payload)
		}
	}

	return notification, nil
}

// List 通知历史，最新在前
func (n *Notifier) List() ([]model.Notification, error) {
	return n.history.Load()
}

// MarkRead 标记通知为已读
func (n *Notifier) MarkRead(id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	history, err := n.history.Load()
	if err != nil {
		return err
	}
	for i := range history {
		if history[i].ID == id {
			history[i].IsRead = true
		}
	}
	return n.history.Save(history)
}

// SetClock 注入时钟（测试用）
func (n *Notifier) SetClock(now func() time.Time) {
	n.now = now
}

// shouldSendEmail 邮件派发规则表：(分类, 优先级) 对照用户偏好
func shouldSendEmail(category model.NotificationCategory, priority model.Severity, prefs model.NotificationPreferences) bool {
	switch {
	case category == model.CategoryDeviation && priority == model.SeverityCritical && prefs.EmailOnCriticalDeviation:
		return true
	case category == model.CategoryCAPA && prefs.EmailOnCapaAssignment:
		return true
	case category == model.CategoryTask && priority == model.SeverityHigh && prefs.EmailOnOverdueTask:
		return true
	}
	return false
}
