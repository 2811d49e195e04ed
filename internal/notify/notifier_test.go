package notify

import (
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recipient = model.User{Username: "maryam", Role: "Admin", Email: "maryam@example.com"}

func newTestNotifier() *Notifier {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewNotifier(store.NewMemoryStore(), logger)
}

// captureBroadcaster 记录推送过的消息
type captureBroadcaster struct {
	messages [][]byte
}

func (b *captureBroadcaster) Broadcast(message []byte) {
	b.messages = append(b.messages, message)
}

// TestNotifyEmailRules 测试邮件派发规则表
func TestNotifyEmailRules(t *testing.T) {
	n := newTestNotifier()

	// Critical 偏差走邮件
	got, err := n.Notify(recipient, model.CategoryDeviation, model.SeverityCritical, "Critical Deviation", "details")
	require.NoError(t, err)
	assert.Equal(t, model.NotificationEmail, got.Type)

	// High 偏差不走邮件
	got, err = n.Notify(recipient, model.CategoryDeviation, model.SeverityHigh, "High Deviation", "details")
	require.NoError(t, err)
	assert.Equal(t, model.NotificationSystem, got.Type)

	// CAPA 指派不看优先级，走邮件
	got, err = n.Notify(recipient, model.CategoryCAPA, model.SeverityMedium, "CAPA Assigned", "details")
	require.NoError(t, err)
	assert.Equal(t, model.NotificationEmail, got.Type)

	// 审计类没有邮件规则
	got, err = n.Notify(recipient, model.CategoryAudit, model.SeverityCritical, "Audit Due", "details")
	require.NoError(t, err)
	assert.Equal(t, model.NotificationSystem, got.Type)
}

// TestNotifyPreferencesDisableEmail 测试偏好关闭后改走系统通知
func TestNotifyPreferencesDisableEmail(t *testing.T) {
	n := newTestNotifier()

	prefs := model.DefaultNotificationPreferences()
	prefs.EmailOnCriticalDeviation = false
	require.NoError(t, n.SavePreferences(prefs))

	got, err := n.Notify(recipient, model.CategoryDeviation, model.SeverityCritical, "Critical Deviation", "details")
	require.NoError(t, err)
	assert.Equal(t, model.NotificationSystem, got.Type)
}

// TestNotifyHistoryCap 测试历史上限淘汰最旧通知
func TestNotifyHistoryCap(t *testing.T) {
	n := newTestNotifier()

	for i := 0; i < MaxHistory+5; i++ {
		_, err := n.Notify(recipient, model.CategoryCAPA, model.SeverityMedium,
			fmt.Sprintf("CAPA %d", i), "details")
		require.NoError(t, err)
	}

	history, err := n.List()
	require.NoError(t, err)
	assert.Len(t, history, MaxHistory)
	// 最新在前
	assert.Equal(t, fmt.Sprintf("CAPA %d", MaxHistory+4), history[0].Title)
}

// TestNotifyMarkRead 测试标记已读
func TestNotifyMarkRead(t *testing.T) {
	n := newTestNotifier()

	got, err := n.Notify(recipient, model.CategoryCAPA, model.SeverityMedium, "CAPA Assigned", "details")
	require.NoError(t, err)
	assert.False(t, got.IsRead)

	require.NoError(t, n.MarkRead(got.ID))
	history, err := n.List()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].IsRead)
}

// TestNotifyBroadcast 测试实时推送旁路
func TestNotifyBroadcast(t *testing.T) {
	n := newTestNotifier()
	capture := &captureBroadcaster{}
	n.SetBroadcaster(capture)

	_, err := n.Notify(recipient, model.CategoryDeviation, model.SeverityCritical, "Critical Deviation", "details")
	require.NoError(t, err)

	require.Len(t, capture.messages, 1)
	var pushed model.Notification
	require.NoError(t, json.Unmarshal(capture.messages[0], &pushed))
	assert.Equal(t, "Critical Deviation", pushed.Title)
}

// TestNotifySanitizesText 测试推送前清理自由文本
func TestNotifySanitizesText(t *testing.T) {
	n := newTestNotifier()

	got, err := n.Notify(recipient, model.CategoryDeviation, model.SeverityCritical,
		"<script>alert(1)</script>", "details")
	require.NoError(t, err)
	assert.NotContains(t, got.Title, "<script>")
}

// TestPreferencesDefault 测试未设置时返回默认偏好
func TestPreferencesDefault(t *testing.T) {
	n := newTestNotifier()

	prefs, err := n.Preferences()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultNotificationPreferences(), prefs)
}
