package audit

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaqualify/qms-gin/internal/metrics"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/store"
)

// MaxEntries 台账容量上限，超出后淘汰最旧条目
const MaxEntries = 5000

// Meta 审计条目附加信息
type Meta struct {
	RecordID      string
	PreviousValue interface{}
	NewValue      interface{}
	Reason        string
}

// Trail 审计追溯台账
// 只追加：每次状态或数据变更恰好写入一条，最新在前。各模块仓储
// 共用一本台账，互不覆盖对方条目
type Trail struct {
	col *store.Collection[model.AuditTrailEntry]
	mu  sync.Mutex
	now func() time.Time
}

// NewTrail 创建审计台账
func NewTrail(adapter store.Adapter) *Trail {
	return &Trail{
		col: store.NewCollection[model.AuditTrailEntry](adapter, store.KeyAuditTrail),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Record 追加一条审计条目
func (t *Trail) Record(user model.User, action string, module string, details string, meta *Meta) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries, err := t.col.Load()
	if err != nil {
		return err
	}

	entry := model.AuditTrailEntry{
		ID:        fmt.Sprintf("LOG-%s", uuid.NewString()),
		Timestamp: t.now(),
		User:      user.Username,
		Action:    action,
		Module:    module,
		Details:   details,
	}
	if meta != nil {
		entry.RecordID = meta.RecordID
		entry.ReasonForChange = meta.Reason
		if meta.PreviousValue != nil {
			if raw, err := json.Marshal(meta.PreviousValue); err == nil {
				entry.PreviousValue = string(raw)
			}
		}
		if meta.NewValue != nil {
			if raw, err := json.Marshal(meta.NewValue); err == nil {
				entry.NewValue = string(raw)
			}
		}
	}

	updated := append([]model.AuditTrailEntry{entry}, entries...)
	if len(updated) > MaxEntries {
		updated = updated[:MaxEntries]
	}
	if err := t.col.Save(updated); err != nil {
		return err
	}
	metrics.RecordAuditEntry()
	return nil
}

// Entries 全部条目，最新在前
func (t *Trail) Entries() ([]model.AuditTrailEntry, error) {
	return t.col.Load()
}

// ByRecord 按记录标识过滤，记录删除后条目依然可查
func (t *Trail) ByRecord(recordID string) ([]model.AuditTrailEntry, error) {
	return t.filter(func(e model.AuditTrailEntry) bool { return e.RecordID == recordID })
}

// ByModule 按模块过滤
func (t *Trail) ByModule(module string) ([]model.AuditTrailEntry, error) {
	return t.filter(func(e model.AuditTrailEntry) bool { return e.Module == module })
}

// ByUser 按操作用户过滤
func (t *Trail) ByUser(username string) ([]model.AuditTrailEntry, error) {
	return t.filter(func(e model.AuditTrailEntry) bool { return e.User == username })
}

func (t *Trail) filter(keep func(model.AuditTrailEntry) bool) ([]model.AuditTrailEntry, error) {
	entries, err := t.col.Load()
	if err != nil {
		return nil, err
	}
	matched := make([]model.AuditTrailEntry, 0, len(entries))
	for _, e := range entries {
		if keep(e) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// SetClock 注入时钟（测试用）
func (t *Trail) SetClock(now func() time.Time) {
	t.now = now
}
