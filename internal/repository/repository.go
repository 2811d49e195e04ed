package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pharmaqualify/qms-gin/internal/audit"
	"github.com/pharmaqualify/qms-gin/internal/idgen"
	"github.com/pharmaqualify/qms-gin/internal/metrics"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/signature"
	"github.com/pharmaqualify/qms-gin/internal/statemachine"
	"github.com/pharmaqualify/qms-gin/internal/store"
)

// Config 模块仓储配置
type Config[T model.Record] struct {
	// Module 审计台账里的模块名，如 "Deviations"
	Module string
	// Noun 审计动作里的记录名词，如 "Deviation"
	Noun string
	// Key 集合键
	Key string
	// IDPrefix 主键前缀，如 "DEV"
	IDPrefix string
	// NumberPrefix 展示编号前缀，如 "D"
	NumberPrefix string
	// SequenceBase 展示编号起始序号
	SequenceBase int
	// Machine 状态机；为 nil 时记录状态由调用方计算（如 IPQC），不支持流转
	Machine *statemachine.Machine
	// ActionLabels 审计动作的约定词汇表，缺省为 "<Action> <Noun>"
	ActionLabels map[statemachine.Action]string
	// Validate 模块必填字段校验
	Validate func(T) error
	// SearchText 文本搜索覆盖的字段
	SearchText func(T) []string
	// OnCreate 创建后的旁路钩子（通知等），失败不影响创建结果
	OnCreate func(T, model.User)
	// OnTransition 流转提交前的模块定制（如 COA 放行时盖章），与流转同一逻辑单元
	OnTransition func(T, statemachine.Action, model.User, *signature.Outcome)
}

// Filter 列表过滤条件
type Filter struct {
	Search string
	Status model.Status
}

// Repository 通用记录仓储
// 所有模块共用同一套 create/list/transition/delete 语义，模块差异
// 全部收敛在 Config 里。持久化集合是唯一事实来源，每次操作都重新
// 读取，不依赖跨请求的内存缓存
type Repository[T model.Record] struct {
	cfg   Config[T]
	col   *store.Collection[T]
	trail *audit.Trail
	mu    sync.Mutex
	now   func() time.Time
}

// New 创建模块仓储
func New[T model.Record](adapter store.Adapter, trail *audit.Trail, cfg Config[T]) *Repository[T] {
	return &Repository[T]{
		cfg:   cfg,
		col:   store.NewCollection[T](adapter, cfg.Key),
		trail: trail,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Module 审计模块名
func (r *Repository[T]) Module() string {
	return r.cfg.Module
}

// RequiresSignature 该动作是否需要电子签名
func (r *Repository[T]) RequiresSignature(action statemachine.Action) bool {
	return r.cfg.Machine != nil && r.cfg.Machine.RequiresSignature(action)
}

// Create 创建记录：校验、分配标识与初始状态、头插持久化、写审计
func (r *Repository[T]) Create(rec T, user model.User) (T, error) {
	var zero T
	if r.cfg.Validate != nil {
		if err := r.cfg.Validate(rec); err != nil {
			return zero, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.col.Load()
	if err != nil {
		return zero, err
	}

	now := r.now()
	status := rec.CurrentStatus()
	if r.cfg.Machine != nil {
		status = r.cfg.Machine.Initial()
	}
	number := idgen.NewDisplayNumber(r.cfg.NumberPrefix, r.cfg.SequenceBase+len(items), now)
	rec.Stamp(idgen.NewID(r.cfg.IDPrefix), number, status, now)

	items = append([]T{rec}, items...)
	if err := r.col.Save(items); err != nil {
		return zero, err
	}

	if err := r.trail.Record(user, "Created "+r.cfg.Noun, r.cfg.Module,
		fmt.Sprintf("New %s %s logged", strings.ToLower(r.cfg.Noun), number),
		&audit.Meta{RecordID: rec.RecordID(), NewValue: rec}); err != nil {
		return zero, err
	}
	metrics.RecordCreated(r.cfg.Module)

	if r.cfg.OnCreate != nil {
		r.cfg.OnCreate(rec, user)
	}
	return rec, nil
}

// List 读取记录列表（插入序、最新在前），可选文本搜索和状态过滤
func (r *Repository[T]) List(filter *Filter) ([]T, error) {
	items, err := r.col.Load()
	if err != nil {
		return nil, err
	}
	if filter == nil || (filter.Search == "" && filter.Status == "") {
		return items, nil
	}

	matched := make([]T, 0, len(items))
	needle := strings.ToLower(filter.Search)
	for _, item := range items {
		if filter.Status != "" && item.CurrentStatus() != filter.Status {
			continue
		}
		if needle != "" && !r.matchesSearch(item, needle) {
			continue
		}
		matched = append(matched, item)
	}
	return matched, nil
}

func (r *Repository[T]) matchesSearch(item T, needle string) bool {
	if strings.Contains(strings.ToLower(item.DisplayNumber()), needle) {
		return true
	}
	if r.cfg.SearchText == nil {
		return false
	}
	for _, field := range r.cfg.SearchText(item) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Get 按主键查找记录
func (r *Repository[T]) Get(id string) (T, error) {
	var zero T
	items, err := r.col.Load()
	if err != nil {
		return zero, err
	}
	for _, item := range items {
		if item.RecordID() == id {
			return item, nil
		}
	}
	return zero, fmt.Errorf("%w: %s %s", ErrNotFound, strings.ToLower(r.cfg.Noun), id)
}

// Transition 执行状态流转并与审计写入作为一个逻辑单元提交
// 需要签名的动作必须携带已确认的签名结果；签名交互的排序由调用方
// 负责，仓储本身保持同步语义。任何拒绝都不产生部分变更
func (r *Repository[T]) Transition(id string, action statemachine.Action, user model.User, sig *signature.Outcome) (T, error) {
	var zero T
	if r.cfg.Machine == nil {
		return zero, fmt.Errorf("%w: module %s has no transitions", statemachine.ErrInvalidTransition, r.cfg.Module)
	}
	if r.cfg.Machine.RequiresSignature(action) && sig == nil {
		return zero, fmt.Errorf("%w: action %s on %s", ErrSignatureRequired, action, r.cfg.Noun)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.col.Load()
	if err != nil {
		return zero, err
	}
	idx := -1
	for i, item := range items {
		if item.RecordID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		metrics.RecordTransition(r.cfg.Module, string(action), "error")
		return zero, fmt.Errorf("%w: %s %s", ErrNotFound, strings.ToLower(r.cfg.Noun), id)
	}

	rec := items[idx]
	next, err := r.cfg.Machine.Next(rec.CurrentStatus(), action, user)
	if err != nil {
		switch {
		case errors.Is(err, statemachine.ErrUnauthorized):
			metrics.RecordTransition(r.cfg.Module, string(action), "unauthorized")
		case errors.Is(err, statemachine.ErrInvalidTransition):
			metrics.RecordTransition(r.cfg.Module, string(action), "invalid")
		}
		return zero, err
	}

	previous, _ := json.Marshal(rec)
	rec.SetStatus(next)
	if r.cfg.Machine.IsTerminal(next) {
		rec.Close(r.now())
	}
	if r.cfg.OnTransition != nil {
		r.cfg.OnTransition(rec, action, user, sig)
	}

	items[idx] = rec
	if err := r.col.Save(items); err != nil {
		return zero, err
	}

	meta := &audit.Meta{
		RecordID:      rec.RecordID(),
		PreviousValue: json.RawMessage(previous),
		NewValue:      rec,
	}
	if sig != nil {
		meta.Reason = sig.Reason
	}
	if err := r.trail.Record(user, r.actionLabel(action), r.cfg.Module,
		fmt.Sprintf("%s %s: %s", r.cfg.Noun, rec.DisplayNumber(), r.actionLabel(action)),
		meta); err != nil {
		return zero, err
	}
	metrics.RecordTransition(r.cfg.Module, string(action), "success")
	return rec, nil
}

// Update 审计化的记录变更，用于流转之外的数据修改
// （偏差关联 CAPA、风险再评估、批记录步骤签名等）
func (r *Repository[T]) Update(id string, user model.User, action string, details string, reason string, mutate func(T) error) (T, error) {
	var zero T

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.col.Load()
	if err != nil {
		return zero, err
	}
	idx := -1
	for i, item := range items {
		if item.RecordID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return zero, fmt.Errorf("%w: %s %s", ErrNotFound, strings.ToLower(r.cfg.Noun), id)
	}

	rec := items[idx]
	previous, _ := json.Marshal(rec)
	if err := mutate(rec); err != nil {
		return zero, err
	}

	items[idx] = rec
	if err := r.col.Save(items); err != nil {
		return zero, err
	}

	if err := r.trail.Record(user, action, r.cfg.Module, details, &audit.Meta{
		RecordID:      rec.RecordID(),
		PreviousValue: json.RawMessage(previous),
		NewValue:      rec,
		Reason:        reason,
	}); err != nil {
		return zero, err
	}
	return rec, nil
}

// Delete 删除记录，各模块约定仅管理员可删
// 审计条目保留被删记录的完整快照，删除后仍可追溯
func (r *Repository[T]) Delete(id string, user model.User) error {
	if !user.IsAdmin() {
		return fmt.Errorf("%w: delete requires admin role", statemachine.ErrUnauthorized)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.col.Load()
	if err != nil {
		return err
	}
	idx := -1
	for i, item := range items {
		if item.RecordID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, strings.ToLower(r.cfg.Noun), id)
	}

	removed := items[idx]
	items = append(items[:idx], items[idx+1:]...)
	if err := r.col.Save(items); err != nil {
		return err
	}

	return r.trail.Record(user, "Deleted "+r.cfg.Noun, r.cfg.Module,
		fmt.Sprintf("%s %s deleted", r.cfg.Noun, removed.DisplayNumber()),
		&audit.Meta{RecordID: removed.RecordID(), PreviousValue: removed})
}

// SetClock 注入时钟（测试用）
func (r *Repository[T]) SetClock(now func() time.Time) {
	r.now = now
}

func (r *Repository[T]) actionLabel(action statemachine.Action) string {
	if label, ok := r.cfg.ActionLabels[action]; ok {
		return label
	}
	return fmt.Sprintf("%s %s", action, r.cfg.Noun)
}
