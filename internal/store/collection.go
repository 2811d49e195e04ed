package store

import (
	"encoding/json"
	"fmt"
)

// 各模块集合键。键名沿用既有数据布局，便于历史导出包直接导入
const (
	KeyDeviations    = "pharma_deviations_v1"
	KeyCAPAs         = "pharma_capa_v4"
	KeyAuditRecords  = "pharma_audits_v1"
	KeyRiskRegister  = "pharma_risk_register_v1"
	KeyOOSRecords    = "pharma_oos_v1"
	KeyRecalls       = "pharma_recalls_v1"
	KeyChanges       = "pharma_changes_v1"
	KeyStability     = "pharma_stability_v1"
	KeyInventory     = "pharma_inventory_v1"
	KeyLIMSSamples   = "pharma_lims_v1"
	KeyCOARecords    = "pharma_coa_v1"
	KeyIPQCRecords   = "pharma_ipqc_v1"
	KeyMFRs          = "pharma_mfr_v1"
	KeyBMRs          = "pharma_bmr_v1"
	KeyAuditTrail    = "pharma_master_audit_trail_v6"
	KeyNotifications = "pharma_notifications"
	KeyNotifPrefs    = "pharma_notification_prefs"
)

// AllKeys 所有命名集合，批量导出/导入的遍历范围
func AllKeys() []string {
	return []string{
		KeyDeviations, KeyCAPAs, KeyAuditRecords, KeyRiskRegister,
		KeyOOSRecords, KeyRecalls, KeyChanges, KeyStability,
		KeyInventory, KeyLIMSSamples, KeyCOARecords, KeyIPQCRecords,
		KeyMFRs, KeyBMRs, KeyAuditTrail, KeyNotifications, KeyNotifPrefs,
	}
}

// Collection 序列化集合访问器
// 集合形状固定为"记录有序列表，最新在前"，每次读取都走底层存储，
// 不持有跨请求的内存缓存
type Collection[T any] struct {
	adapter Adapter
	name    string
}

// NewCollection 创建集合访问器
func NewCollection[T any](adapter Adapter, name string) *Collection[T] {
	return &Collection[T]{adapter: adapter, name: name}
}

// Name 集合键名
func (c *Collection[T]) Name() string {
	return c.name
}

// Load 读取全部记录，集合不存在时返回空列表
func (c *Collection[T]) Load() ([]T, error) {
	doc, ok, err := c.adapter.Get(c.name)
	if err != nil {
		return nil, err
	}
	if !ok || doc == "" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(doc), &items); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", c.name, err)
	}
	return items, nil
}

// Save 整体写回集合
func (c *Collection[T]) Save(items []T) error {
	doc, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", c.name, err)
	}
	return c.adapter.Set(c.name, string(doc))
}
