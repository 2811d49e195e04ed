package model

import "time"

// KVCollection 命名集合持久化模型
// 每个模块一个集合，整体替换写入；revision 单调递增，为将来的
// 条件写并发保护预留
type KVCollection struct {
	Name      string    `gorm:"primaryKey;type:varchar(128)"`
	Doc       string    `gorm:"type:text;not null"`
	Revision  int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName 指定表名
func (KVCollection) TableName() string {
	return "kv_collections"
}
