package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewID 生成记录主键：前缀 + 毫秒时间戳 + 随机后缀
// 随机后缀覆盖同一毫秒内批量创建的场景。主键一经分配不再复用
func NewID(prefix string) string {
	suffix := make([]byte, 3)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(suffix))
}

// NewDisplayNumber 生成展示编号：前缀 + 两位年份 + 序号
// 仅用于表格展示和跨模块弱引用，不作为主键
func NewDisplayNumber(prefix string, sequence int, now time.Time) string {
	return fmt.Sprintf("%s-%02d-%d", prefix, now.Year()%100, sequence)
}
