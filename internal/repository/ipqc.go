package repository

import (
	"github.com/pharmaqualify/qms-gin/internal/audit"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/store"
)

// NewIPQCRepository 创建过程控制检测仓储
// IPQC 记录的状态由统计计算得出并在创建前写入，没有状态机，
// 不支持任何流转
func NewIPQCRepository(adapter store.Adapter, trail *audit.Trail) *Repository[*model.IPQCRecord] {
	return New(adapter, trail, Config[*model.IPQCRecord]{
		Module:       "IPQC",
		Noun:         "IPQC Test",
		Key:          store.KeyIPQCRecords,
		IDPrefix:     "IPQC",
		NumberPrefix: "IPQC",
		SequenceBase: 1401,
		Validate:     func(r *model.IPQCRecord) error { return r.Validate() },
		SearchText: func(r *model.IPQCRecord) []string {
			return []string{r.BatchNumber, r.ProductName, r.TestName}
		},
	})
}
