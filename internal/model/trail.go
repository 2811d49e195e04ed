package model

import (
	"errors"
	"time"
)

// AuditTrailEntry 审计追溯台账条目
// 只追加，正常操作下不可修改或删除
type AuditTrailEntry struct {
	ID              string    `json:"id"`
	Timestamp       time.Time `json:"timestamp"`
	User            string    `json:"user"`
	Action          string    `json:"action"`
	Module          string    `json:"module"`
	Details         string    `json:"details"`
	RecordID        string    `json:"recordId,omitempty"`
	PreviousValue   string    `json:"previousValue,omitempty"`
	NewValue        string    `json:"newValue,omitempty"`
	ReasonForChange string    `json:"reasonForChange,omitempty"`
}

// Validate 验证台账条目
func (e *AuditTrailEntry) Validate() error {
	if e.ID == "" {
		return errors.New("audit entry ID is required")
	}
	if e.User == "" {
		return errors.New("user is required")
	}
	if e.Action == "" {
		return errors.New("action is required")
	}
	if e.Module == "" {
		return errors.New("module is required")
	}
	return nil
}
