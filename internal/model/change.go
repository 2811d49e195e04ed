package model

import "errors"

// ChangeCategory 变更分类
type ChangeCategory string

const (
	ChangeProcess    ChangeCategory = "Process"
	ChangeEquipment  ChangeCategory = "Equipment"
	ChangeFacility   ChangeCategory = "Facility"
	ChangeIT         ChangeCategory = "IT"
	ChangeDocument   ChangeCategory = "Document"
	ChangeAnalytical ChangeCategory = "Analytical"
)

// ChangePriority 变更优先级
type ChangePriority string

const (
	ChangeMinor        ChangePriority = "Minor"
	ChangeMajor        ChangePriority = "Major"
	ChangeCriticalPrio ChangePriority = "Critical"
)

// ChangeTask 变更实施任务
type ChangeTask struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
	Completed   bool   `json:"completed"`
}

// ChangeRequest 变更申请
type ChangeRequest struct {
	Base
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    ChangeCategory `json:"category"`
	Priority    ChangePriority `json:"priority"`
	RiskScore   int            `json:"riskScore,omitempty"`
	Impacts     []string       `json:"impacts,omitempty"`
	InitiatedBy string         `json:"initiatedBy"`
	Tasks       []ChangeTask   `json:"tasks,omitempty"`
}

// Validate 验证变更申请必填字段
func (c *ChangeRequest) Validate() error {
	if c.Title == "" {
		return errors.New("title is required")
	}
	if c.Description == "" {
		return errors.New("description is required")
	}
	return nil
}
