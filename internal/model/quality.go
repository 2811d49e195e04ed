package model

import "errors"

// ChecklistItem 审核检查项
type ChecklistItem struct {
	CheckItem     string `json:"checkItem"`
	RegulatoryRef string `json:"regulatoryRef"`
	Completed     bool   `json:"completed"`
}

// AuditRecord 内部审核记录
type AuditRecord struct {
	Base
	Department string          `json:"department"`
	Auditor    string          `json:"auditor"`
	Checklist  []ChecklistItem `json:"checklist"`
}

// Validate 验证审核记录必填字段
func (a *AuditRecord) Validate() error {
	if a.Department == "" {
		return errors.New("department is required")
	}
	if a.Auditor == "" {
		return errors.New("auditor is required")
	}
	return nil
}

// OOSPhase OOS 调查阶段
type OOSPhase string

const (
	OOSPhaseIa OOSPhase = "Ia"
	OOSPhaseIb OOSPhase = "Ib"
	OOSPhaseII OOSPhase = "II"
)

// OOSRecord 超标检验结果记录
type OOSRecord struct {
	Base
	Product       string   `json:"product"`
	BatchNumber   string   `json:"batchNumber"`
	Test          string   `json:"test"`
	Specification string   `json:"specification"`
	Result        string   `json:"result"`
	Phase         OOSPhase `json:"phase"`
	Analyst       string   `json:"analyst"`
}

// Validate 验证 OOS 记录必填字段
func (o *OOSRecord) Validate() error {
	if o.Product == "" {
		return errors.New("product is required")
	}
	if o.Test == "" {
		return errors.New("test is required")
	}
	if o.Result == "" {
		return errors.New("result is required")
	}
	return nil
}

// RecallClass 召回分级
type RecallClass string

const (
	RecallClassI   RecallClass = "Class I"
	RecallClassII  RecallClass = "Class II"
	RecallClassIII RecallClass = "Class III"
)

// Recall 召回记录
type Recall struct {
	Base
	Product        string      `json:"product"`
	BatchNumber    string      `json:"batchNumber"`
	Reason         string      `json:"reason"`
	Classification RecallClass `json:"classification"`
}

// Validate 验证召回记录必填字段
func (r *Recall) Validate() error {
	if r.Product == "" {
		return errors.New("product is required")
	}
	if r.BatchNumber == "" {
		return errors.New("batch number is required")
	}
	if r.Reason == "" {
		return errors.New("reason is required")
	}
	return nil
}
