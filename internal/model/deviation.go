package model

import "errors"

// AIAnalysis AI 辅助分析结果，采纳前仅作建议展示
type AIAnalysis struct {
	RootCause        string `json:"rootCause"`
	CorrectiveAction string `json:"correctiveAction"`
	PreventiveAction string `json:"preventiveAction"`
}

// Deviation 偏差记录
type Deviation struct {
	Base
	Department  string      `json:"department"`
	Description string      `json:"description"`
	Severity    Severity    `json:"severity"`
	CAPARef     Reference   `json:"capaRef,omitempty"`
	AIAnalysis  *AIAnalysis `json:"aiAnalysis,omitempty"`
}

// Validate 验证偏差记录必填字段
func (d *Deviation) Validate() error {
	if d.Description == "" {
		return errors.New("description is required")
	}
	if d.Department == "" {
		return errors.New("department is required")
	}
	switch d.Severity {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
	default:
		return errors.New("severity must be one of Low, Medium, High, Critical")
	}
	return nil
}
