package model

import (
	"errors"
	"time"
)

// RiskClass 残余风险分级
type RiskClass string

const (
	RiskLow      RiskClass = "Low"
	RiskMedium   RiskClass = "Medium"
	RiskHigh     RiskClass = "High"
	RiskCritical RiskClass = "Critical"
)

// RiskSnapshot 再评估前的历史快照
type RiskSnapshot struct {
	Date         time.Time `json:"date"`
	Severity     int       `json:"severity"`
	Occurrence   int       `json:"occurrence"`
	Detection    int       `json:"detection"`
	RPN          int       `json:"rpn"`
	Mitigation   string    `json:"mitigation"`
	ResidualRisk RiskClass `json:"residualRisk"`
}

// RiskEntry 风险登记条目
// 再评估原地更新评分并将先前值归档到 History（最新在前），
// 是"记录创建后不可变"约定的唯一例外
type RiskEntry struct {
	Base
	ProcessStep  string         `json:"processStep"`
	Hazard       string         `json:"hazard"`
	Severity     int            `json:"severity"`
	Occurrence   int            `json:"occurrence"`
	Detection    int            `json:"detection"`
	RPN          int            `json:"rpn"`
	Mitigation   string         `json:"mitigation"`
	ResidualRisk RiskClass      `json:"residualRisk"`
	AssessedAt   time.Time      `json:"assessedAt"`
	History      []RiskSnapshot `json:"history,omitempty"`
}

// Snapshot 生成当前评分的历史快照
func (r *RiskEntry) Snapshot() RiskSnapshot {
	return RiskSnapshot{
		Date:         r.AssessedAt,
		Severity:     r.Severity,
		Occurrence:   r.Occurrence,
		Detection:    r.Detection,
		RPN:          r.RPN,
		Mitigation:   r.Mitigation,
		ResidualRisk: r.ResidualRisk,
	}
}

// Apply 用快照内容替换当前评分
func (r *RiskEntry) Apply(s RiskSnapshot) {
	r.AssessedAt = s.Date
	r.Severity = s.Severity
	r.Occurrence = s.Occurrence
	r.Detection = s.Detection
	r.RPN = s.RPN
	r.Mitigation = s.Mitigation
	r.ResidualRisk = s.ResidualRisk
}

// Validate 验证风险条目必填字段与评分范围
func (r *RiskEntry) Validate() error {
	if r.ProcessStep == "" {
		return errors.New("process step is required")
	}
	if r.Hazard == "" {
		return errors.New("hazard is required")
	}
	for _, score := range []int{r.Severity, r.Occurrence, r.Detection} {
		if score < 1 || score > 10 {
			return errors.New("severity, occurrence and detection must be between 1 and 10")
		}
	}
	return nil
}
