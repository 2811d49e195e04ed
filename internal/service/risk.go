package service

import "github.com/pharmaqualify/qms-gin/internal/model"

// CalculateRPN 风险优先数 = 严重度 × 发生度 × 可检测度
func CalculateRPN(severity int, occurrence int, detection int) int {
	return severity * occurrence * detection
}

// ClassifyResidualRisk 按 RPN 划分残余风险等级
// 阈值：>125 Critical，>64 High，>27 Medium，否则 Low
func ClassifyResidualRisk(rpn int) model.RiskClass {
	switch {
	case rpn > 125:
		return model.RiskCritical
	case rpn > 64:
		return model.RiskHigh
	case rpn > 27:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// ScoreRiskEntry 计算并写入条目的 RPN 与残余风险等级
func ScoreRiskEntry(e *model.RiskEntry) {
	e.RPN = CalculateRPN(e.Severity, e.Occurrence, e.Detection)
	e.ResidualRisk = ClassifyResidualRisk(e.RPN)
}

// ScoreRiskSnapshot 计算并写入快照的 RPN 与残余风险等级
func ScoreRiskSnapshot(s *model.RiskSnapshot) {
	s.RPN = CalculateRPN(s.Severity, s.Occurrence, s.Detection)
	s.ResidualRisk = ClassifyResidualRisk(s.RPN)
}
