package service

import (
	"testing"

	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/stretchr/testify/assert"
)

// TestCalculateRPN 测试风险优先数计算
func TestCalculateRPN(t *testing.T) {
	assert.Equal(t, 27, CalculateRPN(3, 3, 3))
	assert.Equal(t, 1000, CalculateRPN(10, 10, 10))
	assert.Equal(t, 1, CalculateRPN(1, 1, 1))
}

// TestClassifyResidualRisk 测试残余风险分级阈值
func TestClassifyResidualRisk(t *testing.T) {
	// 阈值边界：>125 / >64 / >27
	assert.Equal(t, model.RiskLow, ClassifyResidualRisk(1))
	assert.Equal(t, model.RiskLow, ClassifyResidualRisk(27))
	assert.Equal(t, model.RiskMedium, ClassifyResidualRisk(28))
	assert.Equal(t, model.RiskMedium, ClassifyResidualRisk(64))
	assert.Equal(t, model.RiskHigh, ClassifyResidualRisk(65))
	assert.Equal(t, model.RiskHigh, ClassifyResidualRisk(125))
	assert.Equal(t, model.RiskCritical, ClassifyResidualRisk(126))
	assert.Equal(t, model.RiskCritical, ClassifyResidualRisk(1000))
}

// TestScoreRiskEntry 测试条目评分写入
func TestScoreRiskEntry(t *testing.T) {
	entry := &model.RiskEntry{Severity: 6, Occurrence: 4, Detection: 3}
	ScoreRiskEntry(entry)
	assert.Equal(t, 72, entry.RPN)
	assert.Equal(t, model.RiskHigh, entry.ResidualRisk)
}

// TestScoreRiskSnapshot 测试快照评分写入
func TestScoreRiskSnapshot(t *testing.T) {
	snap := &model.RiskSnapshot{Severity: 2, Occurrence: 2, Detection: 2}
	ScoreRiskSnapshot(snap)
	assert.Equal(t, 8, snap.RPN)
	assert.Equal(t, model.RiskLow, snap.ResidualRisk)
}
