package service

import (
	"testing"

	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComputeReadingStats 测试读数统计与判定
func TestComputeReadingStats(t *testing.T) {
	stats, err := ComputeReadingStats([]float64{99, 100, 101}, 105, 95)
	require.NoError(t, err)
	assert.InDelta(t, 100, stats.Mean, 1e-9)
	assert.InDelta(t, 0.8165, stats.SD, 1e-3)
	assert.Greater(t, stats.Cpk, 1.0)
	assert.Equal(t, model.IPQCPass, stats.Status)
}

// TestComputeReadingStatsTooFew 测试少于 3 个读数不可判定
func TestComputeReadingStatsTooFew(t *testing.T) {
	_, err := ComputeReadingStats([]float64{100, 101}, 105, 95)
	assert.Error(t, err)

	_, err = ComputeReadingStats(nil, 105, 95)
	assert.Error(t, err)
}

// TestComputeReadingStatsZeroSD 测试 σ=0 时 Cpk 取哨兵值
func TestComputeReadingStatsZeroSD(t *testing.T) {
	stats, err := ComputeReadingStats([]float64{100, 100, 100}, 105, 95)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.SD)
	assert.Equal(t, 2.0, stats.Cpk)
	assert.Equal(t, model.IPQCPass, stats.Status)
}

// TestComputeReadingStatsFail 测试越限读数优先判 FAIL
func TestComputeReadingStatsFail(t *testing.T) {
	stats, err := ComputeReadingStats([]float64{100, 100, 106}, 105, 95)
	require.NoError(t, err)
	assert.Equal(t, model.IPQCFail, stats.Status)

	stats, err = ComputeReadingStats([]float64{94, 100, 100}, 105, 95)
	require.NoError(t, err)
	assert.Equal(t, model.IPQCFail, stats.Status)
}

// TestComputeReadingStatsMarginal 测试 Cpk 不足时判 MARGINAL
func TestComputeReadingStatsMarginal(t *testing.T) {
	// 读数均在限内但离散度大，Cpk < 1.0
	stats, err := ComputeReadingStats([]float64{96, 100, 104}, 105, 95)
	require.NoError(t, err)
	assert.Less(t, stats.Cpk, 1.0)
	assert.Equal(t, model.IPQCMarginal, stats.Status)
}

// TestApplyReadingStats 测试统计结果写入记录
func TestApplyReadingStats(t *testing.T) {
	rec := &model.IPQCRecord{}
	ApplyReadingStats(rec, ReadingStats{Mean: 100.1234, SD: 0.5678, Cpk: 1.456, Status: model.IPQCPass})

	assert.Equal(t, "100.123", rec.Mean)
	assert.Equal(t, "0.568", rec.SD)
	assert.Equal(t, "1.46", rec.Cpk)
	assert.Equal(t, model.Status(model.IPQCPass), rec.CurrentStatus())
}

// TestEvaluateWeightVariation 测试片重差异判定
func TestEvaluateWeightVariation(t *testing.T) {
	// 250mg 以上 ±5%
	assert.Equal(t, model.IPQCPass, EvaluateWeightVariation([]float64{500, 505, 495}, 500))
	// 一两片超限判 MARGINAL
	assert.Equal(t, model.IPQCMarginal, EvaluateWeightVariation([]float64{500, 530, 500}, 500))
	// 任一片超过 2 倍限度直接 FAIL
	assert.Equal(t, model.IPQCFail, EvaluateWeightVariation([]float64{500, 560, 500}, 500))
	// 超过 2 片越限 FAIL
	assert.Equal(t, model.IPQCFail, EvaluateWeightVariation([]float64{530, 530, 530}, 500))

	// 80mg 以下 ±10%
	assert.Equal(t, model.IPQCPass, EvaluateWeightVariation([]float64{50, 54, 46}, 50))

	// 非法输入
	assert.Equal(t, model.IPQCFail, EvaluateWeightVariation(nil, 500))
	assert.Equal(t, model.IPQCFail, EvaluateWeightVariation([]float64{500}, 0))
}

// TestEvaluateLossOnDrying 测试干燥失重判定
func TestEvaluateLossOnDrying(t *testing.T) {
	loss, status := EvaluateLossOnDrying(100, 99.5)
	assert.InDelta(t, 0.5, loss, 1e-9)
	assert.Equal(t, model.IPQCPass, status)

	_, status = EvaluateLossOnDrying(100, 99.05)
	assert.Equal(t, model.IPQCMarginal, status)

	_, status = EvaluateLossOnDrying(100, 98.5)
	assert.Equal(t, model.IPQCFail, status)

	_, status = EvaluateLossOnDrying(0, 0)
	assert.Equal(t, model.IPQCFail, status)
}
