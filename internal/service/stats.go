package service

import (
	"fmt"
	"math"
	"strconv"

	"github.com/pharmaqualify/qms-gin/internal/model"
)

// ReadingStats 过程控制读数统计结果
type ReadingStats struct {
	Mean   float64
	SD     float64
	Cpk    float64
	Status model.IPQCStatus
}

// ComputeReadingStats 计算读数集的均值、总体标准差、Cpk 与判定
// 少于 3 个读数不可判定；σ=0 时 Cpk 取哨兵值 2.0。判定规则：
// 任一读数越限为 FAIL，Cpk<1.0 为 MARGINAL，否则 PASS
func ComputeReadingStats(readings []float64, usl float64, lsl float64) (ReadingStats, error) {
	if len(readings) < 3 {
		return ReadingStats{}, fmt.Errorf("at least 3 readings are required, got %d", len(readings))
	}

	var sum float64
	for _, r := range readings {
		sum += r
	}
	mean := sum / float64(len(readings))

	var sqDiff float64
	for _, r := range readings {
		sqDiff += (r - mean) * (r - mean)
	}
	sd := math.Sqrt(sqDiff / float64(len(readings)))

	cpk := 2.0
	if sd != 0 {
		cpk = math.Min((usl-mean)/(3*sd), (mean-lsl)/(3*sd))
	}

	status := model.IPQCPass
	for _, r := range readings {
		if r > usl || r < lsl {
			status = model.IPQCFail
			break
		}
	}
	if status == model.IPQCPass && cpk < 1.0 {
		status = model.IPQCMarginal
	}

	return ReadingStats{Mean: mean, SD: sd, Cpk: cpk, Status: status}, nil
}

// ApplyReadingStats 将统计结果写入记录
func ApplyReadingStats(rec *model.IPQCRecord, stats ReadingStats) {
	rec.Mean = strconv.FormatFloat(stats.Mean, 'f', 3, 64)
	rec.SD = strconv.FormatFloat(stats.SD, 'f', 3, 64)
	rec.Cpk = strconv.FormatFloat(stats.Cpk, 'f', 2, 64)
	rec.SetStatus(model.Status(stats.Status))
}

// EvaluateWeightVariation 片重差异判定
// 药典约定的重量分档限度：80mg 以下 ±10%，80–250mg ±7.5%，
// 250mg 以上 ±5%；超过 2 片越限或任一片超过 2 倍限度即不合格
func EvaluateWeightVariation(weights []float64, targetMg float64) model.IPQCStatus {
	if len(weights) == 0 || targetMg <= 0 {
		return model.IPQCFail
	}

	limit := 0.05
	switch {
	case targetMg < 80:
		limit = 0.10
	case targetMg <= 250:
		limit = 0.075
	}

	outliers := 0
	for _, w := range weights {
		dev := math.Abs(w-targetMg) / targetMg
		if dev > 2*limit {
			return model.IPQCFail
		}
		if dev > limit {
			outliers++
		}
	}
	if outliers > 2 {
		return model.IPQCFail
	}
	if outliers > 0 {
		return model.IPQCMarginal
	}
	return model.IPQCPass
}

// EvaluateLossOnDrying 干燥失重判定，限度 NMT 1.0%
func EvaluateLossOnDrying(initialWeight float64, driedWeight float64) (float64, model.IPQCStatus) {
	if initialWeight <= 0 {
		return 0, model.IPQCFail
	}
	loss := (initialWeight - driedWeight) / initialWeight * 100
	if loss > 1.0 {
		return loss, model.IPQCFail
	}
	if loss > 0.9 {
		return loss, model.IPQCMarginal
	}
	return loss, model.IPQCPass
}
