package model

import "errors"

// IPQCStatus 过程控制判定
type IPQCStatus string

const (
	IPQCPass     IPQCStatus = "PASS"
	IPQCFail     IPQCStatus = "FAIL"
	IPQCMarginal IPQCStatus = "MARGINAL"
)

// IPQCRecord 过程质量控制检测记录
// Status 由统计计算得出，不走状态机流转
type IPQCRecord struct {
	Base
	BatchNumber     string    `json:"batchNumber"`
	ProductName     string    `json:"productName"`
	ProductionStage string    `json:"productionStage,omitempty"`
	TestName        string    `json:"testName"`
	Readings        []float64 `json:"readings"`
	Mean            string    `json:"mean"`
	SD              string    `json:"sd"`
	Cpk             string    `json:"cpk"`
	USL             float64   `json:"usl"`
	LSL             float64   `json:"lsl"`
	Unit            string    `json:"unit,omitempty"`
}

// Validate 验证检测记录必填字段
func (r *IPQCRecord) Validate() error {
	if r.BatchNumber == "" {
		return errors.New("batch number is required")
	}
	if r.TestName == "" {
		return errors.New("test name is required")
	}
	return nil
}
