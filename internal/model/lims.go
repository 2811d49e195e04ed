package model

import "errors"

// SampleType 检品类型
type SampleType string

const (
	SampleRawMaterial     SampleType = "Raw Material"
	SampleInProcess       SampleType = "In-Process"
	SampleFinishedProduct SampleType = "Finished Product"
	SampleStability       SampleType = "Stability"
)

// LIMSSample 实验室检品
type LIMSSample struct {
	Base
	ProductName string     `json:"productName"`
	BatchNo     string     `json:"batchNo"`
	Type        SampleType `json:"type"`
	Analyst     string     `json:"analyst"`
}

// Validate 验证检品必填字段
func (s *LIMSSample) Validate() error {
	if s.ProductName == "" {
		return errors.New("product name is required")
	}
	if s.BatchNo == "" {
		return errors.New("batch number is required")
	}
	if s.Analyst == "" {
		return errors.New("analyst is required")
	}
	return nil
}
