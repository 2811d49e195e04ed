package model

import "errors"

// StabilityStudy 稳定性研究
type StabilityStudy struct {
	Base
	Product       string   `json:"product"`
	BatchNumber   string   `json:"batchNumber"`
	Condition     string   `json:"condition"`
	ProtocolID    string   `json:"protocolId"`
	StartDate     string   `json:"startDate"`
	NextTimePoint string   `json:"nextTimePoint"`
	Intervals     []string `json:"intervals,omitempty"`
}

// Validate 验证稳定性研究必填字段
func (s *StabilityStudy) Validate() error {
	if s.Product == "" {
		return errors.New("product is required")
	}
	if s.BatchNumber == "" {
		return errors.New("batch number is required")
	}
	if s.Condition == "" {
		return errors.New("storage condition is required")
	}
	return nil
}
