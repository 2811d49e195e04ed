package model

import "errors"

// CAPASource CAPA 来源模块
type CAPASource string

const (
	CAPASourceDeviation CAPASource = "Deviation"
	CAPASourceAudit     CAPASource = "Audit"
	CAPASourceOOS       CAPASource = "OOS"
)

// CAPAType 纠正/预防类型
type CAPAType string

const (
	CAPACorrective CAPAType = "Corrective"
	CAPAPreventive CAPAType = "Preventive"
)

// CAPA 纠正预防措施记录
// SourceRef 为弱引用，来源记录删除后引用保持可展示
type CAPA struct {
	Base
	Source           CAPASource `json:"source"`
	SourceRef        Reference  `json:"sourceRef"`
	Description      string     `json:"description"`
	Type             CAPAType   `json:"type"`
	Owner            string     `json:"owner"`
	DueDate          string     `json:"dueDate"`
	VerificationDate string     `json:"verificationDate,omitempty"`
}

// Validate 验证 CAPA 必填字段
func (c *CAPA) Validate() error {
	if c.Description == "" {
		return errors.New("description is required")
	}
	if c.Owner == "" {
		return errors.New("owner is required")
	}
	switch c.Type {
	case CAPACorrective, CAPAPreventive:
	default:
		return errors.New("type must be Corrective or Preventive")
	}
	return nil
}
