package model

import "errors"

// SpecStatus 检验项判定结果
type SpecStatus string

const (
	SpecPass    SpecStatus = "pass"
	SpecFail    SpecStatus = "fail"
	SpecPending SpecStatus = "Pending"
	SpecNA      SpecStatus = "N/A"
)

// SpecCategory 检验项分类
type SpecCategory string

const (
	SpecDescriptive     SpecCategory = "Descriptive"
	SpecPhysical        SpecCategory = "Physical"
	SpecChemical        SpecCategory = "Chemical"
	SpecMicrobiological SpecCategory = "Microbiological"
)

// SpecLine 检验项：项目、标准、结果与判定
type SpecLine struct {
	Test     string       `json:"test"`
	Spec     string       `json:"spec"`
	Result   string       `json:"result"`
	Status   SpecStatus   `json:"status"`
	Category SpecCategory `json:"category"`
}

// COACategory 报告类型
type COACategory string

const (
	COAFinishedProduct COACategory = "Finished Product"
	COARawMaterial     COACategory = "Raw Material"
	COAWaterAnalysis   COACategory = "Water Analysis"
	COAMicrobiology    COACategory = "Microbiology"
	COAUtilities       COACategory = "Utilities"
	COAAPI             COACategory = "API"
)

// COARecord 检验报告书
type COARecord struct {
	Base
	ProductName      string      `json:"productName"`
	GenericName      string      `json:"genericName,omitempty"`
	DosageForm       string      `json:"dosageForm,omitempty"`
	BatchNumber      string      `json:"batchNumber"`
	BatchSize        string      `json:"batchSize,omitempty"`
	MfgDate          string      `json:"mfgDate,omitempty"`
	ExpiryDate       string      `json:"expiryDate,omitempty"`
	Category         COACategory `json:"category"`
	Specs            []SpecLine  `json:"specs"`
	StorageCondition string      `json:"storageCondition,omitempty"`
	Manufacturer     string      `json:"manufacturer,omitempty"`
	AnalyzedBy       string      `json:"analyzedBy,omitempty"`
	CheckedBy        string      `json:"checkedBy,omitempty"`
	ReleasedBy       string      `json:"releasedBy,omitempty"`
	ReleaseDate      string      `json:"releaseDate,omitempty"`
}

// Validate 验证报告必填字段
func (c *COARecord) Validate() error {
	if c.ProductName == "" {
		return errors.New("product name is required")
	}
	if c.BatchNumber == "" {
		return errors.New("batch number is required")
	}
	if len(c.Specs) == 0 {
		return errors.New("at least one specification line is required")
	}
	return nil
}

// IsComplying 汇总合规声明：所有检验项均为 pass 才算 COMPLYING
func (c *COARecord) IsComplying() bool {
	for _, line := range c.Specs {
		if line.Status != SpecPass {
			return false
		}
	}
	return true
}
