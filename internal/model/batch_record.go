package model

import (
	"errors"
	"time"
)

// StepCategory 工序分类
type StepCategory string

const (
	StepPreparation StepCategory = "Preparation"
	StepProcessing  StepCategory = "Processing"
	StepQC          StepCategory = "QC"
	StepPackaging   StepCategory = "Packaging"
)

// BMRStep 批记录工序步骤
// Verify 只有在同一步骤已 Sign 后才合法（字段级先后约束）
type BMRStep struct {
	ID          string       `json:"id"`
	Operation   string       `json:"operation"`
	Instruction string       `json:"instruction"`
	EquipmentID string       `json:"equipmentId,omitempty"`
	Limit       string       `json:"limit,omitempty"`
	Category    StepCategory `json:"category"`
	SignOffBy   string       `json:"signOffBy,omitempty"`
	SignOffAt   *time.Time   `json:"signOffAt,omitempty"`
	CheckedBy   string       `json:"checkedBy,omitempty"`
	CheckedAt   *time.Time   `json:"checkedAt,omitempty"`
	Observation string       `json:"observation,omitempty"`
	IsCritical  bool         `json:"isCritical"`
}

// Ingredient 配方物料行
type Ingredient struct {
	MaterialName   string `json:"materialName"`
	QtyPerUnit     string `json:"qtyPerUnit"`
	TheoreticalQty string `json:"theoreticalQty"`
	Unit           string `json:"unit"`
	LotNo          string `json:"lotNo,omitempty"`
}

// Approval 签批记录
type Approval struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Meaning     string `json:"meaning"`
}

// MFR 主生产配方记录（模板）
type MFR struct {
	Base
	ProductName        string       `json:"productName"`
	ProductCode        string       `json:"productCode"`
	DocumentNo         string       `json:"documentNo"`
	Revision           string       `json:"revision"`
	DosageForm         string       `json:"dosageForm"`
	ShelfLife          string       `json:"shelfLife"`
	BatchSize          string       `json:"batchSize"`
	EffectiveDate      string       `json:"effectiveDate,omitempty"`
	Ingredients        []Ingredient `json:"ingredients,omitempty"`
	PackagingMaterials []Ingredient `json:"packagingMaterials,omitempty"`
	Steps              []BMRStep    `json:"steps,omitempty"`
	PackagingSteps     []BMRStep    `json:"packagingSteps,omitempty"`
	Approvals          []Approval   `json:"approvals,omitempty"`
	Description        string       `json:"description,omitempty"`
	Composition        string       `json:"composition,omitempty"`
}

// Validate 验证 MFR 必填字段
func (m *MFR) Validate() error {
	if m.ProductName == "" {
		return errors.New("product name is required")
	}
	if m.ProductCode == "" {
		return errors.New("product code is required")
	}
	return nil
}

// LineClearance 清场确认
type LineClearance struct {
	VerifiedBy string     `json:"verifiedBy,omitempty"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`
	Cleared    bool       `json:"cleared"`
}

// BMRRecord 批生产记录（MFR 的执行实例）
// MFRRef 为弱引用，模板被删除不影响已签发批记录
type BMRRecord struct {
	Base
	MFRRef             Reference     `json:"mfrRef"`
	BatchNumber        string        `json:"batchNumber"`
	ProductName        string        `json:"productName"`
	IssuedBy           string        `json:"issuedBy"`
	Steps              []BMRStep     `json:"steps,omitempty"`
	PackagingSteps     []BMRStep     `json:"packagingSteps,omitempty"`
	Ingredients        []Ingredient  `json:"ingredients,omitempty"`
	PackagingMaterials []Ingredient  `json:"packagingMaterials,omitempty"`
	LineClearance      LineClearance `json:"lineClearance"`
}

// Validate 验证批记录必填字段
func (b *BMRRecord) Validate() error {
	if b.BatchNumber == "" {
		return errors.New("batch number is required")
	}
	if b.ProductName == "" {
		return errors.New("product name is required")
	}
	return nil
}

// FindStep 在工序或包装工序中查找步骤
func (b *BMRRecord) FindStep(stepID string) *BMRStep {
	for i := range b.Steps {
		if b.Steps[i].ID == stepID {
			return &b.Steps[i]
		}
	}
	for i := range b.PackagingSteps {
		if b.PackagingSteps[i].ID == stepID {
			return &b.PackagingSteps[i]
		}
	}
	return nil
}
