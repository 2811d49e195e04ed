package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/repository"
)

// BatchService 批记录签发服务接口
type BatchService interface {
	IssueFromMFR(mfrID string, batchNumber string, user model.User) (*model.BMRRecord, error)
}

// batchService 批记录签发服务实现
type batchService struct {
	mfrs *repository.Repository[*model.MFR]
	bmrs *repository.BMRRepository
}

// NewBatchService 创建批记录签发服务
func NewBatchService(mfrs *repository.Repository[*model.MFR], bmrs *repository.BMRRepository) BatchService {
	return &batchService{mfrs: mfrs, bmrs: bmrs}
}

// IssueFromMFR 从生效的主配方签发一份批生产记录
// 工序、配方物料逐项拷贝为可执行副本，步骤分配新的标识；
// 对模板的弱引用按展示编号建立
func (s *batchService) IssueFromMFR(mfrID string, batchNumber string, user model.User) (*model.BMRRecord, error) {
	mfr, err := s.mfrs.Get(mfrID)
	if err != nil {
		return nil, err
	}
	if mfr.CurrentStatus() != model.StatusEffective {
		return nil, fmt.Errorf("%w: MFR %s is not effective", repository.ErrValidation, mfr.DisplayNumber())
	}
	if batchNumber == "" {
		return nil, fmt.Errorf("%w: batch number is required", repository.ErrValidation)
	}

	bmr := &model.BMRRecord{
		MFRRef:             model.Reference{Kind: "MFR", Code: mfr.DisplayNumber()},
		BatchNumber:        batchNumber,
		ProductName:        mfr.ProductName,
		IssuedBy:           user.Username,
		Steps:              cloneSteps(mfr.Steps),
		PackagingSteps:     cloneSteps(mfr.PackagingSteps),
		Ingredients:        append([]model.Ingredient(nil), mfr.Ingredients...),
		PackagingMaterials: append([]model.Ingredient(nil), mfr.PackagingMaterials...),
	}

	return s.bmrs.Create(bmr, user)
}

// cloneSteps 拷贝工序模板为执行副本，清空签署字段并分配新标识
func cloneSteps(steps []model.BMRStep) []model.BMRStep {
	cloned := make([]model.BMRStep, len(steps))
	for i, step := range steps {
		cloned[i] = model.BMRStep{
			ID:          uuid.NewString(),
			Operation:   step.Operation,
			Instruction: step.Instruction,
			EquipmentID: step.EquipmentID,
			Limit:       step.Limit,
			Category:    step.Category,
			IsCritical:  step.IsCritical,
		}
	}
	return cloned
}
