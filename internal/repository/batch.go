package repository

import (
	"fmt"

	"github.com/pharmaqualify/qms-gin/internal/audit"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/signature"
	"github.com/pharmaqualify/qms-gin/internal/statemachine"
	"github.com/pharmaqualify/qms-gin/internal/store"
)

// NewMFRRepository 创建主配方仓储
func NewMFRRepository(adapter store.Adapter, trail *audit.Trail) *Repository[*model.MFR] {
	machine := statemachine.New("MFR", statemachine.Config{
		Initial: model.StatusDraft,
		Transitions: []statemachine.Transition{
			{Action: ActionMakeEffective, From: []model.Status{model.StatusDraft}, To: model.StatusEffective},
			{Action: ActionSupersede, From: []model.Status{model.StatusEffective}, To: model.StatusSuperseded},
		},
		AdminOnly:         []statemachine.Action{ActionMakeEffective},
		SignatureRequired: []statemachine.Action{ActionMakeEffective},
	})

	return New(adapter, trail, Config[*model.MFR]{
		Module:       "MFR",
		Noun:         "MFR",
		Key:          store.KeyMFRs,
		IDPrefix:     "MFR",
		NumberPrefix: "MFR",
		SequenceBase: 1201,
		Machine:      machine,
		ActionLabels: map[statemachine.Action]string{
			ActionMakeEffective: "Made MFR Effective",
			ActionSupersede:     "Superseded MFR",
		},
		Validate: func(m *model.MFR) error { return m.Validate() },
		SearchText: func(m *model.MFR) []string {
			return []string{m.ProductName, m.ProductCode, m.DocumentNo}
		},
	})
}

// BMRRepository 批生产记录仓储
type BMRRepository struct {
	*Repository[*model.BMRRecord]
}

// NewBMRRepository 创建批生产记录仓储
func NewBMRRepository(adapter store.Adapter, trail *audit.Trail) *BMRRepository {
	machine := statemachine.New("BMR", statemachine.Config{
		Initial: model.StatusIssued,
		Transitions: []statemachine.Transition{
			{Action: ActionStart, From: []model.Status{model.StatusIssued}, To: model.StatusInProgress},
			{Action: ActionComplete, From: []model.Status{model.StatusInProgress}, To: model.StatusCompleted},
		},
		AdminOnly:         []statemachine.Action{ActionComplete},
		SignatureRequired: []statemachine.Action{ActionComplete},
	})

	return &BMRRepository{Repository: New(adapter, trail, Config[*model.BMRRecord]{
		Module:       "BMR",
		Noun:         "BMR",
		Key:          store.KeyBMRs,
		IDPrefix:     "BMR",
		NumberPrefix: "BMR",
		SequenceBase: 1301,
		Machine:      machine,
		ActionLabels: map[statemachine.Action]string{
			ActionStart:    "Started Batch Execution",
			ActionComplete: "Completed Batch Record",
		},
		Validate: func(b *model.BMRRecord) error { return b.Validate() },
		SearchText: func(b *model.BMRRecord) []string {
			return []string{b.BatchNumber, b.ProductName}
		},
	})}
}

// SignStep 执行人签署一个工序步骤
func (r *BMRRepository) SignStep(id string, stepID string, observation string, user model.User, sig *signature.Outcome) (*model.BMRRecord, error) {
	if sig == nil {
		return nil, fmt.Errorf("%w: step sign-off on BMR", ErrSignatureRequired)
	}
	return r.Update(id, user, "Signed BMR Step",
		fmt.Sprintf("Step %s signed off", stepID), sig.Reason,
		func(b *model.BMRRecord) error {
			step := b.FindStep(stepID)
			if step == nil {
				return fmt.Errorf("%w: step %s", ErrNotFound, stepID)
			}
			at := sig.SignedAt
			step.SignOffBy = sig.SignedBy
			step.SignOffAt = &at
			if observation != "" {
				step.Observation = observation
			}
			return nil
		})
}

// VerifyStep 复核一个工序步骤
// 同一步骤未经签署不得复核，这是字段级的先后约束
func (r *BMRRepository) VerifyStep(id string, stepID string, user model.User, sig *signature.Outcome) (*model.BMRRecord, error) {
	if sig == nil {
		return nil, fmt.Errorf("%w: step verification on BMR", ErrSignatureRequired)
	}
	return r.Update(id, user, "Verified BMR Step",
		fmt.Sprintf("Step %s verified", stepID), sig.Reason,
		func(b *model.BMRRecord) error {
			step := b.FindStep(stepID)
			if step == nil {
				return fmt.Errorf("%w: step %s", ErrNotFound, stepID)
			}
			if step.SignOffBy == "" {
				return fmt.Errorf("%w: step %s must be signed before verification", ErrValidation, stepID)
			}
			at := sig.SignedAt
			step.CheckedBy = sig.SignedBy
			step.CheckedAt = &at
			return nil
		})
}

// ClearLine 清场确认，需要 Line Clearance 含义的电子签名
func (r *BMRRepository) ClearLine(id string, user model.User, sig *signature.Outcome) (*model.BMRRecord, error) {
	if sig == nil {
		return nil, fmt.Errorf("%w: line clearance on BMR", ErrSignatureRequired)
	}
	return r.Update(id, user, "Confirmed Line Clearance",
		"Line clearance verified before batch execution", sig.Reason,
		func(b *model.BMRRecord) error {
			at := sig.SignedAt
			b.LineClearance = model.LineClearance{
				VerifiedBy: sig.SignedBy,
				VerifiedAt: &at,
				Cleared:    true,
			}
			return nil
		})
}
