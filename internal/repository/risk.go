package repository

import (
	"fmt"

	"github.com/pharmaqualify/qms-gin/internal/audit"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/statemachine"
	"github.com/pharmaqualify/qms-gin/internal/store"
)

// RiskRepository 风险登记仓储
// 风险条目是记录创建后不可变约定的唯一例外：再评估原地更新评分，
// 先前值归档进 History
type RiskRepository struct {
	*Repository[*model.RiskEntry]
}

// NewRiskRepository 创建风险登记仓储
func NewRiskRepository(adapter store.Adapter, trail *audit.Trail) *RiskRepository {
	machine := statemachine.New("Risk Entry", statemachine.Config{
		Initial: model.StatusPending,
		Transitions: []statemachine.Transition{
			{Action: ActionApprove, From: []model.Status{model.StatusPending}, To: model.StatusApproved},
			{Action: ActionClose, From: []model.Status{model.StatusPending, model.StatusApproved}, To: model.StatusClosed},
		},
		AdminOnly:         []statemachine.Action{ActionApprove, ActionClose},
		SignatureRequired: []statemachine.Action{ActionApprove},
	})

	return &RiskRepository{Repository: New(adapter, trail, Config[*model.RiskEntry]{
		Module:       "Risk Register",
		Noun:         "Risk Entry",
		Key:          store.KeyRiskRegister,
		IDPrefix:     "RISK",
		NumberPrefix: "RA",
		SequenceBase: 601,
		Machine:      machine,
		ActionLabels: map[statemachine.Action]string{
			ActionApprove: "Approved Risk Assessment",
			ActionClose:   "Closed Risk Entry",
		},
		Validate: func(r *model.RiskEntry) error { return r.Validate() },
		SearchText: func(r *model.RiskEntry) []string {
			return []string{r.ProcessStep, r.Hazard, r.Mitigation}
		},
	})}
}

// Reassess 再评估：当前评分归档进 History（最新在前），新评分生效
func (r *RiskRepository) Reassess(id string, next model.RiskSnapshot, user model.User) (*model.RiskEntry, error) {
	if err := validateScores(next); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return r.Update(id, user, "Reassessed Risk",
		fmt.Sprintf("Risk reassessed, RPN %d", next.RPN), "",
		func(e *model.RiskEntry) error {
			e.History = append([]model.RiskSnapshot{e.Snapshot()}, e.History...)
			e.Apply(next)
			return nil
		})
}

// Revert 回滚到历史第 index 条评分
// 被替换的当前评分归档进 History，回滚再回滚后历史长度净不变
func (r *RiskRepository) Revert(id string, index int, user model.User) (*model.RiskEntry, error) {
	return r.Update(id, user, "Reverted Risk Assessment",
		fmt.Sprintf("Risk assessment reverted to historical entry %d", index), "",
		func(e *model.RiskEntry) error {
			if index < 0 || index >= len(e.History) {
				return fmt.Errorf("%w: history index %d out of range", ErrValidation, index)
			}
			restored := e.History[index]
			e.History = append(e.History[:index], e.History[index+1:]...)
			e.History = append([]model.RiskSnapshot{e.Snapshot()}, e.History...)
			e.Apply(restored)
			return nil
		})
}

func validateScores(s model.RiskSnapshot) error {
	for _, score := range []int{s.Severity, s.Occurrence, s.Detection} {
		if score < 1 || score > 10 {
			return fmt.Errorf("severity, occurrence and detection must be between 1 and 10")
		}
	}
	return nil
}
