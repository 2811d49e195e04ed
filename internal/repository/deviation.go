package repository

import (
	"fmt"

	"github.com/pharmaqualify/qms-gin/internal/audit"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/notify"
	"github.com/pharmaqualify/qms-gin/internal/statemachine"
	"github.com/pharmaqualify/qms-gin/internal/store"
)

// DeviationRepository 偏差模块仓储
type DeviationRepository struct {
	*Repository[*model.Deviation]
}

// NewDeviationRepository 创建偏差仓储
// High/Critical 偏差创建后触发通知旁路
func NewDeviationRepository(adapter store.Adapter, trail *audit.Trail, notifier *notify.Notifier) *DeviationRepository {
	machine := statemachine.New("Deviation", statemachine.Config{
		Initial: model.StatusPending,
		Transitions: []statemachine.Transition{
			{Action: ActionStart, From: []model.Status{model.StatusPending}, To: model.StatusInProgress},
			{Action: ActionApprove, From: []model.Status{model.StatusPending, model.StatusInProgress}, To: model.StatusApproved},
			{Action: ActionClose, From: []model.Status{model.StatusInProgress, model.StatusApproved}, To: model.StatusClosed},
		},
		AdminOnly:         []statemachine.Action{ActionApprove, ActionClose},
		SignatureRequired: []statemachine.Action{ActionApprove, ActionClose},
	})

	return &DeviationRepository{Repository: New(adapter, trail, Config[*model.Deviation]{
		Module:       "Deviations",
		Noun:         "Deviation",
		Key:          store.KeyDeviations,
		IDPrefix:     "DEV",
		NumberPrefix: "D",
		SequenceBase: 101,
		Machine:      machine,
		ActionLabels: map[statemachine.Action]string{
			ActionStart:   "Started Deviation Investigation",
			ActionApprove: "Approved Deviation",
			ActionClose:   "Closed Deviation",
		},
		Validate: func(d *model.Deviation) error { return d.Validate() },
		SearchText: func(d *model.Deviation) []string {
			return []string{d.Description, d.Department}
		},
		OnCreate: func(d *model.Deviation, user model.User) {
			if d.Severity != model.SeverityHigh && d.Severity != model.SeverityCritical {
				return
			}
			_, _ = notifier.Notify(user, model.CategoryDeviation, d.Severity,
				fmt.Sprintf("%s Severity Deviation Reported", d.Severity),
				fmt.Sprintf("Deviation %s reported in %s: %s", d.Number, d.Department, d.Description))
		},
	})}
}

// LinkCAPA 以展示编号弱引用关联一条 CAPA
func (r *DeviationRepository) LinkCAPA(id string, capaNumber string, user model.User) (*model.Deviation, error) {
	return r.Update(id, user, "Linked CAPA", fmt.Sprintf("Deviation linked to CAPA %s", capaNumber), "",
		func(d *model.Deviation) error {
			d.CAPARef = model.Reference{Kind: "CAPA", Code: capaNumber}
			return nil
		})
}

// AttachAnalysis 采纳一份 AI 辅助分析并入记录
func (r *DeviationRepository) AttachAnalysis(id string, analysis model.AIAnalysis, user model.User) (*model.Deviation, error) {
	return r.Update(id, user, "Attached AI Analysis", "AI-assisted root cause analysis accepted", "",
		func(d *model.Deviation) error {
			d.AIAnalysis = &analysis
			return nil
		})
}
