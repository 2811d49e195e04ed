package repository

import (
	"github.com/pharmaqualify/qms-gin/internal/audit"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/signature"
	"github.com/pharmaqualify/qms-gin/internal/statemachine"
	"github.com/pharmaqualify/qms-gin/internal/store"
)

// NewCOARepository 创建检验报告仓储
// Release 需要 Technical Release 含义的电子签名，放行时盖
// releasedBy/releaseDate，与流转在同一逻辑单元内提交
func NewCOARepository(adapter store.Adapter, trail *audit.Trail) *Repository[*model.COARecord] {
	machine := statemachine.New("COA", statemachine.Config{
		Initial: model.StatusDraft,
		Transitions: []statemachine.Transition{
			{Action: ActionSubmit, From: []model.Status{model.StatusDraft}, To: model.StatusSubmitted},
			{Action: ActionRelease, From: []model.Status{model.StatusSubmitted}, To: model.StatusReleased},
			{Action: ActionReject, From: []model.Status{model.StatusSubmitted}, To: model.StatusRejected},
		},
		AdminOnly:         []statemachine.Action{ActionRelease, ActionReject},
		SignatureRequired: []statemachine.Action{ActionRelease},
	})

	return New(adapter, trail, Config[*model.COARecord]{
		Module:       "COA",
		Noun:         "COA",
		Key:          store.KeyCOARecords,
		IDPrefix:     "COA",
		NumberPrefix: "COA",
		SequenceBase: 1101,
		Machine:      machine,
		ActionLabels: map[statemachine.Action]string{
			ActionSubmit:  "Submitted COA",
			ActionRelease: "Released COA",
			ActionReject:  "Rejected COA",
		},
		Validate: func(c *model.COARecord) error { return c.Validate() },
		SearchText: func(c *model.COARecord) []string {
			return []string{c.ProductName, c.BatchNumber, c.GenericName}
		},
		OnTransition: func(c *model.COARecord, action statemachine.Action, user model.User, sig *signature.Outcome) {
			if action != ActionRelease || sig == nil {
				return
			}
			c.ReleasedBy = sig.SignedBy
			c.ReleaseDate = sig.SignedAt.Format("2006-01-02")
		},
	})
}
