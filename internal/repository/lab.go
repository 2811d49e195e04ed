package repository

import (
	"github.com/pharmaqualify/qms-gin/internal/audit"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/statemachine"
	"github.com/pharmaqualify/qms-gin/internal/store"
)

// NewStabilityRepository 创建稳定性研究仓储
func NewStabilityRepository(adapter store.Adapter, trail *audit.Trail) *Repository[*model.StabilityStudy] {
	machine := statemachine.New("Stability", statemachine.Config{
		Initial: model.StatusOngoing,
		Transitions: []statemachine.Transition{
			{Action: ActionComplete, From: []model.Status{model.StatusOngoing}, To: model.StatusCompleted},
			{Action: ActionStop, From: []model.Status{model.StatusOngoing}, To: model.StatusStopped},
		},
		AdminOnly:         []statemachine.Action{ActionComplete, ActionStop},
		SignatureRequired: []statemachine.Action{ActionComplete},
	})

	return New(adapter, trail, Config[*model.StabilityStudy]{
		Module:       "Stability",
		Noun:         "Stability Study",
		Key:          store.KeyStability,
		IDPrefix:     "STB",
		NumberPrefix: "ST",
		SequenceBase: 801,
		Machine:      machine,
		ActionLabels: map[statemachine.Action]string{
			ActionComplete: "Completed Stability Study",
			ActionStop:     "Stopped Stability Study",
		},
		Validate: func(s *model.StabilityStudy) error { return s.Validate() },
		SearchText: func(s *model.StabilityStudy) []string {
			return []string{s.Product, s.BatchNumber, s.Condition, s.ProtocolID}
		},
	})
}

// NewInventoryRepository 创建库存物料仓储
// 物料入库即隔离（Quarantine），放行或拒收由 QA 判定
func NewInventoryRepository(adapter store.Adapter, trail *audit.Trail) *Repository[*model.InventoryItem] {
	machine := statemachine.New("Inventory", statemachine.Config{
		Initial: model.StatusQuarantine,
		Transitions: []statemachine.Transition{
			{Action: ActionApprove, From: []model.Status{model.StatusQuarantine}, To: model.StatusApproved},
			{Action: ActionReject, From: []model.Status{model.StatusQuarantine}, To: model.StatusRejected},
			{Action: ActionExpire, From: []model.Status{model.StatusQuarantine, model.StatusApproved}, To: model.StatusExpired},
		},
		AdminOnly:         []statemachine.Action{ActionApprove, ActionReject},
		SignatureRequired: []statemachine.Action{ActionApprove},
	})

	return New(adapter, trail, Config[*model.InventoryItem]{
		Module:       "Inventory",
		Noun:         "Material",
		Key:          store.KeyInventory,
		IDPrefix:     "MAT",
		NumberPrefix: "INV",
		SequenceBase: 901,
		Machine:      machine,
		ActionLabels: map[statemachine.Action]string{
			ActionApprove: "Released Material",
			ActionReject:  "Rejected Material",
			ActionExpire:  "Expired Material",
		},
		Validate: func(i *model.InventoryItem) error { return i.Validate() },
		SearchText: func(i *model.InventoryItem) []string {
			return []string{i.Name, i.LotNumber, i.ManufacturerName}
		},
	})
}

// NewLIMSRepository 创建实验室检品仓储
// 检品流转不做角色门禁，检验员即可推进
func NewLIMSRepository(adapter store.Adapter, trail *audit.Trail) *Repository[*model.LIMSSample] {
	machine := statemachine.New("LIMS Sample", statemachine.Config{
		Initial: model.StatusLogged,
		Transitions: []statemachine.Transition{
			{Action: ActionStartTesting, From: []model.Status{model.StatusLogged}, To: model.StatusTesting},
			{Action: ActionSendToReview, From: []model.Status{model.StatusTesting}, To: model.StatusReview},
			{Action: ActionRelease, From: []model.Status{model.StatusReview}, To: model.StatusReleased},
			{Action: ActionReject, From: []model.Status{model.StatusTesting, model.StatusReview}, To: model.StatusRejected},
		},
		SignatureRequired: []statemachine.Action{ActionRelease},
	})

	return New(adapter, trail, Config[*model.LIMSSample]{
		Module:       "LIMS",
		Noun:         "Sample",
		Key:          store.KeyLIMSSamples,
		IDPrefix:     "SMP",
		NumberPrefix: "LIMS",
		SequenceBase: 1001,
		Machine:      machine,
		ActionLabels: map[statemachine.Action]string{
			ActionStartTesting: "Started Sample Testing",
			ActionSendToReview: "Sent Sample to Review",
			ActionRelease:      "Released Sample",
			ActionReject:       "Rejected Sample",
		},
		Validate: func(s *model.LIMSSample) error { return s.Validate() },
		SearchText: func(s *model.LIMSSample) []string {
			return []string{s.ProductName, s.BatchNo, s.Analyst}
		},
	})
}
