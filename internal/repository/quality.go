package repository

import (
	"github.com/pharmaqualify/qms-gin/internal/audit"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/statemachine"
	"github.com/pharmaqualify/qms-gin/internal/store"
)

// NewAuditRecordRepository 创建内部审核仓储
func NewAuditRecordRepository(adapter store.Adapter, trail *audit.Trail) *Repository[*model.AuditRecord] {
	machine := statemachine.New("Audit Record", statemachine.Config{
		Initial: model.StatusPending,
		Transitions: []statemachine.Transition{
			{Action: ActionApprove, From: []model.Status{model.StatusPending}, To: model.StatusApproved},
			{Action: ActionClose, From: []model.Status{model.StatusPending, model.StatusApproved}, To: model.StatusClosed},
		},
		AdminOnly:         []statemachine.Action{ActionApprove, ActionClose},
		SignatureRequired: []statemachine.Action{ActionApprove},
	})

	return New(adapter, trail, Config[*model.AuditRecord]{
		Module:       "Audits",
		Noun:         "Audit",
		Key:          store.KeyAuditRecords,
		IDPrefix:     "AUD",
		NumberPrefix: "AUD",
		SequenceBase: 301,
		Machine:      machine,
		ActionLabels: map[statemachine.Action]string{
			ActionApprove: "Approved Audit",
			ActionClose:   "Closed Audit",
		},
		Validate: func(a *model.AuditRecord) error { return a.Validate() },
		SearchText: func(a *model.AuditRecord) []string {
			return []string{a.Department, a.Auditor}
		},
	})
}

// NewOOSRepository 创建超标检验结果仓储
func NewOOSRepository(adapter store.Adapter, trail *audit.Trail) *Repository[*model.OOSRecord] {
	machine := statemachine.New("OOS", statemachine.Config{
		Initial: model.StatusPending,
		Transitions: []statemachine.Transition{
			{Action: ActionStart, From: []model.Status{model.StatusPending}, To: model.StatusInProgress},
			{Action: ActionClose, From: []model.Status{model.StatusInProgress}, To: model.StatusClosed},
		},
		AdminOnly:         []statemachine.Action{ActionClose},
		SignatureRequired: []statemachine.Action{ActionClose},
	})

	return New(adapter, trail, Config[*model.OOSRecord]{
		Module:       "OOS",
		Noun:         "OOS Record",
		Key:          store.KeyOOSRecords,
		IDPrefix:     "OOS",
		NumberPrefix: "OOS",
		SequenceBase: 401,
		Machine:      machine,
		ActionLabels: map[statemachine.Action]string{
			ActionStart: "Started OOS Investigation",
			ActionClose: "Closed OOS Record",
		},
		Validate: func(o *model.OOSRecord) error { return o.Validate() },
		SearchText: func(o *model.OOSRecord) []string {
			return []string{o.Product, o.BatchNumber, o.Test, o.Analyst}
		},
	})
}

// NewRecallRepository 创建召回仓储
func NewRecallRepository(adapter store.Adapter, trail *audit.Trail) *Repository[*model.Recall] {
	machine := statemachine.New("Recall", statemachine.Config{
		Initial: model.StatusPending,
		Transitions: []statemachine.Transition{
			{Action: ActionStart, From: []model.Status{model.StatusPending}, To: model.StatusInProgress},
			{Action: ActionClose, From: []model.Status{model.StatusInProgress}, To: model.StatusClosed},
		},
		AdminOnly:         []statemachine.Action{ActionClose},
		SignatureRequired: []statemachine.Action{ActionClose},
	})

	return New(adapter, trail, Config[*model.Recall]{
		Module:       "Recalls",
		Noun:         "Recall",
		Key:          store.KeyRecalls,
		IDPrefix:     "REC",
		NumberPrefix: "RCL",
		SequenceBase: 501,
		Machine:      machine,
		ActionLabels: map[statemachine.Action]string{
			ActionStart: "Initiated Recall",
			ActionClose: "Closed Recall",
		},
		Validate: func(r *model.Recall) error { return r.Validate() },
		SearchText: func(r *model.Recall) []string {
			return []string{r.Product, r.BatchNumber, r.Reason}
		},
	})
}
