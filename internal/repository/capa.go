package repository

import (
	"fmt"
	"time"

	"github.com/pharmaqualify/qms-gin/internal/audit"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/notify"
	"github.com/pharmaqualify/qms-gin/internal/signature"
	"github.com/pharmaqualify/qms-gin/internal/statemachine"
	"github.com/pharmaqualify/qms-gin/internal/store"
)

// CAPARepository CAPA 模块仓储
type CAPARepository struct {
	*Repository[*model.CAPA]
}

// NewCAPARepository 创建 CAPA 仓储
// 创建即派发负责人通知；Complete 时盖验证日期
func NewCAPARepository(adapter store.Adapter, trail *audit.Trail, notifier *notify.Notifier) *CAPARepository {
	machine := statemachine.New("CAPA", statemachine.Config{
		Initial: model.StatusPending,
		Transitions: []statemachine.Transition{
			{Action: ActionStart, From: []model.Status{model.StatusPending}, To: model.StatusInProgress},
			{Action: ActionApprove, From: []model.Status{model.StatusPending, model.StatusInProgress}, To: model.StatusApproved},
			{Action: ActionComplete, From: []model.Status{model.StatusInProgress, model.StatusApproved}, To: model.StatusCompleted},
			{Action: ActionClose, From: []model.Status{model.StatusApproved, model.StatusCompleted}, To: model.StatusClosed},
		},
		AdminOnly:         []statemachine.Action{ActionApprove, ActionClose},
		SignatureRequired: []statemachine.Action{ActionApprove, ActionClose},
	})

	return &CAPARepository{Repository: New(adapter, trail, Config[*model.CAPA]{
		Module:       "CAPA",
		Noun:         "CAPA",
		Key:          store.KeyCAPAs,
		IDPrefix:     "CAPA",
		NumberPrefix: "CAPA",
		SequenceBase: 201,
		Machine:      machine,
		ActionLabels: map[statemachine.Action]string{
			ActionStart:    "Started CAPA",
			ActionApprove:  "Approved CAPA",
			ActionComplete: "Completed CAPA",
			ActionClose:    "Closed CAPA",
		},
		Validate: func(c *model.CAPA) error { return c.Validate() },
		SearchText: func(c *model.CAPA) []string {
			return []string{c.Description, c.Owner, c.SourceRef.Code}
		},
		OnCreate: func(c *model.CAPA, user model.User) {
			_, _ = notifier.Notify(user, model.CategoryCAPA, model.SeverityMedium,
				"CAPA Assigned",
				fmt.Sprintf("CAPA %s assigned to %s, due %s", c.Number, c.Owner, c.DueDate))
		},
		OnTransition: func(c *model.CAPA, action statemachine.Action, user model.User, sig *signature.Outcome) {
			if action == ActionComplete && c.VerificationDate == "" {
				c.VerificationDate = time.Now().UTC().Format("2006-01-02")
			}
		},
	})}
}
