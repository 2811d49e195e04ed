package repository

import (
	"fmt"

	"github.com/pharmaqualify/qms-gin/internal/audit"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/statemachine"
	"github.com/pharmaqualify/qms-gin/internal/store"
)

// ChangeRepository 变更控制仓储
type ChangeRepository struct {
	*Repository[*model.ChangeRequest]
}

// NewChangeRepository 创建变更控制仓储
func NewChangeRepository(adapter store.Adapter, trail *audit.Trail) *ChangeRepository {
	machine := statemachine.New("Change Request", statemachine.Config{
		Initial: model.StatusSubmitted,
		Transitions: []statemachine.Transition{
			{Action: ActionReview, From: []model.Status{model.StatusSubmitted}, To: model.StatusUnderReview},
			{Action: ActionApprove, From: []model.Status{model.StatusUnderReview}, To: model.StatusApproved},
			{Action: ActionClose, From: []model.Status{model.StatusApproved}, To: model.StatusClosed},
			{Action: ActionReject, From: []model.Status{model.StatusSubmitted, model.StatusUnderReview}, To: model.StatusRejected},
		},
		AdminOnly:         []statemachine.Action{ActionApprove, ActionReject, ActionClose},
		SignatureRequired: []statemachine.Action{ActionApprove, ActionReject},
	})

	return &ChangeRepository{Repository: New(adapter, trail, Config[*model.ChangeRequest]{
		Module:       "Change Control",
		Noun:         "Change Request",
		Key:          store.KeyChanges,
		IDPrefix:     "CHG",
		NumberPrefix: "CC",
		SequenceBase: 701,
		Machine:      machine,
		ActionLabels: map[statemachine.Action]string{
			ActionReview:  "Moved Change to Review",
			ActionApprove: "Approved Change",
			ActionClose:   "Closed Change",
			ActionReject:  "Rejected Change",
		},
		Validate: func(c *model.ChangeRequest) error { return c.Validate() },
		SearchText: func(c *model.ChangeRequest) []string {
			return []string{c.Title, c.Description, c.InitiatedBy}
		},
	})}
}

// CompleteTask 勾选一项实施任务
func (r *ChangeRepository) CompleteTask(id string, taskID string, user model.User) (*model.ChangeRequest, error) {
	return r.Update(id, user, "Completed Change Task",
		fmt.Sprintf("Implementation task %s marked complete", taskID), "",
		func(c *model.ChangeRequest) error {
			for i := range c.Tasks {
				if c.Tasks[i].ID == taskID {
					c.Tasks[i].Completed = true
					return nil
				}
			}
			return fmt.Errorf("%w: task %s", ErrNotFound, taskID)
		})
}
