package repository

import (
	"testing"

	"github.com/pharmaqualify/qms-gin/internal/audit"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChangeFixture(t *testing.T) *ChangeRepository {
	t.Helper()
	adapter := store.NewMemoryStore()
	return NewChangeRepository(adapter, audit.NewTrail(adapter))
}

// TestChangeCompleteTask 测试勾选实施任务
func TestChangeCompleteTask(t *testing.T) {
	repo := newChangeFixture(t)

	created, err := repo.Create(&model.ChangeRequest{
		Title:       "Upgrade blender PLC",
		Description: "Replace legacy controller",
		Category:    model.ChangeEquipment,
		Priority:    model.ChangeMajor,
		InitiatedBy: "omar",
		Tasks: []model.ChangeTask{
			{ID: "task-1", Description: "Validate new firmware", Owner: "omar"},
			{ID: "task-2", Description: "Update SOP", Owner: "maryam"},
		},
	}, operator)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSubmitted, created.CurrentStatus())

	updated, err := repo.CompleteTask(created.RecordID(), "task-1", operator)
	require.NoError(t, err)
	assert.True(t, updated.Tasks[0].Completed)
	assert.False(t, updated.Tasks[1].Completed)

	_, err = repo.CompleteTask(created.RecordID(), "no-such-task", operator)
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestChangeRejectFromReview 测试评审中驳回
func TestChangeRejectFromReview(t *testing.T) {
	repo := newChangeFixture(t)

	created, err := repo.Create(&model.ChangeRequest{
		Title:       "Upgrade blender PLC",
		Description: "Replace legacy controller",
	}, operator)
	require.NoError(t, err)

	_, err = repo.Transition(created.RecordID(), ActionReview, operator, nil)
	require.NoError(t, err)

	rejected, err := repo.Transition(created.RecordID(), ActionReject, admin, approvalSignature(admin, "Insufficient impact assessment"))
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, rejected.CurrentStatus())
	assert.NotNil(t, rejected.ClosedAt)
}
