package statemachine

import (
	"testing"

	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/stretchr/testify/assert"
)

func newTestMachine() *Machine {
	return New("Deviation", Config{
		Initial: model.StatusPending,
		Transitions: []Transition{
			{Action: "start", From: []model.Status{model.StatusPending}, To: model.StatusInProgress},
			{Action: "approve", From: []model.Status{model.StatusPending, model.StatusInProgress}, To: model.StatusApproved},
			{Action: "close", From: []model.Status{model.StatusInProgress, model.StatusApproved}, To: model.StatusClosed},
		},
		AdminOnly:         []Action{"approve", "close"},
		SignatureRequired: []Action{"approve"},
	})
}

var (
	admin    = model.User{Username: "maryam", Role: "Admin"}
	operator = model.User{Username: "omar", Role: "Operator"}
)

// TestMachineNext 测试合法流转
func TestMachineNext(t *testing.T) {
	m := newTestMachine()

	next, err := m.Next(model.StatusPending, "start", operator)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, next)

	next, err = m.Next(model.StatusInProgress, "approve", admin)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusApproved, next)
}

// TestMachineInvalidTransition 测试非法流转
func TestMachineInvalidTransition(t *testing.T) {
	m := newTestMachine()

	// Pending 状态下 close 不合法
	next, err := m.Next(model.StatusPending, "close", admin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, model.StatusPending, next)

	// 终态没有任何出边
	next, err = m.Next(model.StatusClosed, "start", admin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, model.StatusClosed, next)
}

// TestMachineAdminGuard 测试角色守卫
func TestMachineAdminGuard(t *testing.T) {
	m := newTestMachine()

	_, err := m.Next(model.StatusInProgress, "approve", operator)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// 角色守卫先于流转合法性：即便流转本身不合法，
	// 非管理员也只会看到 Unauthorized
	_, err = m.Next(model.StatusClosed, "approve", operator)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrInvalidTransition)

	// 角色大小写不敏感
	upper := model.User{Username: "maryam", Role: "ADMIN"}
	_, err = m.Next(model.StatusInProgress, "approve", upper)
	assert.NoError(t, err)
}

// TestMachineIsTerminal 测试终态判定
func TestMachineIsTerminal(t *testing.T) {
	m := newTestMachine()

	assert.False(t, m.IsTerminal(model.StatusPending))
	assert.False(t, m.IsTerminal(model.StatusInProgress))
	assert.False(t, m.IsTerminal(model.StatusApproved))
	assert.True(t, m.IsTerminal(model.StatusClosed))
	// 未出现在流转表里的状态同样没有出边
	assert.True(t, m.IsTerminal(model.StatusRejected))
}

// TestMachineRequiresSignature 测试签名要求
func TestMachineRequiresSignature(t *testing.T) {
	m := newTestMachine()

	assert.True(t, m.RequiresSignature("approve"))
	assert.False(t, m.RequiresSignature("start"))
	assert.False(t, m.RequiresSignature("close"))
}

// TestMachineInitial 测试初始状态
func TestMachineInitial(t *testing.T) {
	assert.Equal(t, model.StatusPending, newTestMachine().Initial())
}
