package repository

import (
	"io"
	"testing"
	"time"

	"github.com/pharmaqualify/qms-gin/internal/audit"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/notify"
	"github.com/pharmaqualify/qms-gin/internal/signature"
	"github.com/pharmaqualify/qms-gin/internal/statemachine"
	"github.com/pharmaqualify/qms-gin/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin    = model.User{Username: "maryam", FullName: "Maryam Khan", Role: "Admin", Email: "maryam@example.com"}
	operator = model.User{Username: "omar", FullName: "Omar Farooq", Role: "Operator", Email: "omar@example.com"}
)

type deviationFixture struct {
	repo     *DeviationRepository
	trail    *audit.Trail
	notifier *notify.Notifier
}

func newDeviationFixture(t *testing.T) *deviationFixture {
	t.Helper()
	adapter := store.NewMemoryStore()
	trail := audit.NewTrail(adapter)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	notifier := notify.NewNotifier(adapter, logger)
	return &deviationFixture{
		repo:     NewDeviationRepository(adapter, trail, notifier),
		trail:    trail,
		notifier: notifier,
	}
}

func newDeviation() *model.Deviation {
	return &model.Deviation{
		Department:  "Production",
		Description: "Tablet weight out of range",
		Severity:    model.SeverityMedium,
	}
}

func approvalSignature(user model.User, reason string) *signature.Outcome {
	return &signature.Outcome{
		Action:   "Approve",
		Meaning:  signature.MeaningApproval,
		Reason:   reason,
		SignedBy: user.Username,
		SignedAt: time.Now().UTC(),
	}
}

// TestCreate 测试创建记录：标识分配、初始状态与审计
func TestCreate(t *testing.T) {
	f := newDeviationFixture(t)

	created, err := f.repo.Create(newDeviation(), operator)
	require.NoError(t, err)

	assert.Contains(t, created.RecordID(), "DEV-")
	assert.Contains(t, created.DisplayNumber(), "D-")
	assert.Equal(t, model.StatusPending, created.CurrentStatus())
	assert.False(t, created.CreatedAt.IsZero())
	assert.Nil(t, created.ClosedAt)

	// 恰好一条审计条目
	entries, err := f.trail.ByRecord(created.RecordID())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Created Deviation", entries[0].Action)
	assert.Equal(t, "Deviations", entries[0].Module)
	assert.Equal(t, "omar", entries[0].User)
}

// TestCreateValidation 测试必填字段校验失败
func TestCreateValidation(t *testing.T) {
	f := newDeviationFixture(t)

	_, err := f.repo.Create(&model.Deviation{Department: "Production"}, operator)
	assert.ErrorIs(t, err, ErrValidation)

	// 校验失败不落盘也不写审计
	items, err := f.repo.List(nil)
	require.NoError(t, err)
	assert.Empty(t, items)
	entries, err := f.trail.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestCreateSequence 测试展示编号递增与最新在前
func TestCreateSequence(t *testing.T) {
	f := newDeviationFixture(t)

	first, err := f.repo.Create(newDeviation(), operator)
	require.NoError(t, err)
	second, err := f.repo.Create(newDeviation(), operator)
	require.NoError(t, err)
	assert.NotEqual(t, first.DisplayNumber(), second.DisplayNumber())

	items, err := f.repo.List(nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.RecordID(), items[0].RecordID())
}

// TestListFilter 测试文本搜索与状态过滤
func TestListFilter(t *testing.T) {
	f := newDeviationFixture(t)

	weight, err := f.repo.Create(newDeviation(), operator)
	require.NoError(t, err)
	humidity := newDeviation()
	humidity.Description = "Humidity excursion in warehouse"
	humidity.Department = "Warehouse"
	_, err = f.repo.Create(humidity, operator)
	require.NoError(t, err)

	_, err = f.repo.Transition(weight.RecordID(), ActionStart, operator, nil)
	require.NoError(t, err)

	matched, err := f.repo.List(&Filter{Search: "humidity"})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Warehouse", matched[0].Department)

	// 按展示编号搜索
	matched, err = f.repo.List(&Filter{Search: weight.DisplayNumber()})
	require.NoError(t, err)
	require.Len(t, matched, 1)

	matched, err = f.repo.List(&Filter{Status: model.StatusInProgress})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, weight.RecordID(), matched[0].RecordID())

	matched, err = f.repo.List(&Filter{Search: "no such thing"})
	require.NoError(t, err)
	assert.Empty(t, matched)
}

// TestGetNotFound 测试记录不存在
func TestGetNotFound(t *testing.T) {
	f := newDeviationFixture(t)

	_, err := f.repo.Get("DEV-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestTransition 测试状态流转与审计
func TestTransition(t *testing.T) {
	f := newDeviationFixture(t)

	created, err := f.repo.Create(newDeviation(), operator)
	require.NoError(t, err)

	started, err := f.repo.Transition(created.RecordID(), ActionStart, operator, nil)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, started.CurrentStatus())

	entries, err := f.trail.ByRecord(created.RecordID())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Started Deviation Investigation", entries[0].Action)
	assert.Contains(t, entries[0].PreviousValue, string(model.StatusPending))
}

// TestTransitionSignatureRequired 测试签名动作未携带签名被拒
func TestTransitionSignatureRequired(t *testing.T) {
	f := newDeviationFixture(t)

	created, err := f.repo.Create(newDeviation(), operator)
	require.NoError(t, err)

	_, err = f.repo.Transition(created.RecordID(), ActionApprove, admin, nil)
	assert.ErrorIs(t, err, ErrSignatureRequired)

	// 记录保持原状
	got, err := f.repo.Get(created.RecordID())
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.CurrentStatus())
}

// TestTransitionUnauthorized 测试角色守卫拒绝后无部分变更
func TestTransitionUnauthorized(t *testing.T) {
	f := newDeviationFixture(t)

	created, err := f.repo.Create(newDeviation(), operator)
	require.NoError(t, err)
	before, err := f.trail.Entries()
	require.NoError(t, err)

	_, err = f.repo.Transition(created.RecordID(), ActionApprove, operator, approvalSignature(operator, ""))
	assert.ErrorIs(t, err, statemachine.ErrUnauthorized)

	got, err := f.repo.Get(created.RecordID())
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, got.CurrentStatus())
	after, err := f.trail.Entries()
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

// TestTransitionInvalid 测试非法流转被拒
func TestTransitionInvalid(t *testing.T) {
	f := newDeviationFixture(t)

	created, err := f.repo.Create(newDeviation(), operator)
	require.NoError(t, err)

	// Pending 状态下 Close 不合法
	_, err = f.repo.Transition(created.RecordID(), ActionClose, admin, approvalSignature(admin, ""))
	assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)
}

// TestTransitionTerminal 测试终态流转盖关闭时间与签名原因
func TestTransitionTerminal(t *testing.T) {
	f := newDeviationFixture(t)

	created, err := f.repo.Create(newDeviation(), operator)
	require.NoError(t, err)
	_, err = f.repo.Transition(created.RecordID(), ActionStart, operator, nil)
	require.NoError(t, err)

	closed, err := f.repo.Transition(created.RecordID(), ActionClose, admin, approvalSignature(admin, "No product impact"))
	require.NoError(t, err)
	assert.Equal(t, model.StatusClosed, closed.CurrentStatus())
	require.NotNil(t, closed.ClosedAt)

	entries, err := f.trail.ByRecord(created.RecordID())
	require.NoError(t, err)
	assert.Equal(t, "Closed Deviation", entries[0].Action)
	assert.Equal(t, "No product impact", entries[0].ReasonForChange)
}

// TestDelete 测试删除：仅管理员，审计留存快照
func TestDelete(t *testing.T) {
	f := newDeviationFixture(t)

	created, err := f.repo.Create(newDeviation(), operator)
	require.NoError(t, err)

	err = f.repo.Delete(created.RecordID(), operator)
	assert.ErrorIs(t, err, statemachine.ErrUnauthorized)

	require.NoError(t, f.repo.Delete(created.RecordID(), admin))
	_, err = f.repo.Get(created.RecordID())
	assert.ErrorIs(t, err, ErrNotFound)

	// 删除后审计条目依然可按记录查询，且快照留存
	entries, err := f.trail.ByRecord(created.RecordID())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Deleted Deviation", entries[0].Action)
	assert.Contains(t, entries[0].PreviousValue, created.DisplayNumber())
}

// TestLinkCAPA 测试偏差按展示编号弱引用 CAPA
func TestLinkCAPA(t *testing.T) {
	f := newDeviationFixture(t)

	created, err := f.repo.Create(newDeviation(), operator)
	require.NoError(t, err)

	linked, err := f.repo.LinkCAPA(created.RecordID(), "CAPA-26-201", operator)
	require.NoError(t, err)
	assert.Equal(t, model.Reference{Kind: "CAPA", Code: "CAPA-26-201"}, linked.CAPARef)

	// 弱引用与被引用记录的存亡无关，始终保留编号
	entries, err := f.trail.ByRecord(created.RecordID())
	require.NoError(t, err)
	assert.Equal(t, "Linked CAPA", entries[0].Action)
}

// TestAttachAnalysis 测试采纳 AI 辅助分析
func TestAttachAnalysis(t *testing.T) {
	f := newDeviationFixture(t)

	created, err := f.repo.Create(newDeviation(), operator)
	require.NoError(t, err)

	analysis := model.AIAnalysis{RootCause: "Worn punch", CorrectiveAction: "Replace tooling"}
	updated, err := f.repo.AttachAnalysis(created.RecordID(), analysis, operator)
	require.NoError(t, err)
	require.NotNil(t, updated.AIAnalysis)
	assert.Equal(t, "Worn punch", updated.AIAnalysis.RootCause)
}

// TestCreateHighSeverityNotifies 测试高严重度偏差触发通知旁路
func TestCreateHighSeverityNotifies(t *testing.T) {
	f := newDeviationFixture(t)

	low := newDeviation()
	_, err := f.repo.Create(low, operator)
	require.NoError(t, err)
	notifications, err := f.notifier.List()
	require.NoError(t, err)
	assert.Empty(t, notifications)

	critical := newDeviation()
	critical.Severity = model.SeverityCritical
	_, err = f.repo.Create(critical, operator)
	require.NoError(t, err)

	notifications, err = f.notifier.List()
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, model.CategoryDeviation, notifications[0].Category)
	assert.Equal(t, model.SeverityCritical, notifications[0].Priority)
}
