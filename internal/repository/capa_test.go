package repository

import (
	"io"
	"testing"

	"github.com/pharmaqualify/qms-gin/internal/audit"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/notify"
	"github.com/pharmaqualify/qms-gin/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCAPAFixture(t *testing.T) (*CAPARepository, *notify.Notifier) {
	t.Helper()
	adapter := store.NewMemoryStore()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	notifier := notify.NewNotifier(adapter, logger)
	return NewCAPARepository(adapter, audit.NewTrail(adapter), notifier), notifier
}

func newCAPA() *model.CAPA {
	return &model.CAPA{
		Source:      model.CAPASourceDeviation,
		SourceRef:   model.Reference{Kind: "Deviation", Code: "D-26-101"},
		Description: "Replace worn tooling",
		Type:        model.CAPACorrective,
		Owner:       "omar",
		DueDate:     "2026-09-30",
	}
}

// TestCAPACreateNotifies 测试创建即派发负责人通知
func TestCAPACreateNotifies(t *testing.T) {
	repo, notifier := newCAPAFixture(t)

	created, err := repo.Create(newCAPA(), admin)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, created.CurrentStatus())

	notifications, err := notifier.List()
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, model.CategoryCAPA, notifications[0].Category)
	assert.Contains(t, notifications[0].Message, created.DisplayNumber())
}

// TestCAPACompleteStampsVerificationDate 测试完成时盖验证日期
func TestCAPACompleteStampsVerificationDate(t *testing.T) {
	repo, _ := newCAPAFixture(t)

	created, err := repo.Create(newCAPA(), admin)
	require.NoError(t, err)
	_, err = repo.Transition(created.RecordID(), ActionStart, operator, nil)
	require.NoError(t, err)

	completed, err := repo.Transition(created.RecordID(), ActionComplete, operator, nil)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, completed.CurrentStatus())
	assert.NotEmpty(t, completed.VerificationDate)
}

// TestCAPASourceRefSurvivesSourceDeletion 测试来源弱引用与来源记录存亡无关
func TestCAPASourceRefSurvivesSourceDeletion(t *testing.T) {
	adapter := store.NewMemoryStore()
	trail := audit.NewTrail(adapter)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	notifier := notify.NewNotifier(adapter, logger)
	deviations := NewDeviationRepository(adapter, trail, notifier)
	capas := NewCAPARepository(adapter, trail, notifier)

	dev, err := deviations.Create(newDeviation(), operator)
	require.NoError(t, err)

	capa := newCAPA()
	capa.SourceRef = model.Reference{Kind: "Deviation", Code: dev.DisplayNumber()}
	created, err := capas.Create(capa, admin)
	require.NoError(t, err)

	require.NoError(t, deviations.Delete(dev.RecordID(), admin))

	got, err := capas.Get(created.RecordID())
	require.NoError(t, err)
	assert.Equal(t, dev.DisplayNumber(), got.SourceRef.Code)
}
