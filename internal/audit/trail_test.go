package audit

import (
	"fmt"
	"testing"
	"time"

	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var auditor = model.User{Username: "maryam", Role: "Admin"}

// TestTrailRecord 测试追加审计条目
func TestTrailRecord(t *testing.T) {
	trail := NewTrail(store.NewMemoryStore())

	err := trail.Record(auditor, "Created Deviation", "Deviations", "New deviation D-26-101 logged", &Meta{
		RecordID: "DEV-1",
		NewValue: map[string]string{"id": "DEV-1"},
	})
	require.NoError(t, err)

	entries, err := trail.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "maryam", entries[0].User)
	assert.Equal(t, "Created Deviation", entries[0].Action)
	assert.Equal(t, "Deviations", entries[0].Module)
	assert.Equal(t, "DEV-1", entries[0].RecordID)
	assert.Contains(t, entries[0].NewValue, `"DEV-1"`)
	assert.Contains(t, entries[0].ID, "LOG-")
}

// TestTrailNewestFirst 测试最新条目在前
func TestTrailNewestFirst(t *testing.T) {
	trail := NewTrail(store.NewMemoryStore())

	require.NoError(t, trail.Record(auditor, "First", "Deviations", "", nil))
	require.NoError(t, trail.Record(auditor, "Second", "Deviations", "", nil))
	require.NoError(t, trail.Record(auditor, "Third", "Deviations", "", nil))

	entries, err := trail.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Third", entries[0].Action)
	assert.Equal(t, "First", entries[2].Action)
}

// TestTrailCapacity 测试容量上限淘汰最旧条目
func TestTrailCapacity(t *testing.T) {
	adapter := store.NewMemoryStore()
	col := store.NewCollection[model.AuditTrailEntry](adapter, store.KeyAuditTrail)

	// 预置满额台账，最新在前
	seeded := make([]model.AuditTrailEntry, MaxEntries)
	for i := range seeded {
		seeded[i] = model.AuditTrailEntry{
			ID:        fmt.Sprintf("LOG-%d", MaxEntries-i),
			Timestamp: time.Now().UTC(),
			User:      "maryam",
			Action:    fmt.Sprintf("Action %d", MaxEntries-i),
			Module:    "Deviations",
		}
	}
	require.NoError(t, col.Save(seeded))

	trail := NewTrail(adapter)
	require.NoError(t, trail.Record(auditor, "Newest", "Deviations", "", nil))

	entries, err := trail.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, MaxEntries)
	assert.Equal(t, "Newest", entries[0].Action)
	// 最旧的 LOG-1 被淘汰
	assert.Equal(t, "LOG-2", entries[MaxEntries-1].ID)
}

// TestTrailFilters 测试按记录、模块、用户过滤
func TestTrailFilters(t *testing.T) {
	trail := NewTrail(store.NewMemoryStore())
	other := model.User{Username: "omar", Role: "Operator"}

	require.NoError(t, trail.Record(auditor, "Created Deviation", "Deviations", "", &Meta{RecordID: "DEV-1"}))
	require.NoError(t, trail.Record(other, "Created CAPA", "CAPA", "", &Meta{RecordID: "CAPA-1"}))
	require.NoError(t, trail.Record(auditor, "Deleted Deviation", "Deviations", "", &Meta{RecordID: "DEV-1"}))

	byRecord, err := trail.ByRecord("DEV-1")
	require.NoError(t, err)
	assert.Len(t, byRecord, 2)

	byModule, err := trail.ByModule("CAPA")
	require.NoError(t, err)
	assert.Len(t, byModule, 1)
	assert.Equal(t, "omar", byModule[0].User)

	byUser, err := trail.ByUser("maryam")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)
}

// TestTrailReasonForChange 测试变更原因落入条目
func TestTrailReasonForChange(t *testing.T) {
	trail := NewTrail(store.NewMemoryStore())

	require.NoError(t, trail.Record(auditor, "Approved Deviation", "Deviations", "", &Meta{
		RecordID:      "DEV-1",
		Reason:        "Investigation complete",
		PreviousValue: map[string]string{"status": "Pending"},
		NewValue:      map[string]string{"status": "Approved"},
	}))

	entries, err := trail.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Investigation complete", entries[0].ReasonForChange)
	assert.Contains(t, entries[0].PreviousValue, "Pending")
	assert.Contains(t, entries[0].NewValue, "Approved")
}
