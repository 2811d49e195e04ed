package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TestCollectionLoadMissing 测试缺失集合返回空列表
func TestCollectionLoadMissing(t *testing.T) {
	col := NewCollection[sampleRecord](NewMemoryStore(), "missing")

	items, err := col.Load()
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

// TestCollectionRoundTrip 测试集合读写往返
func TestCollectionRoundTrip(t *testing.T) {
	adapter := NewMemoryStore()
	col := NewCollection[sampleRecord](adapter, KeyDeviations)

	saved := []sampleRecord{{ID: "2", Name: "newest"}, {ID: "1", Name: "oldest"}}
	require.NoError(t, col.Save(saved))

	loaded, err := col.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	// 底层文档是 JSON 列表
	doc, ok, err := adapter.Get(KeyDeviations)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, doc, `"newest"`)
}

// TestCollectionDecodeError 测试损坏文档报错
func TestCollectionDecodeError(t *testing.T) {
	adapter := NewMemoryStore()
	require.NoError(t, adapter.Set(KeyDeviations, "not json"))

	col := NewCollection[sampleRecord](adapter, KeyDeviations)
	_, err := col.Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), KeyDeviations)
}

// TestMemoryStoreRemove 测试删除集合
func TestMemoryStoreRemove(t *testing.T) {
	adapter := NewMemoryStore()
	require.NoError(t, adapter.Set("a", "[]"))

	require.NoError(t, adapter.Remove("a"))
	_, ok, err := adapter.Get("a")
	require.NoError(t, err)
	assert.False(t, ok)

	// 删除不存在的集合不报错
	assert.NoError(t, adapter.Remove("a"))
}

// TestAllKeys 测试命名集合清单覆盖各模块
func TestAllKeys(t *testing.T) {
	keys := AllKeys()
	assert.Len(t, keys, 17)
	assert.Contains(t, keys, KeyDeviations)
	assert.Contains(t, keys, KeyAuditTrail)
	assert.Contains(t, keys, KeyNotifPrefs)

	seen := make(map[string]bool)
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
}
