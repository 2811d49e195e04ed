package store

import (
	"testing"

	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestGormStore(t *testing.T) (*GormStore, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.KVCollection{}))
	return NewGormStore(db), db
}

// TestGormStoreGetMissing 测试缺失集合
func TestGormStoreGetMissing(t *testing.T) {
	s, _ := newTestGormStore(t)

	doc, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, doc)
}

// TestGormStoreSetGet 测试集合读写
func TestGormStoreSetGet(t *testing.T) {
	s, _ := newTestGormStore(t)

	require.NoError(t, s.Set(KeyDeviations, `[{"id":"DEV-1"}]`))
	doc, ok, err := s.Get(KeyDeviations)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"DEV-1"}]`, doc)
}

// TestGormStoreRevision 测试覆盖写 revision 递增
func TestGormStoreRevision(t *testing.T) {
	s, db := newTestGormStore(t)

	require.NoError(t, s.Set(KeyDeviations, `[]`))
	require.NoError(t, s.Set(KeyDeviations, `[{"id":"DEV-1"}]`))

	var col model.KVCollection
	require.NoError(t, db.Where("name = ?", KeyDeviations).First(&col).Error)
	assert.Equal(t, int64(2), col.Revision)
	assert.Equal(t, `[{"id":"DEV-1"}]`, col.Doc)
}

// TestGormStoreRemove 测试删除集合
func TestGormStoreRemove(t *testing.T) {
	s, _ := newTestGormStore(t)

	require.NoError(t, s.Set(KeyDeviations, `[]`))
	require.NoError(t, s.Remove(KeyDeviations))

	_, ok, err := s.Get(KeyDeviations)
	require.NoError(t, err)
	assert.False(t, ok)

	// 删除不存在的集合不报错
	assert.NoError(t, s.Remove(KeyDeviations))
}
