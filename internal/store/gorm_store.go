package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pharmaqualify/qms-gin/internal/model"
	"gorm.io/gorm"
)

// GormStore 基于 kv_collections 表的集合存储
type GormStore struct {
	db *gorm.DB
	mu sync.Mutex
}

// NewGormStore 创建数据库集合存储
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Get 读取集合文档
func (s *GormStore) Get(name string) (string, bool, error) {
	var col model.KVCollection
	err := s.db.Where("name = ?", name).First(&col).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return col.Doc, true, nil
}

// Set 整体替换集合文档，revision 递增
func (s *GormStore) Set(name string, doc string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var col model.KVCollection
		err := tx.Where("name = ?", name).First(&col).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&model.KVCollection{
				Name:      name,
				Doc:       doc,
				Revision:  1,
				UpdatedAt: time.Now().UTC(),
			}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&model.KVCollection{}).Where("name = ?", name).Updates(map[string]interface{}{
			"doc":        doc,
			"revision":   col.Revision + 1,
			"updated_at": time.Now().UTC(),
		}).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return nil
}

// Remove 删除集合
func (s *GormStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Where("name = ?", name).Delete(&model.KVCollection{}).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return nil
}
