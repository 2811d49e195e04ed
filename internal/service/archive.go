package service

import (
	"encoding/json"
	"fmt"

	"github.com/pharmaqualify/qms-gin/internal/audit"
	"github.com/pharmaqualify/qms-gin/internal/model"
	"github.com/pharmaqualify/qms-gin/internal/store"
)

// ArchiveService 批量导出/导入服务接口
type ArchiveService interface {
	Export() (map[string]json.RawMessage, error)
	Import(bundle map[string]json.RawMessage, user model.User) (int, error)
}

// archiveService 批量导出/导入服务实现
type archiveService struct {
	adapter store.Adapter
	trail   *audit.Trail
}

// NewArchiveService 创建归档服务
func NewArchiveService(adapter store.Adapter, trail *audit.Trail) ArchiveService {
	return &archiveService{adapter: adapter, trail: trail}
}

// Export 导出所有命名集合为一个 JSON 文档（键为集合名）
// 集合文档原样透传，与导入构成逐字节往返
func (s *archiveService) Export() (map[string]json.RawMessage, error) {
	bundle := make(map[string]json.RawMessage)
	for _, key := range store.AllKeys() {
		doc, ok, err := s.adapter.Get(key)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", key, err)
		}
		if !ok || doc == "" {
			continue
		}
		bundle[key] = json.RawMessage(doc)
	}
	return bundle, nil
}

// Import 破坏性导入：包里出现的集合被整体覆盖，未出现的保持不变
// 未知键被拒绝，防止写入归档范围之外的集合
func (s *archiveService) Import(bundle map[string]json.RawMessage, user model.User) (int, error) {
	known := make(map[string]bool)
	for _, key := range store.AllKeys() {
		known[key] = true
	}
	for key := range bundle {
		if !known[key] {
			return 0, fmt.Errorf("unknown collection %q in import bundle", key)
		}
	}

	imported := 0
	for _, key := range store.AllKeys() {
		doc, ok := bundle[key]
		if !ok {
			continue
		}
		if err := s.adapter.Set(key, string(doc)); err != nil {
			return imported, fmt.Errorf("import %s: %w", key, err)
		}
		imported++
	}

	if err := s.trail.Record(user, "Imported Archive", "System",
		fmt.Sprintf("Restored %d collections from archive bundle", imported), nil); err != nil {
		return imported, err
	}
	return imported, nil
}
