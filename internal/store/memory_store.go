package store

import "sync"

// MemoryStore 内存集合存储，用于测试与离线演示
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore 创建内存集合存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get 读取集合文档
func (s *MemoryStore) Get(name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[name]
	return doc, ok, nil
}

// Set 整体替换集合文档
func (s *MemoryStore) Set(name string, doc string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[name] = doc
	return nil
}

// Remove 删除集合
func (s *MemoryStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, name)
	return nil
}
