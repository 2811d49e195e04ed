package store

import "errors"

// ErrStorageFailure 底层介质写入失败（磁盘满、连接断开等）
// 必须作为可恢复错误上抛，不得吞掉
var ErrStorageFailure = errors.New("storage failure")

// Adapter 命名集合键值存储
// 每个模块独占自己的集合键，写入为整集合替换。单进程内按集合
// 串行化写入；跨进程的丢失更新保护不在本层职责内
type Adapter interface {
	// Get 读取集合文档，第二个返回值指示集合是否存在
	Get(name string) (string, bool, error)
	// Set 整体替换集合文档
	Set(name string, doc string) error
	// Remove 删除集合
	Remove(name string) error
}
