package repository

import "errors"

var (
	// ErrNotFound 记录不存在（可能已被删除，弱引用解引用失败也走这里）
	ErrNotFound = errors.New("record not found")
	// ErrValidation 创建或变更时必填字段校验失败
	ErrValidation = errors.New("validation failed")
	// ErrSignatureRequired 该动作需要已确认的电子签名
	ErrSignatureRequired = errors.New("signature required")
)
