package repository

import "errors"

var (
	// ErrDuplicateKey 违反唯一索引
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotFound 更新目标不存在
	ErrNotFound = errors.New("document not found")
)
