package utils

import "github.com/google/uuid"

// NewID 统一的主键生成（uuid v4 字符串）
func NewID() string { return uuid.NewString() }
