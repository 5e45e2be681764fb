package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsUniqueViolation 判断是否为唯一约束冲突
// 开启 TranslateError 时驱动会返回 gorm.ErrDuplicatedKey，其余情况按驱动错误文本兜底
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "sqlstate 23505")
}
