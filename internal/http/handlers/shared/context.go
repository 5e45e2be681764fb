package shared

import (
	"github.com/peptide-store/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 认证中间件写入上下文的键
const (
	ContextKeyUserID    = "user_id"
	ContextKeyPrincipal = "principal"
	ContextKeyRole      = "role"
)

// GetContextUint 从上下文读取 uint 值，缺失时返回 401
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "Unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		if v == 0 {
			RespondError(c, response.CodeUnauthorized, "Unauthorized", nil)
			return 0, false
		}
		return v, true
	case int:
		if v <= 0 {
			RespondError(c, response.CodeUnauthorized, "Unauthorized", nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "Invalid user context", nil)
		return 0, false
	}
}

// GetContextString 从上下文读取字符串
func GetContextString(c *gin.Context, key string) string {
	if value, ok := c.Get(key); ok {
		if s, ok := value.(string); ok {
			return s
		}
	}
	return ""
}
