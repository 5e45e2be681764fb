package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	handlershared "github.com/peptide-store/internal/http/handlers/shared"
	"github.com/peptide-store/internal/http/response"
	"github.com/peptide-store/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	BlockSeconds  int
	Message       string
}

// KEYS[1] 计数键，KEYS[2] 封禁键；ARGV 依次为窗口秒数、上限、封禁秒数
// 处于封禁期时返回 {-1, 剩余秒数}
var rateLimitScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[2]) == 1 then
	return {-1, redis.call("TTL", KEYS[2])}
end
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local block = tonumber(ARGV[3])
if current > tonumber(ARGV[2]) and block > 0 then
	redis.call("SET", KEYS[2], "1", "EX", block)
	return {current, block}
end
return {current, redis.call("TTL", KEYS[1])}
`)

// RateLimitMiddleware Redis 频率限制中间件
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || rule.WindowSeconds <= 0 || rule.MaxRequests <= 0 {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = fmt.Sprintf("%s:%s", rule.Prefix, key)
		}

		keys := []string{key, key + ":block"}
		result, err := rateLimitScript.Run(c.Request.Context(), client, keys, rule.WindowSeconds, rule.MaxRequests, rule.BlockSeconds).Result()
		if err != nil {
			logger.Errorw("rate_limit_script_failed", "key", key, "error", err)
			response.AbortWithError(c, response.CodeInternal, "Rate limiter unavailable")
			return
		}

		values, ok := result.([]interface{})
		if !ok || len(values) < 2 {
			response.AbortWithError(c, response.CodeInternal, "Rate limiter unavailable")
			return
		}
		count, ok := toInt64(values[0])
		if !ok {
			response.AbortWithError(c, response.CodeInternal, "Rate limiter unavailable")
			return
		}
		ttlSeconds, _ := toInt64(values[1])
		if count < 0 || count > int64(rule.MaxRequests) {
			waitSeconds := int(ttlSeconds)
			if waitSeconds < 1 {
				waitSeconds = rule.WindowSeconds
			}
			if waitSeconds < 1 {
				waitSeconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(waitSeconds))
			response.AbortWithError(c, response.CodeTooManyRequests, rateLimitMessage(rule, waitSeconds))
			return
		}

		c.Next()
	}
}

func rateLimitMessage(rule RateLimitRule, waitSeconds int) string {
	msg := strings.TrimSpace(rule.Message)
	if msg == "" {
		msg = "Too many requests"
	}
	return fmt.Sprintf("%s, retry in %d seconds", msg, waitSeconds)
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByUserID 使用已认证用户 ID 作为限流 key，未认证时退回 IP
func KeyByUserID(c *gin.Context) string {
	if value, ok := c.Get(handlershared.ContextKeyUserID); ok {
		if userID, ok := value.(uint); ok && userID > 0 {
			return fmt.Sprintf("user:%d", userID)
		}
	}
	return c.ClientIP()
}

// KeyByIPAndJSONField 使用 IP + JSON 字段作为限流 key
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(strings.TrimSpace(readJSONField(c, field)))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", value, c.ClientIP())
	}
}

func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return ""
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	value, ok := payload[field]
	if !ok {
		return ""
	}
	if text, ok := value.(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		return int64(v), true
	case float32:
		return int64(v), true
	default:
		return 0, false
	}
}
