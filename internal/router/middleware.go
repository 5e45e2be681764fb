package router

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/peptide-store/internal/authz"
	"github.com/peptide-store/internal/config"
	handlershared "github.com/peptide-store/internal/http/handlers/shared"
	"github.com/peptide-store/internal/http/response"
	"github.com/peptide-store/internal/logger"
	"github.com/peptide-store/internal/metrics"
	"github.com/peptide-store/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			requestIDHeader,
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if userID, ok := c.Get(handlershared.ContextKeyUserID); ok {
			fields = append(fields, "user_id", userID)
		}
		if len(c.Errors) > 0 {
			sugar.Errorw("http_request", append(fields, "errors", c.Errors.String())...)
			return
		}
		sugar.Infow("http_request", fields...)
	}
}

// MetricsMiddleware 记录请求耗时与状态码，路由标签使用模板避免高基数
func MetricsMiddleware(registry *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		registry.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

// RecoveryMiddleware 捕获 panic 并返回统一错误响应
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				handlershared.RequestLog(c).Errorw("http_panic_recovered",
					"path", c.Request.URL.Path,
					"panic", recovered,
					"stack", string(debug.Stack()),
				)
				response.AbortWithError(c, response.CodeInternal, "Internal server error")
			}
		}()
		c.Next()
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// UserJWTAuthMiddleware 校验会话令牌并写入主体
func UserJWTAuthMiddleware(verifier *service.SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			logger.Errorw("session_verifier_unavailable")
			response.AbortWithError(c, response.CodeUnauthorized, "Unauthorized")
			return
		}
		principal, err := verifier.Verify(c.GetHeader("Authorization"))
		if err != nil {
			msg := "Unauthorized"
			if errors.Is(err, service.ErrInvalidToken) {
				msg = "Invalid or expired token"
			}
			response.AbortWithError(c, response.CodeUnauthorized, msg)
			return
		}
		c.Set(handlershared.ContextKeyUserID, principal.UserID)
		c.Set(handlershared.ContextKeyRole, principal.Role)
		c.Set(handlershared.ContextKeyPrincipal, principal)
		c.Next()
	}
}

// RequireAdminMiddleware 要求管理员角色，需在 UserJWTAuthMiddleware 之后使用
func RequireAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var principal *service.Principal
		if value, ok := c.Get(handlershared.ContextKeyPrincipal); ok {
			principal, _ = value.(*service.Principal)
		}
		if err := service.RequireAdmin(principal); err != nil {
			if errors.Is(err, service.ErrForbidden) {
				response.AbortWithError(c, response.CodeForbidden, "Forbidden: administrator only")
				return
			}
			response.AbortWithError(c, response.CodeUnauthorized, "Unauthorized")
			return
		}
		c.Next()
	}
}

// AuthzMiddleware 按角色、路由模板与方法做 Casbin 鉴权
func AuthzMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("authz_service_unavailable")
			response.AbortWithError(c, response.CodeForbidden, "Forbidden")
			return
		}
		role := handlershared.GetContextString(c, handlershared.ContextKeyRole)
		if role == "" {
			response.AbortWithError(c, response.CodeUnauthorized, "Unauthorized")
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceRole(role, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("authz_enforce_failed",
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			response.AbortWithError(c, response.CodeForbidden, "Forbidden")
			return
		}
		if !allowed {
			logger.Warnw("authz_permission_denied",
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			response.AbortWithError(c, response.CodeForbidden, "Forbidden")
			return
		}
		c.Next()
	}
}
