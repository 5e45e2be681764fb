package response

import (
	"math"
	"time"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Timestamp  string      `json:"timestamp"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Warnings   []string    `json:"warnings,omitempty"`
	RequestID  string      `json:"request_id,omitempty"`
}

// Pagination 分页信息
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	Total       int64 `json:"total"`
	TotalPages  int64 `json:"totalPages"`
}

// BuildPagination 根据总数计算分页信息
func BuildPagination(page, pageSize int, total int64) Pagination {
	totalPages := int64(0)
	if pageSize > 0 {
		totalPages = int64(math.Ceil(float64(total) / float64(pageSize)))
	}
	return Pagination{
		CurrentPage: page,
		PageSize:    pageSize,
		Total:       total,
		TotalPages:  totalPages,
	}
}

func newResponse(c *gin.Context, success bool, msg string, data interface{}) Response {
	return Response{
		Success:   success,
		Message:   msg,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID(c),
	}
}

// Success 成功响应
func Success(c *gin.Context, msg string, data interface{}) {
	c.JSON(CodeOK, newResponse(c, true, msg, data))
}

// Created 创建成功响应
func Created(c *gin.Context, msg string, data interface{}) {
	c.JSON(CodeCreated, newResponse(c, true, msg, data))
}

// SuccessWithWarnings 成功响应，并附带不影响结果的告警（例如通知发送失败）
func SuccessWithWarnings(c *gin.Context, code int, msg string, data interface{}, warnings []string) {
	resp := newResponse(c, true, msg, data)
	if len(warnings) > 0 {
		resp.Warnings = warnings
	}
	c.JSON(code, resp)
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, msg string, data interface{}, pagination Pagination) {
	resp := newResponse(c, true, msg, data)
	resp.Pagination = &pagination
	c.JSON(CodeOK, resp)
}

// Error 错误响应
func Error(c *gin.Context, code int, msg string) {
	c.JSON(code, newResponse(c, false, msg, nil))
}

// AbortWithError 错误响应并终止后续处理
func AbortWithError(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, newResponse(c, false, msg, nil))
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// Unauthorized 401响应
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// Forbidden 403响应
func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
