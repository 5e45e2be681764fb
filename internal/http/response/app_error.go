package response

import (
	"errors"
	"net/http"
)

// AppError 接口层错误，Code 即 HTTP 状态码
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError 包装错误，消息为空时使用状态码的标准文本
func WrapError(code int, message string, err error) *AppError {
	if code < 400 || code > 599 {
		code = CodeInternal
	}
	if message == "" {
		message = http.StatusText(code)
	}
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AsAppError 从错误链中提取 AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
