package response

import "net/http"

// 业务状态码直接使用 HTTP 状态码
const (
	CodeOK              = http.StatusOK
	CodeCreated         = http.StatusCreated
	CodeBadRequest      = http.StatusBadRequest
	CodeUnauthorized    = http.StatusUnauthorized
	CodeForbidden       = http.StatusForbidden
	CodeNotFound        = http.StatusNotFound
	CodeConflict        = http.StatusConflict
	CodeTooManyRequests = http.StatusTooManyRequests
	CodeInternal        = http.StatusInternalServerError
)
