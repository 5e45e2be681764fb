package admin

import (
	"errors"

	handlershared "github.com/peptide-store/internal/http/handlers/shared"
	"github.com/peptide-store/internal/http/response"
	"github.com/peptide-store/internal/service"

	"github.com/gin-gonic/gin"
)

// invalidStatusMessage 非法状态提示，列出全部可选值
const invalidStatusMessage = "Invalid status. Allowed: pending, paid, shipped, delivered, completed, cancelled"

type mappedHandlerError struct {
	target  error
	code    int
	message string
}

var orderAdminErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, message: "Order not found"},
	{target: service.ErrOrderStatusRequired, code: response.CodeBadRequest, message: "status is required"},
	{target: service.ErrInvalidOrderStatus, code: response.CodeBadRequest, message: invalidStatusMessage},
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMessage string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.message, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMessage, err)
}
