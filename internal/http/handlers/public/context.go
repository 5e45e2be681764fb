package public

import (
	"strconv"
	"strings"

	handlershared "github.com/peptide-store/internal/http/handlers/shared"
	"github.com/peptide-store/internal/http/response"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, handlershared.ContextKeyUserID)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// parsePathID 解析路径中的数字 ID，非法时按未找到处理
func parsePathID(c *gin.Context, param, notFoundMsg string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(param)), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeNotFound, notFoundMsg, nil)
		return 0, false
	}
	return uint(id), true
}
