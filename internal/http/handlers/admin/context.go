package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/peptide-store/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, handlershared.ContextKeyUserID)
}

func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
