package shared

import (
	"strconv"
	"strings"

	"github.com/peptide-store/internal/constants"

	"github.com/gin-gonic/gin"
)

// NormalizePagination 归一化分页参数，maxSize<=0 时使用全局上限。
func NormalizePagination(page, pageSize, maxSize int) (int, int) {
	if maxSize <= 0 {
		maxSize = constants.MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}

// ParsePagination 读取 page/pageSize 查询参数并归一化，非数字按默认值处理。
func ParsePagination(c *gin.Context, maxSize int) (int, int) {
	page, _ := strconv.Atoi(strings.TrimSpace(c.Query("page")))
	pageSize, _ := strconv.Atoi(strings.TrimSpace(c.Query("pageSize")))
	return NormalizePagination(page, pageSize, maxSize)
}
