package public

import (
	"strings"

	"github.com/peptide-store/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListProducts 商品列表，支持 category 与 search 过滤
func (h *Handler) ListProducts(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))
	products, err := h.CatalogService.ListProducts(c.Request.Context(), category, search)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch products", err)
		return
	}
	response.Success(c, "Products fetched successfully", products)
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parsePathID(c, "id", "Product not found")
	if !ok {
		return
	}
	product, err := h.CatalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "Failed to fetch product")
		return
	}
	response.Success(c, "Product fetched successfully", product)
}
