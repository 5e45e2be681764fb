package public

import (
	"strconv"
	"strings"

	"github.com/peptide-store/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 购物车项请求
type CartItemRequest struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// GetCart 获取活跃购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.GetActiveCart(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch cart", err)
		return
	}
	if cart == nil {
		response.Success(c, "Cart not found", nil)
		return
	}
	response.Success(c, "Cart fetched successfully", cart)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == 0 {
		respondError(c, response.CodeBadRequest, "productId is required", nil)
		return
	}
	if err := h.CartService.AddItem(uid, req.ProductID, req.Quantity); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "Failed to add cart item")
		return
	}
	response.Success(c, "Item added to cart", nil)
}

// UpdateCartItem 修改购物车商品数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == 0 || req.Quantity < 1 {
		respondError(c, response.CodeBadRequest, "productId and quantity (>= 1) required", nil)
		return
	}
	if err := h.CartService.UpdateItemQuantity(uid, req.ProductID, req.Quantity); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "Failed to update cart item")
		return
	}
	response.Success(c, "Cart item updated", nil)
}

// RemoveCartItem 移除购物车商品
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(strings.TrimSpace(c.Query("productId")), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "productId query param required", nil)
		return
	}
	if err := h.CartService.RemoveItem(uid, uint(productID)); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "Failed to remove cart item")
		return
	}
	response.Success(c, "Cart item removed", nil)
}
