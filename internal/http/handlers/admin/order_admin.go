package admin

import (
	"strings"

	"github.com/peptide-store/internal/constants"
	handlershared "github.com/peptide-store/internal/http/handlers/shared"
	"github.com/peptide-store/internal/http/response"
	"github.com/peptide-store/internal/repository"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// AdminListOrders 管理端订单列表，支持 keyword 与 status 过滤
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c, constants.AdminOrderMaxPageSize)
	orders, total, err := h.OrderAdminService.List(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "Failed to fetch orders")
		return
	}
	response.SuccessWithPage(c, "Orders fetched successfully", orders, response.BuildPagination(page, pageSize, total))
}

// AdminGetOrder 管理端订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		respondError(c, response.CodeNotFound, "Order not found", nil)
		return
	}
	order, err := h.OrderAdminService.Get(orderID)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "Failed to fetch order")
		return
	}
	response.Success(c, "Order fetched successfully", order)
}

// AdminUpdateOrderStatus 管理端更新订单状态
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		respondError(c, response.CodeNotFound, "Order not found", nil)
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "status is required", nil)
		return
	}

	status, err := h.OrderAdminService.SetStatus(orderID, req.Status, adminID)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "Failed to update order status")
		return
	}
	response.Success(c, "Order status updated", gin.H{"id": orderID, "status": status})
}
