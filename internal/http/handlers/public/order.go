package public

import (
	"errors"
	"strings"

	"github.com/peptide-store/internal/constants"
	handlershared "github.com/peptide-store/internal/http/handlers/shared"
	"github.com/peptide-store/internal/http/response"
	"github.com/peptide-store/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 结算请求
type CreateOrderRequest struct {
	RecipientName  string `json:"recipientName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Country        string `json:"country"`
	State          string `json:"state"`
	City           string `json:"city"`
	Address        string `json:"address"`
	PostalCode     string `json:"postalCode"`
	ShipmentMethod uint   `json:"shipmentMethod"`
	PaymentMethod  uint   `json:"paymentMethod"`
	PromotionCode  string `json:"promotionCode"`
}

// QuoteOrderRequest 价格试算请求
type QuoteOrderRequest struct {
	ShipmentMethod uint   `json:"shipmentMethod"`
	PromotionCode  string `json:"promotionCode"`
}

// ListOrders 当前用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c, constants.MaxPageSize)
	orders, total, err := h.OrderService.ListOwn(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch orders", err)
		return
	}
	response.SuccessWithPage(c, "Orders fetched successfully", orders, response.BuildPagination(page, pageSize, total))
}

// CreateOrder 购物车结算下单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Missing required checkout fields", nil)
		return
	}

	result, err := h.OrderService.CreateOrder(c.Request.Context(), service.CheckoutInput{
		UserID:           uid,
		RecipientName:    req.RecipientName,
		Email:            req.Email,
		Phone:            req.Phone,
		Country:          req.Country,
		State:            req.State,
		City:             req.City,
		Address:          req.Address,
		PostalCode:       req.PostalCode,
		ShipmentMethodID: req.ShipmentMethod,
		PaymentMethodID:  req.PaymentMethod,
		PromotionCode:    strings.TrimSpace(req.PromotionCode),
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "Failed to create order")
		return
	}
	response.SuccessWithWarnings(c, response.CodeCreated, "Order created successfully", result, result.Warnings)
}

// QuoteOrder 结算价格试算，不落库
func (h *Handler) QuoteOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req QuoteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "shipmentMethod is required", nil)
		return
	}
	quote, err := h.OrderService.Quote(service.QuoteInput{
		UserID:           uid,
		ShipmentMethodID: req.ShipmentMethod,
		PromotionCode:    strings.TrimSpace(req.PromotionCode),
	})
	if err != nil {
		respondWithMappedError(c, err, quoteErrorRules, response.CodeInternal, "Failed to quote order")
		return
	}
	response.Success(c, "Order quoted successfully", quote)
}

// GetOrder 当前用户订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parsePathID(c, "id", "Order not found")
	if !ok {
		return
	}
	order, err := h.OrderService.GetOwn(uid, orderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "Order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to fetch order", err)
		return
	}
	response.Success(c, "Order fetched successfully", order)
}
