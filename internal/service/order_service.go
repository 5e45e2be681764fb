package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/peptide-store/internal/constants"
	"github.com/peptide-store/internal/logger"
	"github.com/peptide-store/internal/metrics"
	"github.com/peptide-store/internal/models"
	"github.com/peptide-store/internal/repository"
)

// NotificationWarning 确认邮件未能发送时附加到下单响应的提示
const NotificationWarning = "Order confirmation email could not be sent"

// CheckoutInput 下单参数
type CheckoutInput struct {
	UserID           uint
	RecipientName    string
	Email            string
	Phone            string
	Country          string
	State            string
	City             string
	Address          string
	PostalCode       string
	ShipmentMethodID uint
	PaymentMethodID  uint
	PromotionCode    string
}

// CheckoutResult 下单结果
type CheckoutResult struct {
	OrderID  uint     `json:"id"`
	Code     string   `json:"code"`
	Warnings []string `json:"-"`
}

// QuoteInput 价格试算参数
type QuoteInput struct {
	UserID           uint
	ShipmentMethodID uint
	PromotionCode    string
}

// OrderServiceOptions 订单服务依赖
type OrderServiceOptions struct {
	UnitOfWork repository.UnitOfWork
	CartRepo   repository.CartRepository
	OrderRepo  repository.OrderRepository
	MasterRepo repository.MasterDataRepository
	Promotions *PromotionService
	Notifier   OrderNotifier
	Codes      *OrderCodeGenerator
	Metrics    *metrics.Registry
}

// OrderService 购物车转订单与用户订单查询
type OrderService struct {
	uow        repository.UnitOfWork
	cartRepo   repository.CartRepository
	orderRepo  repository.OrderRepository
	masterRepo repository.MasterDataRepository
	promotions *PromotionService
	notifier   OrderNotifier
	codes      *OrderCodeGenerator
	metrics    *metrics.Registry
	now        func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(opts OrderServiceOptions) *OrderService {
	codes := opts.Codes
	if codes == nil {
		codes = NewOrderCodeGenerator("")
	}
	return &OrderService{
		uow:        opts.UnitOfWork,
		cartRepo:   opts.CartRepo,
		orderRepo:  opts.OrderRepo,
		masterRepo: opts.MasterRepo,
		promotions: opts.Promotions,
		notifier:   opts.Notifier,
		codes:      codes,
		metrics:    opts.Metrics,
		now:        time.Now,
	}
}

// checkoutContext 前置校验通过后的下单上下文
type checkoutContext struct {
	cart           *models.Cart
	lines          []PricedLine
	shipmentMethod *models.ShipmentMethod
	paymentMethod  *models.PaymentMethod
	promotion      *models.Promotion
	quote          Quote
}

// CreateOrder 将活跃购物车转换为订单
// 订单、订单项、购物车状态与促销使用记录在同一事务内提交；确认通知在提交后发送，失败仅产生告警
func (s *OrderService) CreateOrder(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	input = normalizeCheckoutInput(input)
	if err := validateCheckoutInput(input); err != nil {
		s.metrics.IncCheckoutFailure("invalid_input")
		return nil, err
	}

	checkout, err := s.prepare(input.UserID, input.ShipmentMethodID, input.PaymentMethodID, input.PromotionCode, true)
	if err != nil {
		s.metrics.IncCheckoutFailure(checkoutFailureReason(err))
		return nil, err
	}

	now := s.now()
	order := &models.Order{
		Code:                s.codes.Next(),
		UserID:              input.UserID,
		RecipientName:       input.RecipientName,
		ContactInfo:         input.Email,
		Country:             input.Country,
		State:               input.State,
		City:                input.City,
		Address:             input.Address,
		PostalCode:          input.PostalCode,
		ShipmentMethodID:    checkout.shipmentMethod.ID,
		PaymentMethodID:     checkout.paymentMethod.ID,
		SubtotalAmount:      checkout.quote.Subtotal,
		DeliveryFeeSnapshot: checkout.quote.DeliveryFee,
		DiscountAmount:      checkout.quote.Discount,
		TotalAmount:         checkout.quote.Total,
		Status:              constants.OrderStatusPending,
		CreatedBy:           input.UserID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if input.Phone != "" {
		phone := input.Phone
		order.PhoneNo = &phone
	}
	if checkout.promotion != nil {
		promotionID := checkout.promotion.ID
		order.PromotionID = &promotionID
	}
	items := make([]models.OrderItem, 0, len(checkout.lines))
	for _, line := range checkout.lines {
		items = append(items, models.OrderItem{
			ProductID:     line.ProductID,
			ProductName:   line.Name,
			Quantity:      line.Quantity,
			PriceSnapshot: line.UnitPrice,
			CreatedBy:     input.UserID,
			CreatedAt:     now,
		})
	}

	err = s.uow.Transaction(func(repos repository.TxRepositories) error {
		if err := repos.Orders.Create(order, items); err != nil {
			return err
		}
		affected, err := repos.Carts.MarkConverted(checkout.cart.ID, input.UserID, now)
		if err != nil {
			return err
		}
		if affected == 0 {
			// 并发下单时购物车已被其他请求转换
			return ErrCartNotFound
		}
		if checkout.promotion == nil {
			return nil
		}
		if err := checkPromotionRedeemable(repos.PromotionUsages, checkout.promotion, input.UserID); err != nil {
			return err
		}
		if err := repos.PromotionUsages.Create(&models.PromotionUsage{
			PromotionID: checkout.promotion.ID,
			UserID:      input.UserID,
			OrderID:     order.ID,
		}); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrPromotionAlreadyUsed
			}
			return err
		}
		return nil
	})
	if err != nil {
		s.metrics.IncCheckoutFailure(checkoutFailureReason(err))
		logger.Warnw("order_checkout_rolled_back",
			"user_id", input.UserID,
			"cart_id", checkout.cart.ID,
			"error", err,
		)
		return nil, err
	}

	s.metrics.IncOrderCreated()
	logger.Infow("order_created",
		"order_id", order.ID,
		"order_code", order.Code,
		"user_id", input.UserID,
		"total", order.TotalAmount.String(),
	)

	result := &CheckoutResult{OrderID: order.ID, Code: order.Code}
	order.Items = items
	order.ShipmentMethod = checkout.shipmentMethod
	order.PaymentMethod = checkout.paymentMethod
	order.Promotion = checkout.promotion
	if s.notifier != nil {
		if err := s.notifier.NotifyOrderCreated(ctx, order); err != nil {
			logger.Warnw("order_notification_failed",
				"order_id", order.ID,
				"order_code", order.Code,
				"error", err,
			)
			result.Warnings = append(result.Warnings, NotificationWarning)
		}
	}
	return result, nil
}

// Quote 价格试算，不写入任何数据
func (s *OrderService) Quote(input QuoteInput) (*Quote, error) {
	checkout, err := s.prepare(input.UserID, input.ShipmentMethodID, 0, input.PromotionCode, false)
	if err != nil {
		return nil, err
	}
	quote := checkout.quote
	return &quote, nil
}

// prepare 按顺序执行前置校验：购物车、配送方式、支付方式、促销码
func (s *OrderService) prepare(userID, shipmentMethodID, paymentMethodID uint, promotionCode string, requirePayment bool) (*checkoutContext, error) {
	cart, err := s.cartRepo.GetActiveWithItems(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	shipmentMethod, err := resolveShipmentMethod(s.masterRepo, shipmentMethodID)
	if err != nil {
		return nil, err
	}
	var paymentMethod *models.PaymentMethod
	if requirePayment {
		paymentMethod, err = resolvePaymentMethod(s.masterRepo, paymentMethodID)
		if err != nil {
			return nil, err
		}
	}

	var promotion *models.Promotion
	if strings.TrimSpace(promotionCode) != "" {
		promotion, err = s.promotions.Validate(promotionCode, userID)
		if err != nil {
			return nil, err
		}
	}

	lines, err := pricedLinesFromCart(cart)
	if err != nil {
		return nil, err
	}
	subtotal := ComputeSubtotal(lines)
	return &checkoutContext{
		cart:           cart,
		lines:          lines,
		shipmentMethod: shipmentMethod,
		paymentMethod:  paymentMethod,
		promotion:      promotion,
		quote:          BuildQuote(subtotal, shipmentMethod.Fee.Decimal, promotion),
	}, nil
}

// ListOwn 用户订单列表，按创建时间倒序
func (s *OrderService) ListOwn(userID uint, page, pageSize int) ([]OrderView, int64, error) {
	orders, total, err := s.orderRepo.ListByUser(repository.OrderListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, err
	}
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, buildOrderView(order))
	}
	return views, total, nil
}

// GetOwn 用户订单详情，他人订单视为不存在
func (s *OrderService) GetOwn(userID, orderID uint) (*OrderDetailView, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return buildOrderDetailView(order), nil
}

func normalizeCheckoutInput(input CheckoutInput) CheckoutInput {
	input.RecipientName = strings.TrimSpace(input.RecipientName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)
	input.Country = strings.TrimSpace(input.Country)
	input.State = strings.TrimSpace(input.State)
	input.City = strings.TrimSpace(input.City)
	input.Address = strings.TrimSpace(input.Address)
	input.PostalCode = strings.TrimSpace(input.PostalCode)
	input.PromotionCode = strings.TrimSpace(input.PromotionCode)
	return input
}

func validateCheckoutInput(input CheckoutInput) error {
	if input.UserID == 0 {
		return ErrUnauthorized
	}
	if input.RecipientName == "" || input.Email == "" || input.Country == "" ||
		input.City == "" || input.Address == "" || input.PostalCode == "" {
		return ErrCheckoutFields
	}
	if _, err := normalizeOptionalEmail(input.Email); err != nil {
		return err
	}
	return nil
}

func checkoutFailureReason(err error) string {
	switch {
	case errors.Is(err, ErrCartNotFound):
		return "cart_not_found"
	case errors.Is(err, ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, ErrShipmentMethodNotFound):
		return "shipment_method_not_found"
	case errors.Is(err, ErrPaymentMethodNotFound):
		return "payment_method_not_found"
	case errors.Is(err, ErrPromotionNotFound),
		errors.Is(err, ErrPromotionAlreadyUsed),
		errors.Is(err, ErrPromotionUsageLimitReached):
		return "promotion_rejected"
	case errors.Is(err, ErrProductNotAvailable):
		return "product_not_available"
	default:
		return "internal"
	}
}
