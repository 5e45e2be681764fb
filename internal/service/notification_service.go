package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/peptide-store/internal/config"
	"github.com/peptide-store/internal/logger"
	"github.com/peptide-store/internal/metrics"
	"github.com/peptide-store/internal/models"
	"github.com/peptide-store/internal/queue"
)

// OrderNotifier 下单确认通知
type OrderNotifier interface {
	NotifyOrderCreated(ctx context.Context, order *models.Order) error
}

// ConfirmationEnqueuer 确认邮件入队，由 queue.Client 实现
type ConfirmationEnqueuer interface {
	Enabled() bool
	EnqueueOrderConfirmation(payload queue.OrderConfirmationPayload) error
}

// NotificationService 下单确认通知
// 队列可用时入队由 worker 异步发送并重试，否则同步发送
type NotificationService struct {
	enqueuer ConfirmationEnqueuer
	sender   EmailSender
	cfg      config.ConfirmationEmailConfig
	metrics  *metrics.Registry
}

// NewNotificationService 创建通知服务
func NewNotificationService(enqueuer ConfirmationEnqueuer, sender EmailSender, cfg config.ConfirmationEmailConfig, registry *metrics.Registry) *NotificationService {
	return &NotificationService{
		enqueuer: enqueuer,
		sender:   sender,
		cfg:      cfg,
		metrics:  registry,
	}
}

// NotifyOrderCreated 通知下单成功，返回错误时订单已提交，仅用于告警
func (s *NotificationService) NotifyOrderCreated(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("order is nil")
	}
	// 邮件不可用时入队也只会被 worker 丢弃，直接返回错误交由下单响应提示
	if s.sender == nil || !s.sender.Enabled() {
		s.metrics.IncNotificationFailure("email")
		return ErrEmailServiceDisabled
	}
	if s.enqueuer != nil && s.enqueuer.Enabled() {
		err := s.enqueuer.EnqueueOrderConfirmation(queue.OrderConfirmationPayload{OrderID: order.ID})
		if err == nil {
			return nil
		}
		s.metrics.IncNotificationFailure("queue")
		logger.Warnw("order_confirmation_enqueue_failed",
			"order_id", order.ID,
			"order_code", order.Code,
			"error", err,
		)
	}
	if err := s.SendOrderConfirmation(order); err != nil {
		s.metrics.IncNotificationFailure("email")
		return err
	}
	return nil
}

// SendOrderConfirmation 同步发送确认邮件，order 需预加载明细、配送与支付方式
func (s *NotificationService) SendOrderConfirmation(order *models.Order) error {
	if s.sender == nil {
		return ErrEmailServiceDisabled
	}
	to := strings.TrimSpace(order.ContactInfo)
	if to == "" {
		return ErrInvalidEmail
	}
	subject := strings.TrimSpace(s.cfg.Subject)
	if subject == "" {
		subject = "Order Created"
	}
	template := s.cfg.Template
	if strings.TrimSpace(template) == "" {
		template = config.DefaultConfirmationTemplate
	}
	return s.sender.SendHTMLEmail(to, subject, RenderConfirmationEmail(template, order))
}

// RenderConfirmationEmail 替换模板占位符
func RenderConfirmationEmail(template string, order *models.Order) string {
	paymentName := ""
	paymentInstructions := ""
	if order.PaymentMethod != nil {
		paymentName = order.PaymentMethod.Name
		paymentInstructions = order.PaymentMethod.Instructions
	}
	replacer := strings.NewReplacer(
		"{{order_code}}", html.EscapeString(order.Code),
		"{{order_date}}", order.CreatedAt.UTC().Format("2006-01-02 15:04 MST"),
		"{{subtotal}}", formatAmount(order.SubtotalAmount),
		"{{delivery_fee}}", formatAmount(order.DeliveryFeeSnapshot),
		"{{discount}}", formatAmount(order.DiscountAmount),
		"{{total}}", formatAmount(order.TotalAmount),
		"{{status}}", html.EscapeString(order.Status),
		"{{items}}", renderOrderItems(order.Items),
		"{{payment_method}}", html.EscapeString(paymentName),
		"{{payment_instructions}}", html.EscapeString(paymentInstructions),
	)
	return replacer.Replace(template)
}

func renderOrderItems(items []models.OrderItem) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<ul>")
	for _, item := range items {
		b.WriteString(fmt.Sprintf("<li>%s x %d @ %s</li>", html.EscapeString(item.ProductName), item.Quantity, formatAmount(item.PriceSnapshot)))
	}
	b.WriteString("</ul>")
	return b.String()
}

func formatAmount(amount models.Money) string {
	return "$" + amount.Decimal.StringFixed(2)
}

// IsPermanentNotificationError 不可通过重试恢复的通知错误
func IsPermanentNotificationError(err error) bool {
	return errors.Is(err, ErrEmailServiceDisabled) ||
		errors.Is(err, ErrEmailServiceNotConfigured) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrEmailRecipientRejected)
}
