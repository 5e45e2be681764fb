package worker

import (
	"context"
	"fmt"

	"github.com/peptide-store/internal/logger"
	"github.com/peptide-store/internal/models"
	"github.com/peptide-store/internal/provider"
	"github.com/peptide-store/internal/queue"
	"github.com/peptide-store/internal/repository"
	"github.com/peptide-store/internal/service"

	"github.com/hibiken/asynq"
)

// ConfirmationSender 同步发送下单确认邮件
type ConfirmationSender interface {
	SendOrderConfirmation(order *models.Order) error
}

// Consumer 异步任务消费者
type Consumer struct {
	OrderRepo     repository.OrderRepository
	Notifications ConfirmationSender
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	if c == nil {
		return &Consumer{}
	}
	return &Consumer{
		OrderRepo:     c.OrderRepo,
		Notifications: c.NotificationService,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmationEmail, c.handleOrderConfirmationEmail)
}

// handleOrderConfirmationEmail 发送下单确认邮件
// 订单不存在或邮件服务不可用时不再重试，其余错误交给 asynq 重试
func (c *Consumer) handleOrderConfirmationEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_confirmation_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderConfirmationPayload(task)
	if err != nil {
		logger.Warnw("worker_order_confirmation_unmarshal_failed", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if c.OrderRepo == nil || c.Notifications == nil {
		logger.Warnw("worker_order_confirmation_skip_not_configured", "order_id", payload.OrderID)
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_confirmation_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_confirmation_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	if err := c.Notifications.SendOrderConfirmation(order); err != nil {
		logger.Warnw("worker_order_confirmation_send_failed",
			"order_id", order.ID,
			"order_code", order.Code,
			"permanent", service.IsPermanentNotificationError(err),
			"error", err,
		)
		if service.IsPermanentNotificationError(err) {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}
	logger.Infow("worker_order_confirmation_sent", "order_id", order.ID, "order_code", order.Code)
	return nil
}
