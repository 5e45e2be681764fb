package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/peptide-store/internal/models"
	"github.com/peptide-store/internal/queue"
	"github.com/peptide-store/internal/repository"
	"github.com/peptide-store/internal/service"

	"github.com/hibiken/asynq"
)

type stubOrderRepo struct {
	repository.OrderRepository
	orders map[uint]*models.Order
	err    error
}

func (r *stubOrderRepo) GetByID(id uint) (*models.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.orders[id], nil
}

type stubSender struct {
	err  error
	sent []string
}

func (s *stubSender) SendOrderConfirmation(order *models.Order) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, order.Code)
	return nil
}

func newConfirmationTask(t *testing.T, orderID uint) *asynq.Task {
	t.Helper()
	task, err := queue.NewOrderConfirmationTask(queue.OrderConfirmationPayload{OrderID: orderID})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	return task
}

func TestHandleOrderConfirmationEmailSends(t *testing.T) {
	sender := &stubSender{}
	consumer := &Consumer{
		OrderRepo:     &stubOrderRepo{orders: map[uint]*models.Order{5: {ID: 5, Code: "ORD-5"}}},
		Notifications: sender,
	}
	if err := consumer.handleOrderConfirmationEmail(context.Background(), newConfirmationTask(t, 5)); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "ORD-5" {
		t.Fatalf("expected one confirmation, got %v", sender.sent)
	}

	// 订单不存在时丢弃任务
	if err := consumer.handleOrderConfirmationEmail(context.Background(), newConfirmationTask(t, 6)); err != nil {
		t.Fatalf("missing order should be skipped, got %v", err)
	}
}

func TestHandleOrderConfirmationEmailRetryPolicy(t *testing.T) {
	orders := &stubOrderRepo{orders: map[uint]*models.Order{5: {ID: 5, Code: "ORD-5"}}}

	transient := &Consumer{OrderRepo: orders, Notifications: &stubSender{err: errors.New("connection reset")}}
	err := transient.handleOrderConfirmationEmail(context.Background(), newConfirmationTask(t, 5))
	if err == nil || errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("transient failure should be retried, got %v", err)
	}

	permanent := &Consumer{OrderRepo: orders, Notifications: &stubSender{err: service.ErrEmailServiceDisabled}}
	err = permanent.handleOrderConfirmationEmail(context.Background(), newConfirmationTask(t, 5))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("permanent failure should skip retry, got %v", err)
	}

	broken := &Consumer{OrderRepo: orders, Notifications: &stubSender{}}
	err = broken.handleOrderConfirmationEmail(context.Background(), asynq.NewTask(queue.TaskOrderConfirmationEmail, []byte("{bad")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("malformed payload should skip retry, got %v", err)
	}

	dbDown := &Consumer{OrderRepo: &stubOrderRepo{err: errors.New("db down")}, Notifications: &stubSender{}}
	if err := dbDown.handleOrderConfirmationEmail(context.Background(), newConfirmationTask(t, 5)); err == nil {
		t.Fatalf("fetch failure should be retried")
	}
}
