package queue

import (
	"encoding/json"
	"fmt"

	"github.com/peptide-store/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirmationEmail 下单确认邮件任务
	TaskOrderConfirmationEmail = constants.TaskOrderConfirmationEmail
)

// OrderConfirmationPayload 下单确认邮件任务载荷
type OrderConfirmationPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderConfirmationTask 创建下单确认邮件任务
func NewOrderConfirmationTask(payload OrderConfirmationPayload) (*asynq.Task, error) {
	if payload.OrderID == 0 {
		return nil, fmt.Errorf("order id is required")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmationEmail, body), nil
}

// ParseOrderConfirmationPayload 解析下单确认邮件任务载荷
func ParseOrderConfirmationPayload(task *asynq.Task) (OrderConfirmationPayload, error) {
	var payload OrderConfirmationPayload
	if task == nil {
		return payload, fmt.Errorf("task is nil")
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, err
	}
	if payload.OrderID == 0 {
		return payload, fmt.Errorf("order id is required")
	}
	return payload, nil
}
