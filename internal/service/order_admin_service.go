package service

import (
	"strings"
	"time"

	"github.com/peptide-store/internal/constants"
	"github.com/peptide-store/internal/logger"
	"github.com/peptide-store/internal/metrics"
	"github.com/peptide-store/internal/repository"
)

// statusMilestoneColumns 状态对应的里程碑时间列，pending 无里程碑
var statusMilestoneColumns = map[string]string{
	constants.OrderStatusPaid:      "paid_at",
	constants.OrderStatusShipped:   "shipped_at",
	constants.OrderStatusDelivered: "delivered_at",
	constants.OrderStatusCompleted: "completed_at",
	constants.OrderStatusCancelled: "cancelled_at",
}

// OrderAdminService 后台订单查询与状态变更
type OrderAdminService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	metrics   *metrics.Registry
	now       func() time.Time
}

// NewOrderAdminService 创建后台订单服务
func NewOrderAdminService(orderRepo repository.OrderRepository, userRepo repository.UserRepository, registry *metrics.Registry) *OrderAdminService {
	return &OrderAdminService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		metrics:   registry,
		now:       time.Now,
	}
}

// NormalizeOrderStatus 规范化状态值，非法时返回 false
func NormalizeOrderStatus(status string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(status))
	for _, item := range constants.OrderStatuses {
		if item == normalized {
			return normalized, true
		}
	}
	return normalized, false
}

// List 后台订单分页列表，附带下单用户名
func (s *OrderAdminService) List(filter repository.OrderListFilter) ([]AdminOrderView, int64, error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	if filter.Status != "" {
		status, ok := NormalizeOrderStatus(filter.Status)
		if !ok {
			return nil, 0, ErrInvalidOrderStatus
		}
		filter.Status = status
	}
	orders, total, err := s.orderRepo.ListAdmin(filter)
	if err != nil {
		return nil, 0, err
	}

	userIDs := make([]uint, 0, len(orders))
	seen := make(map[uint]struct{}, len(orders))
	for _, order := range orders {
		if _, ok := seen[order.UserID]; ok {
			continue
		}
		seen[order.UserID] = struct{}{}
		userIDs = append(userIDs, order.UserID)
	}
	usernames := make(map[uint]string, len(userIDs))
	if len(userIDs) > 0 {
		users, err := s.userRepo.ListByIDs(userIDs)
		if err != nil {
			return nil, 0, err
		}
		for _, user := range users {
			usernames[user.ID] = user.Username
		}
	}

	views := make([]AdminOrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, AdminOrderView{
			OrderView: buildOrderView(order),
			Username:  usernames[order.UserID],
		})
	}
	return views, total, nil
}

// Get 后台订单详情
func (s *OrderAdminService) Get(orderID uint) (*OrderDetailView, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return buildOrderDetailView(order), nil
}

// SetStatus 变更订单状态
// 不限制流转顺序；写入对应里程碑时间与操作人，其余字段不变
func (s *OrderAdminService) SetStatus(orderID uint, status string, adminID uint) (string, error) {
	if strings.TrimSpace(status) == "" {
		return "", ErrOrderStatusRequired
	}
	normalized, ok := NormalizeOrderStatus(status)
	if !ok {
		return "", ErrInvalidOrderStatus
	}
	if orderID == 0 {
		return "", ErrOrderNotFound
	}

	now := s.now()
	updates := map[string]interface{}{
		"updated_at": now,
	}
	if adminID != 0 {
		updates["updated_by"] = adminID
	}
	if column, ok := statusMilestoneColumns[normalized]; ok {
		updates[column] = now
	}
	affected, err := s.orderRepo.UpdateStatus(orderID, normalized, updates)
	if err != nil {
		return "", err
	}
	if affected == 0 {
		return "", ErrOrderNotFound
	}

	s.metrics.IncOrderStatusUpdate(normalized)
	logger.Infow("order_status_updated",
		"order_id", orderID,
		"status", normalized,
		"admin_id", adminID,
	)
	return normalized, nil
}
