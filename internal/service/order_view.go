package service

import "github.com/peptide-store/internal/models"

// OrderView 订单列表行
type OrderView struct {
	models.Order
	ShipmentMethodCode string `json:"shipment_method"`
}

// AdminOrderView 后台订单列表行
type AdminOrderView struct {
	OrderView
	Username string `json:"username"`
}

// OrderItemView 订单项，附带商品图片
type OrderItemView struct {
	models.OrderItem
	FilePath string `json:"file_path"`
}

// OrderDetailView 订单详情
type OrderDetailView struct {
	models.Order
	ShipmentMethodCode string            `json:"shipment_method"`
	PaymentMethodName  string            `json:"payment_method"`
	Promotion          *PromotionSummary `json:"promotion"`
	Items              []OrderItemView   `json:"items"`
}

func buildOrderView(order models.Order) OrderView {
	view := OrderView{Order: order}
	if order.ShipmentMethod != nil {
		view.ShipmentMethodCode = order.ShipmentMethod.Code
	}
	view.Items = nil
	return view
}

func buildOrderDetailView(order *models.Order) *OrderDetailView {
	detail := &OrderDetailView{
		Order: *order,
		Items: make([]OrderItemView, 0, len(order.Items)),
	}
	if order.ShipmentMethod != nil {
		detail.ShipmentMethodCode = order.ShipmentMethod.Code
	}
	if order.PaymentMethod != nil {
		detail.PaymentMethodName = order.PaymentMethod.Name
	}
	if order.Promotion != nil {
		detail.Promotion = SummarizePromotion(order.Promotion)
	}
	for _, item := range order.Items {
		view := OrderItemView{OrderItem: item}
		if item.Product != nil {
			view.FilePath = item.Product.FilePath
		}
		detail.Items = append(detail.Items, view)
	}
	return detail
}
