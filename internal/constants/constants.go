package constants

// 用户角色常量
const (
	RoleUser          = "user"
	RoleAdministrator = "administrator"
)

// 购物车状态常量
const (
	CartStatusActive    = "active"
	CartStatusConverted = "converted"
)

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderStatuses 全部合法订单状态，顺序即展示顺序
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// 促销类型常量
const (
	PromotionTypeDiscount     = "discount" // 百分比折扣
	PromotionTypeFixed        = "fixed"    // 固定金额
	PromotionTypeFreeShipping = "free_shipping"
)

// PromotionTypes 全部合法促销类型
var PromotionTypes = []string{
	PromotionTypeDiscount,
	PromotionTypeFixed,
	PromotionTypeFreeShipping,
}

// 分页默认值
const (
	DefaultPageSize       = 10
	MaxPageSize           = 100
	AdminOrderMaxPageSize = 50
)

// 队列名称
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 授权动作
const (
	AuthzActionView = "view"
)

// 异步任务类型
const (
	TaskOrderConfirmationEmail = "order:confirmation_email"
)
