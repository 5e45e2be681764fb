package models

import "time"

// Order 订单表，创建后仅状态与里程碑时间可变
type Order struct {
	ID                  uint       `gorm:"primarykey" json:"id"`                                               // 主键
	Code                string     `gorm:"uniqueIndex;not null" json:"code"`                                   // 订单编号
	UserID              uint       `gorm:"index;not null" json:"user_id"`                                      // 用户ID
	RecipientName       string     `gorm:"not null" json:"recipient_name"`                                     // 收件人
	ContactInfo         string     `gorm:"not null" json:"contact_info"`                                       // 联系邮箱
	PhoneNo             *string    `json:"phone_no"`                                                           // 电话
	Country             string     `json:"country"`                                                            // 国家
	State               string     `json:"state"`                                                              // 州/省
	City                string     `json:"city"`                                                               // 城市
	Address             string     `json:"address"`                                                            // 地址
	PostalCode          string     `json:"postal_code"`                                                        // 邮编
	ShipmentMethodID    uint       `gorm:"index;not null" json:"shipment_method_id"`                           // 配送方式
	PaymentMethodID     uint       `gorm:"index;not null" json:"payment_method_id"`                            // 支付方式
	PromotionID         *uint      `gorm:"index" json:"promotion_id"`                                          // 促销ID
	SubtotalAmount      Money      `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal_amount"`       // 商品小计
	DeliveryFeeSnapshot Money      `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_fee_snapshot"` // 运费快照
	DiscountAmount      Money      `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`       // 优惠金额
	TotalAmount         Money      `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`          // 实付金额
	Status              string     `gorm:"type:varchar(20);index;not null" json:"status"`                      // 订单状态
	PaidAt              *time.Time `json:"paid_at"`                                                            // 支付时间
	ShippedAt           *time.Time `json:"shipped_at"`                                                         // 发货时间
	DeliveredAt         *time.Time `json:"delivered_at"`                                                       // 送达时间
	CompletedAt         *time.Time `json:"completed_at"`                                                       // 完成时间
	CancelledAt         *time.Time `json:"cancelled_at"`                                                       // 取消时间
	CreatedBy           uint       `json:"created_by"`                                                         // 创建人
	UpdatedBy           *uint      `json:"updated_by"`                                                         // 最后操作人
	CreatedAt           time.Time  `gorm:"index" json:"creation_date"`                                         // 创建时间
	UpdatedAt           time.Time  `json:"last_updated"`                                                       // 更新时间

	Items          []OrderItem     `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
	ShipmentMethod *ShipmentMethod `gorm:"foreignKey:ShipmentMethodID" json:"-"`      // 配送方式
	PaymentMethod  *PaymentMethod  `gorm:"foreignKey:PaymentMethodID" json:"-"`       // 支付方式
	Promotion      *Promotion      `gorm:"foreignKey:PromotionID" json:"-"`           // 促销
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单项快照，创建后不再修改
type OrderItem struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                        // 主键
	OrderID       uint      `gorm:"index;not null" json:"order_id"`                              // 订单ID
	ProductID     uint      `gorm:"index;not null" json:"product_id"`                            // 商品ID
	ProductName   string    `gorm:"not null" json:"product_name"`                                // 商品名称快照
	Quantity      int       `gorm:"not null" json:"quantity"`                                    // 数量
	PriceSnapshot Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price_snapshot"` // 下单时单价
	CreatedBy     uint      `json:"created_by"`                                                  // 创建人
	CreatedAt     time.Time `json:"creation_date"`                                               // 创建时间

	Product *Product `gorm:"foreignKey:ProductID" json:"-"` // 关联商品
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
