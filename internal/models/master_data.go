package models

import "time"

// ShipmentMethod 配送方式
type ShipmentMethod struct {
	ID          uint      `gorm:"primarykey" json:"id"`                             // 主键
	Code        string    `gorm:"uniqueIndex;not null" json:"code"`                 // 编码
	Description string    `json:"description"`                                      // 描述
	Fee         Money     `gorm:"type:decimal(20,2);not null;default:0" json:"fee"` // 运费
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`           // 是否启用
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// TableName 指定表名
func (ShipmentMethod) TableName() string {
	return "shipment_methods"
}

// PaymentMethod 支付方式（线下转账类）
type PaymentMethod struct {
	ID           uint      `gorm:"primarykey" json:"id"`             // 主键
	Code         string    `gorm:"uniqueIndex;not null" json:"code"` // 编码（zelle/cashapp/bitcoin）
	Name         string    `gorm:"not null" json:"name"`             // 展示名称
	Instructions string    `gorm:"type:text" json:"-"`               // 付款说明，仅用于确认邮件
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// TableName 指定表名
func (PaymentMethod) TableName() string {
	return "payment_methods"
}
