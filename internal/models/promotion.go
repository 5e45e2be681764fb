package models

import "time"

// Promotion 促销码
type Promotion struct {
	ID          uint       `gorm:"primarykey" json:"id"`                               // 主键
	Code        string     `gorm:"uniqueIndex;not null" json:"code"`                   // 促销码（大写）
	Type        string     `gorm:"type:varchar(20);not null" json:"type"`              // 类型（discount/fixed/free_shipping）
	Value       Money      `gorm:"type:decimal(20,2);not null;default:0" json:"value"` // 数值（百分比/固定金额）
	UsageLimit  int        `gorm:"not null;default:0" json:"usage_limit"`              // 总使用次数上限（0 表示不限）
	StartsAt    *time.Time `gorm:"index" json:"starts_at"`                             // 生效时间（含）
	ExpiresAt   *time.Time `gorm:"index" json:"expires_at"`                            // 失效时间（含）
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`             // 是否启用
	Description *string    `json:"description"`                                        // 描述
	CreatedBy   uint       `json:"created_by"`                                         // 创建人
	UpdatedBy   *uint      `json:"updated_by"`                                         // 更新人
	CreatedAt   time.Time  `gorm:"index" json:"creation_date"`                         // 创建时间
	UpdatedAt   time.Time  `json:"last_updated"`                                       // 更新时间
}

// TableName 指定表名
func (Promotion) TableName() string {
	return "promotions"
}

// PromotionUsage 促销码使用记录，(promotion_id, user_id) 唯一
type PromotionUsage struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                                         // 主键
	PromotionID uint      `gorm:"not null;uniqueIndex:idx_promotion_usages_promotion_user" json:"promotion_id"` // 促销ID
	UserID      uint      `gorm:"not null;uniqueIndex:idx_promotion_usages_promotion_user" json:"user_id"`      // 用户ID
	OrderID     uint      `gorm:"index;not null" json:"order_id"`                                               // 订单ID
	CreatedAt   time.Time `json:"creation_date"`                                                                // 使用时间
}

// TableName 指定表名
func (PromotionUsage) TableName() string {
	return "promotion_usages"
}
