package models

import "time"

// Cart 购物车
// ActiveUserID 仅在 active 状态下等于 UserID，转换后置空；唯一索引保证每个用户至多一个活跃购物车
type Cart struct {
	ID           uint      `gorm:"primarykey" json:"id"`                          // 主键
	UserID       uint      `gorm:"index;not null" json:"user_id"`                 // 所属用户
	ActiveUserID *uint     `gorm:"uniqueIndex:idx_carts_active_user" json:"-"`    // 活跃占位
	Status       string    `gorm:"type:varchar(20);not null;index" json:"status"` // 状态（active/converted）
	CreatedBy    uint      `json:"created_by"`                                    // 创建人
	UpdatedBy    *uint     `json:"updated_by"`                                    // 更新人
	CreatedAt    time.Time `json:"creation_date"`                                 // 创建时间
	UpdatedAt    time.Time `json:"last_updated"`                                  // 更新时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 购物车项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// CartItem 购物车项，不保存价格，价格实时读取商品
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                               // 主键
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"cart_id"`    // 购物车ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_items_cart_product" json:"product_id"` // 商品ID
	Quantity  int       `gorm:"not null" json:"quantity"`                                           // 数量
	CreatedAt time.Time `json:"creation_date"`                                                      // 创建时间
	UpdatedAt time.Time `json:"last_updated"`                                                       // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
