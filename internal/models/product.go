package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                               // 主键
	Name        string         `gorm:"not null" json:"name"`                               // 名称
	Description string         `gorm:"type:text" json:"description"`                       // 描述
	Category    string         `gorm:"index" json:"category"`                              // 分类
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 当前售价
	FilePath    string         `json:"file_path"`                                          // 图片路径
	IsActive    bool           `gorm:"not null;default:true;index" json:"is_active"`       // 是否上架
	CreatedBy   *uint          `json:"created_by"`                                         // 创建人
	UpdatedBy   *uint          `json:"updated_by"`                                         // 更新人
	CreatedAt   time.Time      `gorm:"index" json:"creation_date"`                         // 创建时间
	UpdatedAt   time.Time      `json:"last_updated"`                                       // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
