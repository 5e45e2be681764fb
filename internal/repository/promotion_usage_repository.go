package repository

import (
	"github.com/peptide-store/internal/models"

	"gorm.io/gorm"
)

// PromotionUsageRepository 促销使用记录数据访问接口
type PromotionUsageRepository interface {
	Create(usage *models.PromotionUsage) error
	ExistsByPromotionAndUser(promotionID, userID uint) (bool, error)
	CountByPromotion(promotionID uint) (int64, error)
	WithTx(tx *gorm.DB) PromotionUsageRepository
}

// GormPromotionUsageRepository GORM 实现
type GormPromotionUsageRepository struct {
	db *gorm.DB
}

// NewPromotionUsageRepository 创建促销使用记录仓库
func NewPromotionUsageRepository(db *gorm.DB) *GormPromotionUsageRepository {
	return &GormPromotionUsageRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPromotionUsageRepository) WithTx(tx *gorm.DB) PromotionUsageRepository {
	if tx == nil {
		return r
	}
	return &GormPromotionUsageRepository{db: tx}
}

// Create 写入使用记录，重复使用时返回唯一约束冲突
func (r *GormPromotionUsageRepository) Create(usage *models.PromotionUsage) error {
	return r.db.Create(usage).Error
}

// ExistsByPromotionAndUser 用户是否已使用过该促销
func (r *GormPromotionUsageRepository) ExistsByPromotionAndUser(promotionID, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.PromotionUsage{}).
		Where("promotion_id = ? AND user_id = ?", promotionID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByPromotion 统计促销总使用次数
func (r *GormPromotionUsageRepository) CountByPromotion(promotionID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.PromotionUsage{}).
		Where("promotion_id = ?", promotionID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
