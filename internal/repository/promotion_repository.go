package repository

import (
	"errors"
	"time"

	"github.com/peptide-store/internal/models"

	"gorm.io/gorm"
)

// PromotionRepository 促销码数据访问接口
type PromotionRepository interface {
	GetByID(id uint) (*models.Promotion, error)
	GetByCode(code string) (*models.Promotion, error)
	GetRedeemableByCode(code string, at time.Time) (*models.Promotion, error)
	Create(promotion *models.Promotion) error
	SetActive(id uint, active bool, actorID uint) (int64, error)
	List(filter PromotionListFilter) ([]models.Promotion, int64, error)
	WithTx(tx *gorm.DB) PromotionRepository
}

// GormPromotionRepository GORM 实现
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository 创建促销仓库
func NewPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPromotionRepository) WithTx(tx *gorm.DB) PromotionRepository {
	if tx == nil {
		return r
	}
	return &GormPromotionRepository{db: tx}
}

// GetByID 根据 ID 获取促销
func (r *GormPromotionRepository) GetByID(id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// GetByCode 根据促销码获取（不校验状态）
func (r *GormPromotionRepository) GetByCode(code string) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.Where("code = ?", code).First(&promotion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// GetRedeemableByCode 获取启用中且处于有效期内的促销，起止时间均为闭区间，空值表示不限
func (r *GormPromotionRepository) GetRedeemableByCode(code string, at time.Time) (*models.Promotion, error) {
	var promotion models.Promotion
	at = at.UTC()
	err := r.db.
		Where("code = ? AND is_active = ?", code, true).
		Where("(starts_at IS NULL OR starts_at <= ?)", at).
		Where("(expires_at IS NULL OR expires_at >= ?)", at).
		First(&promotion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// Create 创建促销
// 起止时间统一存 UTC，sqlite 按文本比较时区不一致会错判有效期；
// is_active 带数据库默认值，插入会丢掉零值 false，需在插入后回写
func (r *GormPromotionRepository) Create(promotion *models.Promotion) error {
	promotion.StartsAt = utcTime(promotion.StartsAt)
	promotion.ExpiresAt = utcTime(promotion.ExpiresAt)
	active := promotion.IsActive
	if err := r.db.Create(promotion).Error; err != nil {
		return err
	}
	if active {
		return nil
	}
	if err := r.db.Model(&models.Promotion{}).Where("id = ?", promotion.ID).Update("is_active", false).Error; err != nil {
		return err
	}
	promotion.IsActive = false
	return nil
}

func utcTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

// SetActive 切换启用状态，返回受影响行数
func (r *GormPromotionRepository) SetActive(id uint, active bool, actorID uint) (int64, error) {
	result := r.db.Model(&models.Promotion{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_by": actorID,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// List 促销列表，按 ID 倒序
func (r *GormPromotionRepository) List(filter PromotionListFilter) ([]models.Promotion, int64, error) {
	query := r.db.Model(&models.Promotion{})
	query = applyKeyword(query, filter.Keyword, "code", "description")
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	query, total, err := countAndPage(query, filter.Page, filter.PageSize)
	if err != nil {
		return nil, 0, err
	}
	var promotions []models.Promotion
	if err := query.Order("id desc").Find(&promotions).Error; err != nil {
		return nil, 0, err
	}
	return promotions, total, nil
}
