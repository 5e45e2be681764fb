package repository

import (
	"errors"
	"time"

	"github.com/peptide-store/internal/constants"
	"github.com/peptide-store/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetActiveByUser(userID uint) (*models.Cart, error)
	GetActiveWithItems(userID uint) (*models.Cart, error)
	CreateActive(userID uint) (*models.Cart, error)
	GetItem(cartID, productID uint) (*models.CartItem, error)
	CreateItem(item *models.CartItem) error
	IncrementItem(itemID uint, delta int) error
	UpdateItemQuantity(cartID, productID uint, quantity int) (int64, error)
	DeleteItem(cartID, productID uint) (int64, error)
	Touch(cartID, userID uint, now time.Time) error
	MarkConverted(cartID, userID uint, now time.Time) (int64, error)
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetActiveByUser 获取用户活跃购物车（不含明细）
func (r *GormCartRepository) GetActiveByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Where("user_id = ? AND status = ?", userID, constants.CartStatusActive).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetActiveWithItems 获取用户活跃购物车及明细，明细关联当前商品信息
func (r *GormCartRepository) GetActiveWithItems(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Items.Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("user_id = ? AND status = ?", userID, constants.CartStatusActive).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// CreateActive 创建活跃购物车；用户已有活跃购物车时返回唯一约束冲突
func (r *GormCartRepository) CreateActive(userID uint) (*models.Cart, error) {
	owner := userID
	cart := &models.Cart{
		UserID:       userID,
		ActiveUserID: &owner,
		Status:       constants.CartStatusActive,
		CreatedBy:    userID,
	}
	if err := r.db.Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// GetItem 获取购物车中的某个商品行
func (r *GormCartRepository) GetItem(cartID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem 新增购物车行
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// IncrementItem 原子累加数量
func (r *GormCartRepository) IncrementItem(itemID uint, delta int) error {
	return r.db.Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now(),
		}).Error
}

// UpdateItemQuantity 设置数量，返回受影响行数
func (r *GormCartRepository) UpdateItemQuantity(cartID, productID uint, quantity int) (int64, error) {
	result := r.db.Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// DeleteItem 删除购物车行，返回受影响行数
func (r *GormCartRepository) DeleteItem(cartID, productID uint) (int64, error) {
	result := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// Touch 刷新购物车更新时间与操作人
func (r *GormCartRepository) Touch(cartID, userID uint, now time.Time) error {
	return r.db.Model(&models.Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]interface{}{
			"updated_by": userID,
			"updated_at": now,
		}).Error
}

// MarkConverted 将活跃购物车标记为已转换，仅当仍处于 active 时生效
func (r *GormCartRepository) MarkConverted(cartID, userID uint, now time.Time) (int64, error) {
	result := r.db.Model(&models.Cart{}).
		Where("id = ? AND status = ?", cartID, constants.CartStatusActive).
		Updates(map[string]interface{}{
			"status":         constants.CartStatusConverted,
			"active_user_id": nil,
			"updated_by":     userID,
			"updated_at":     now,
		})
	return result.RowsAffected, result.Error
}
