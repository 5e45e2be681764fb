package repository

import (
	"errors"

	"github.com/peptide-store/internal/models"

	"gorm.io/gorm"
)

// MasterDataRepository 配送方式与支付方式只读访问
type MasterDataRepository interface {
	ListActiveShipmentMethods() ([]models.ShipmentMethod, error)
	GetActiveShipmentMethod(id uint) (*models.ShipmentMethod, error)
	ListActivePaymentMethods() ([]models.PaymentMethod, error)
	GetActivePaymentMethod(id uint) (*models.PaymentMethod, error)
}

// GormMasterDataRepository GORM 实现
type GormMasterDataRepository struct {
	db *gorm.DB
}

// NewMasterDataRepository 创建主数据仓库
func NewMasterDataRepository(db *gorm.DB) *GormMasterDataRepository {
	return &GormMasterDataRepository{db: db}
}

// ListActiveShipmentMethods 启用中的配送方式，按运费升序
func (r *GormMasterDataRepository) ListActiveShipmentMethods() ([]models.ShipmentMethod, error) {
	var methods []models.ShipmentMethod
	if err := r.db.Where("is_active = ?", true).Order("fee asc, id asc").Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

// GetActiveShipmentMethod 获取启用中的配送方式
func (r *GormMasterDataRepository) GetActiveShipmentMethod(id uint) (*models.ShipmentMethod, error) {
	var method models.ShipmentMethod
	if err := r.db.Where("id = ? AND is_active = ?", id, true).First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &method, nil
}

// ListActivePaymentMethods 启用中的支付方式，按名称排序
func (r *GormMasterDataRepository) ListActivePaymentMethods() ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	if err := r.db.Where("is_active = ?", true).Order("name asc").Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

// GetActivePaymentMethod 获取启用中的支付方式
func (r *GormMasterDataRepository) GetActivePaymentMethod(id uint) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := r.db.Where("id = ? AND is_active = ?", id, true).First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &method, nil
}
