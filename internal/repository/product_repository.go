package repository

import (
	"errors"
	"strings"

	"github.com/peptide-store/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口，商城侧只读
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, error)
	GetActiveByID(id uint) (*models.Product, error)
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	query = applyKeyword(query, filter.Search, "name", "description")

	var products []models.Product
	if err := query.Order("id asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetActiveByID 获取上架商品
func (r *GormProductRepository) GetActiveByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("id = ? AND is_active = ?", id, true).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}
