package repository

import (
	"errors"
	"strings"

	"github.com/peptide-store/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByID(id uint) (*models.User, error)
	GetActiveByUsername(username string) (*models.User, error)
	ExistsByUsernameOrEmail(username, email string) (bool, error)
	ListByIDs(ids []uint) ([]models.User, error)
	Create(user *models.User) error
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetActiveByUsername 根据登录名获取启用中的用户
func (r *GormUserRepository) GetActiveByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ? AND is_active = ?", strings.TrimSpace(username), true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ExistsByUsernameOrEmail 登录名或邮箱是否已被占用，email 为空时仅检查登录名
func (r *GormUserRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	query := r.db.Model(&models.User{})
	if email != "" {
		query = query.Where("username = ? OR email = ?", username, email)
	} else {
		query = query.Where("username = ?", username)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByIDs 批量获取用户
func (r *GormUserRepository) ListByIDs(ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}
