package models

import (
	"strings"

	"github.com/peptide-store/internal/constants"
	"github.com/peptide-store/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultAdminPassword = "admin123"

// InitDefaultAdmin 初始化默认管理员账号，已存在管理员时跳过
func InitDefaultAdmin(db *gorm.DB, username, password, email string) error {
	var count int64
	if err := db.Model(&User{}).Where("role = ?", constants.RoleAdministrator).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username = strings.TrimSpace(username)
	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = defaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Name:         "Administrator",
		Username:     username,
		PasswordHash: string(hash),
		Role:         constants.RoleAdministrator,
		IsActive:     true,
	}
	if trimmed := strings.TrimSpace(email); trimmed != "" {
		admin.Email = &trimmed
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	if password == defaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}
	return nil
}
