package service

import (
	"net/mail"
	"strings"
	"time"

	"github.com/peptide-store/internal/config"
	"github.com/peptide-store/internal/constants"
	"github.com/peptide-store/internal/logger"
	"github.com/peptide-store/internal/models"
	"github.com/peptide-store/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// PermissionResolver 解析角色可见页面前缀
type PermissionResolver interface {
	PermittedPrefixes(role string) ([]string, error)
}

// RegisterInput 注册参数
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// AuthService 注册与登录
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	verifier *SessionVerifier
	perms    PermissionResolver
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, verifier *SessionVerifier, perms PermissionResolver) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
		verifier: verifier,
		perms:    perms,
	}
}

// HashPassword 使用 bcrypt 加密密码
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register 注册普通用户
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	username := strings.TrimSpace(input.Username)
	if name == "" || username == "" || input.Password == "" {
		return nil, ErrMissingFields
	}
	email, err := normalizeOptionalEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if s.cfg != nil {
		if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
			return nil, err
		}
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         name,
		Username:     username,
		PasswordHash: hashed,
		Role:         constants.RoleUser,
		IsActive:     true,
	}
	if email != "" {
		user.Email = &email
	}
	if err := s.userRepo.Create(user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	logger.Infow("user_registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login 用户名密码登录，返回令牌
func (s *AuthService) Login(username, password string) (*models.User, string, time.Time, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetActiveByUsername(username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	var perms []string
	if s.perms != nil {
		perms, err = s.perms.PermittedPrefixes(user.Role)
		if err != nil {
			return nil, "", time.Time{}, err
		}
	}
	token, expiresAt, err := s.verifier.Issue(user, perms)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// normalizeOptionalEmail 邮箱可为空，非空时必须合法
func normalizeOptionalEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", nil
	}
	if !strings.Contains(normalized, "@") {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}
