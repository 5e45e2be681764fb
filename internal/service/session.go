package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/peptide-store/internal/config"
	"github.com/peptide-store/internal/constants"
	"github.com/peptide-store/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Principal 已认证主体
type Principal struct {
	UserID   uint     `json:"id"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Perms    []string `json:"perms"`
}

// IsAdmin 是否为管理员
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == constants.RoleAdministrator
}

// SessionAttrs 令牌扩展属性
type SessionAttrs struct {
	Role string `json:"role"`
}

// SessionClaims 会话令牌声明，sub 为用户 ID
type SessionClaims struct {
	Name     string       `json:"name"`
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Attrs    SessionAttrs `json:"attrs"`
	Perms    []string     `json:"perms"`
	jwt.RegisteredClaims
}

// SessionVerifier 无状态会话令牌签发与校验
type SessionVerifier struct {
	secret      []byte
	issuer      string
	expireHours int
	now         func() time.Time
}

// NewSessionVerifier 创建会话校验器
func NewSessionVerifier(cfg config.JWTConfig) *SessionVerifier {
	expireHours := cfg.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}
	return &SessionVerifier{
		secret:      []byte(cfg.SecretKey),
		issuer:      strings.TrimSpace(cfg.Issuer),
		expireHours: expireHours,
		now:         time.Now,
	}
}

// Issue 为用户签发令牌
func (v *SessionVerifier) Issue(user *models.User, perms []string) (string, time.Time, error) {
	if user == nil || user.ID == 0 {
		return "", time.Time{}, fmt.Errorf("user is required")
	}
	now := v.now()
	expiresAt := now.Add(time.Duration(v.expireHours) * time.Hour)
	if perms == nil {
		perms = []string{}
	}
	claims := SessionClaims{
		Name:     user.Name,
		Username: user.Username,
		Email:    user.EmailValue(),
		Attrs:    SessionAttrs{Role: user.Role},
		Perms:    perms,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    v.issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(v.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify 校验 Authorization 头
// 头缺失或格式错误返回 ErrUnauthorized，签名或过期校验失败返回 ErrInvalidToken
func (v *SessionVerifier) Verify(header string) (*Principal, error) {
	token, ok := bearerToken(header)
	if !ok {
		return nil, ErrUnauthorized
	}
	return v.ParseToken(token)
}

// ParseToken 解析令牌字符串
func (v *SessionVerifier) ParseToken(tokenString string) (*Principal, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		options = append(options, jwt.WithIssuer(v.issuer))
	}
	parser := jwt.NewParser(options...)
	claims := &SessionClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return nil, ErrInvalidToken
	}
	perms := claims.Perms
	if perms == nil {
		perms = []string{}
	}
	return &Principal{
		UserID:   uint(userID),
		Name:     claims.Name,
		Username: claims.Username,
		Email:    claims.Email,
		Role:     claims.Attrs.Role,
		Perms:    perms,
	}, nil
}

// RequireAdmin 要求管理员角色
func RequireAdmin(principal *Principal) error {
	if principal == nil {
		return ErrUnauthorized
	}
	if !principal.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(strings.TrimSpace(header))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
