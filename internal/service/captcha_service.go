package service

import (
	"strings"
	"sync"
	"time"

	"github.com/peptide-store/internal/config"

	"github.com/mojocn/base64Captcha"
)

// 验证码场景
const (
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)

const captchaSource = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// CaptchaVerifyPayload 验证码校验请求载荷
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captchaId"`
	CaptchaCode string `json:"captchaCode"`
}

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captchaId"`
	ImageBase64 string `json:"imageBase64"`
}

// CaptchaService 图片验证码服务
// 按场景开关决定是否需要验证码，存储使用进程内内存
type CaptchaService struct {
	cfg config.CaptchaConfig

	once  sync.Once
	store base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: normalizeCaptchaConfig(cfg)}
}

// Enabled 场景是否需要验证码
func (s *CaptchaService) Enabled(scene string) bool {
	if s == nil || !s.cfg.Enabled {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(scene)) {
	case CaptchaSceneLogin:
		return s.cfg.Login
	case CaptchaSceneRegister:
		return s.cfg.Register
	default:
		return false
	}
}

// GenerateImageChallenge 生成图片验证码
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	if s == nil || !s.cfg.Enabled {
		return nil, ErrCaptchaConfigInvalid
	}
	driver := base64Captcha.NewDriverString(
		s.cfg.Height,
		s.cfg.Width,
		s.cfg.NoiseCount,
		s.cfg.ShowLine,
		s.cfg.Length,
		captchaSource,
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.imageStore())
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify 按场景校验验证码，场景未启用时直接通过
func (s *CaptchaService) Verify(scene string, payload CaptchaVerifyPayload) error {
	if !s.Enabled(scene) {
		return nil
	}
	captchaID := strings.TrimSpace(payload.CaptchaID)
	captchaCode := strings.TrimSpace(payload.CaptchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaRequired
	}
	if !s.imageStore().Verify(captchaID, captchaCode, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func (s *CaptchaService) imageStore() base64Captcha.Store {
	s.once.Do(func() {
		s.store = base64Captcha.NewMemoryStore(s.cfg.MaxStore, time.Duration(s.cfg.ExpireSeconds)*time.Second)
	})
	return s.store
}

func normalizeCaptchaConfig(cfg config.CaptchaConfig) config.CaptchaConfig {
	if cfg.Length < 4 || cfg.Length > 8 {
		cfg.Length = 5
	}
	if cfg.Width <= 0 {
		cfg.Width = 240
	}
	if cfg.Height <= 0 {
		cfg.Height = 80
	}
	if cfg.NoiseCount < 0 {
		cfg.NoiseCount = 0
	}
	if cfg.ExpireSeconds <= 0 {
		cfg.ExpireSeconds = 300
	}
	if cfg.MaxStore <= 0 {
		cfg.MaxStore = 10240
	}
	return cfg
}
