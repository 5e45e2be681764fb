package public

import (
	"time"

	handlershared "github.com/peptide-store/internal/http/handlers/shared"
	"github.com/peptide-store/internal/http/response"
	"github.com/peptide-store/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	handlershared.CaptchaPayloadRequest
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	handlershared.CaptchaPayloadRequest
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Missing required fields", nil)
		return
	}
	if err := h.CaptchaService.Verify(service.CaptchaSceneRegister, req.ToServicePayload()); err != nil {
		respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "Captcha verification failed")
		return
	}

	user, err := h.AuthService.Register(service.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondWithMappedError(c, err, registerErrorRules, response.CodeInternal, "Register failed")
		return
	}
	response.Created(c, "Register successful", gin.H{"id": user.ID})
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeUnauthorized, "Invalid credentials", nil)
		return
	}
	if err := h.CaptchaService.Verify(service.CaptchaSceneLogin, req.ToServicePayload()); err != nil {
		respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "Captcha verification failed")
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "Login failed")
		return
	}
	handlershared.RequestLog(c).Infow("user_login", "user_id", user.ID, "role", user.Role)
	response.Success(c, "Login successful", LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// GetImageCaptcha 获取图片验证码挑战
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "Captcha generation failed")
		return
	}
	response.Success(c, "Captcha generated", challenge)
}
