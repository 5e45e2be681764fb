package service

import "errors"

// 认证与授权
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrUserExists         = errors.New("user already exists")
	ErrWeakPassword       = errors.New("password does not satisfy policy")
)

// 验证码
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)

// 商品与基础数据
var (
	ErrProductNotFound        = errors.New("product not found")
	ErrProductNotAvailable    = errors.New("product not available")
	ErrShipmentMethodNotFound = errors.New("shipment method not found")
	ErrPaymentMethodNotFound  = errors.New("payment method not found")
)

// 购物车
var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrProductRequired  = errors.New("product id is required")
)

// 促销
var (
	ErrPromotionNotFound          = errors.New("promotion not found")
	ErrPromotionAlreadyUsed       = errors.New("promotion already used")
	ErrPromotionUsageLimitReached = errors.New("promotion usage limit reached")
	ErrPromotionCodeRequired      = errors.New("promotion code is required")
	ErrPromotionFieldsRequired    = errors.New("promotion code and type are required")
	ErrPromotionTypeInvalid       = errors.New("invalid promotion type")
	ErrPromotionValueInvalid      = errors.New("invalid promotion value")
	ErrPromotionWindowInvalid     = errors.New("promotion expires before it starts")
	ErrPromotionCodeExists        = errors.New("promotion code already exists")
)

// 订单
var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrCheckoutFields      = errors.New("checkout fields required")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrOrderStatusRequired = errors.New("order status is required")
)

// 通知
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)
