package public

import (
	"errors"

	"github.com/peptide-store/internal/http/response"
	"github.com/peptide-store/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target  error
	code    int
	message string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMessage string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.message, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMessage, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var captchaErrorRules = []mappedHandlerError{
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, message: "Captcha is required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, message: "Captcha is invalid"},
	{target: service.ErrCaptchaConfigInvalid, code: response.CodeBadRequest, message: "Captcha is unavailable"},
}

var registerErrorRules = []mappedHandlerError{
	{target: service.ErrMissingFields, code: response.CodeBadRequest, message: "Missing required fields"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, message: "Invalid email address"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, message: "Password does not satisfy policy"},
	{target: service.ErrUserExists, code: response.CodeConflict, message: "User already exists"},
}

var loginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, message: "Invalid credentials"},
}

var catalogErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, message: "Product not found"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductRequired, code: response.CodeBadRequest, message: "productId is required"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, message: "productId and quantity (>= 1) required"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, message: "Product not found"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, message: "Product not available"},
	{target: service.ErrCartNotFound, code: response.CodeNotFound, message: "Cart not found"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, message: "Cart item not found"},
}

var promotionValidateErrorRules = []mappedHandlerError{
	{target: service.ErrPromotionCodeRequired, code: response.CodeBadRequest, message: "Code is required"},
	{target: service.ErrPromotionNotFound, code: response.CodeNotFound, message: "Promotion not found"},
	{target: service.ErrPromotionAlreadyUsed, code: response.CodeConflict, message: "Promotion already used"},
	{target: service.ErrPromotionUsageLimitReached, code: response.CodeConflict, message: "Promotion usage limit reached"},
}

var promotionManageErrorRules = []mappedHandlerError{
	{target: service.ErrPromotionFieldsRequired, code: response.CodeBadRequest, message: "Code and type are required"},
	{target: service.ErrPromotionTypeInvalid, code: response.CodeBadRequest, message: "Invalid promotion type"},
	{target: service.ErrPromotionValueInvalid, code: response.CodeBadRequest, message: "Invalid promotion value"},
	{target: service.ErrPromotionWindowInvalid, code: response.CodeBadRequest, message: "Promotion expires before it starts"},
	{target: service.ErrPromotionCodeExists, code: response.CodeConflict, message: "Promotion code already exists"},
	{target: service.ErrPromotionNotFound, code: response.CodeNotFound, message: "Promotion not found"},
}

var checkoutFieldErrorRules = []mappedHandlerError{
	{target: service.ErrUnauthorized, code: response.CodeUnauthorized, message: "Unauthorized"},
	{target: service.ErrCheckoutFields, code: response.CodeBadRequest, message: "Missing required checkout fields"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, message: "Invalid email address"},
}

var checkoutDependencyErrorRules = []mappedHandlerError{
	{target: service.ErrCartNotFound, code: response.CodeNotFound, message: "Cart not found"},
	{target: service.ErrEmptyCart, code: response.CodeBadRequest, message: "Cart is empty"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, message: "Product not available"},
	{target: service.ErrShipmentMethodNotFound, code: response.CodeNotFound, message: "Shipment method not found"},
	{target: service.ErrPaymentMethodNotFound, code: response.CodeNotFound, message: "Payment method not found"},
}

var checkoutErrorRules = concatMappedHandlerErrors(checkoutFieldErrorRules, checkoutDependencyErrorRules, promotionValidateErrorRules)

var quoteErrorRules = concatMappedHandlerErrors(checkoutDependencyErrorRules, promotionValidateErrorRules)
