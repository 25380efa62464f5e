package service

import "errors"

// 服务层业务错误，handler 通过 errors.Is 映射为响应码
var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrNotFound               = errors.New("record not found")
	ErrInvalidPassword        = errors.New("invalid password")
	ErrEmailTaken             = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountDisabled        = errors.New("account disabled")
	ErrWeakPassword           = errors.New("weak password")
	ErrUserNotFound           = errors.New("user not found")
	ErrSecurityQuestionNotSet = errors.New("security question not set")
	ErrSecurityAnswerMismatch = errors.New("security answer mismatch")
	ErrLoginRateLimited       = errors.New("too many login attempts")

	ErrProductNotFound     = errors.New("product not found")
	ErrProductPriceInvalid = errors.New("product price invalid")
	ErrProductNotAvailable = errors.New("product not available")
	ErrProductSlugTaken    = errors.New("product slug already exists")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategorySlugTaken   = errors.New("category slug already exists")
	ErrCategoryHasProducts = errors.New("category still has products")

	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrFavoriteNotFound  = errors.New("favorite not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCartEmpty         = errors.New("cart is empty")

	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderStatusInvalid     = errors.New("order status invalid")
	ErrOrderTransitionInvalid = errors.New("order status transition invalid")

	ErrSettingKeyUnknown = errors.New("setting key unknown")

	ErrUploadInvalidType = errors.New("upload type not allowed")
	ErrUploadTooLarge    = errors.New("upload too large")

	ErrGuestTokenInvalid = errors.New("guest token invalid")

	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrInvalidEmail              = errors.New("invalid email address")
)
