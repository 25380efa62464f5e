package public

import (
	"errors"

	"github.com/vastrika/vastrika-api/internal/http/response"
	"github.com/vastrika/vastrika-api/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var userAuthErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid input"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, msg: "password does not meet the policy"},
	{target: service.ErrEmailTaken, code: response.CodeConflict, msg: "email already registered"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, msg: "invalid email or password"},
	{target: service.ErrAccountDisabled, code: response.CodeForbidden, msg: "account disabled"},
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest, msg: "current password incorrect"},
	{target: service.ErrSecurityQuestionNotSet, code: response.CodeNotFound, msg: "security question not set"},
	{target: service.ErrSecurityAnswerMismatch, code: response.CodeBadRequest, msg: "security answer incorrect"},
	{target: service.ErrNotFound, code: response.CodeNotFound, msg: "not found"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid input"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "insufficient stock"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "cart item not found"},
}

var favoriteErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid input"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrFavoriteNotFound, code: response.CodeNotFound, msg: "favorite not found"},
}

var guestStateErrorRules = []mappedHandlerError{
	{target: service.ErrGuestTokenInvalid, code: response.CodeBadRequest, msg: "guest token invalid"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid input"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "cart item not found"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "receiver name, phone and address are required"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "insufficient stock"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart operation failed")
}

func respondFavoriteError(c *gin.Context, err error) {
	respondWithMappedError(c, err, favoriteErrorRules, response.CodeInternal, "favorites operation failed")
}

func respondGuestStateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, guestStateErrorRules, response.CodeInternal, "guest state operation failed")
}
