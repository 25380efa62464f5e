package admin

import (
	"errors"
	"fmt"
	"time"

	"github.com/vastrika/vastrika-api/internal/constants"
	"github.com/vastrika/vastrika-api/internal/http/response"
	"github.com/vastrika/vastrika-api/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string                 `json:"token"`
	User      map[string]interface{} `json:"user"`
	ExpiresAt string                 `json:"expires_at"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLoginRateLimited):
			msg := "too many login attempts, try again later"
			var limited *service.RateLimitedError
			if errors.As(err, &limited) {
				msg = fmt.Sprintf("too many login attempts, retry in %ds", limited.RetryAfterSeconds())
			}
			respondError(c, response.CodeTooManyRequests, msg, nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "invalid username or password", nil)
		default:
			respondError(c, response.CodeInternal, "login failed", err)
		}
		return
	}
	response.Success(c, LoginResponse{
		Token: token,
		User: map[string]interface{}{
			"id":       admin.ID,
			"username": admin.Username,
		},
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// AdminLogout 管理员登出，吊销已签发的 Token
func (h *Handler) AdminLogout(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}
	if err := h.AuthService.Logout(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "admin not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "logout failed", err)
		return
	}
	response.Success(c, gin.H{"logged_out": true})
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateAdminPassword 修改管理员密码
func (h *Handler) UpdateAdminPassword(c *gin.Context) {
	id, ok := getAdminID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.AuthService.ChangePassword(id, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "current password incorrect", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "admin not found", nil)
		default:
			respondError(c, response.CodeInternal, "failed to change password", err)
		}
		return
	}

	response.Success(c, nil)
}

// GetDashboardOverview 后台看板订单统计
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	statuses := []string{
		constants.OrderStatusPending,
		constants.OrderStatusConfirmed,
		constants.OrderStatusShipped,
		constants.OrderStatusDelivered,
		constants.OrderStatusCanceled,
	}
	orderCounts := make(map[string]int64, len(statuses))
	for _, status := range statuses {
		count, err := h.OrderService.CountByStatus(status)
		if err != nil {
			respondError(c, response.CodeInternal, "failed to load dashboard", err)
			return
		}
		orderCounts[status] = count
	}
	total, err := h.OrderService.CountByStatus("")
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load dashboard", err)
		return
	}

	response.Success(c, gin.H{
		"orders": gin.H{
			"total":     total,
			"by_status": orderCounts,
		},
	})
}
