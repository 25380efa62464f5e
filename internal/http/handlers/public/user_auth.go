package public

import (
	"time"

	"github.com/vastrika/vastrika-api/internal/http/response"
	"github.com/vastrika/vastrika-api/internal/models"
	"github.com/vastrika/vastrika-api/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email            string `json:"email" binding:"required"`
	Password         string `json:"password" binding:"required"`
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	SecurityQuestion string `json:"security_question" binding:"required"`
	SecurityAnswer   string `json:"security_answer" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserProfileResponse 用户资料响应
type UserProfileResponse struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func buildUserProfile(user *models.User) UserProfileResponse {
	return UserProfileResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Phone:       user.Phone,
		Address:     user.Address,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(service.RegisterInput{
		Email:            req.Email,
		Password:         req.Password,
		Name:             req.Name,
		Phone:            req.Phone,
		Address:          req.Address,
		SecurityQuestion: req.SecurityQuestion,
		SecurityAnswer:   req.SecurityAnswer,
	})
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "register failed")
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt.Unix(),
		"user":       buildUserProfile(user),
	})
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "login failed")
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt.Unix(),
		"user":       buildUserProfile(user),
	})
}

// UserLogout 用户登出，吊销已签发的 Token
func (h *Handler) UserLogout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.UserAuthService.Logout(uid); err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "logout failed")
		return
	}
	response.Success(c, gin.H{"logged_out": true})
}

// GetCurrentUser 获取当前登录用户资料
func (h *Handler) GetCurrentUser(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(uid)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "failed to load profile")
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "user not found", nil)
		return
	}
	response.Success(c, buildUserProfile(user))
}

// UpdateProfileRequest 更新资料请求，字段为空指针表示不修改
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// UpdateUserProfile 更新当前用户资料
func (h *Handler) UpdateUserProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	user, err := h.UserAuthService.UpdateProfile(uid, req.Name, req.Phone, req.Address)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "failed to update profile")
		return
	}
	response.Success(c, buildUserProfile(user))
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangeUserPassword 登录态修改密码
func (h *Handler) ChangeUserPassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.UserAuthService.ChangePassword(uid, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "failed to change password")
		return
	}
	response.Success(c, gin.H{"changed": true})
}

// RecoveryQuestionRequest 找回密码问题请求
type RecoveryQuestionRequest struct {
	Email string `json:"email" binding:"required"`
}

// GetRecoveryQuestion 获取找回密码的密保问题
func (h *Handler) GetRecoveryQuestion(c *gin.Context) {
	var req RecoveryQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	question, err := h.UserAuthService.GetRecoveryQuestion(req.Email)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "failed to load security question")
		return
	}
	response.Success(c, gin.H{"question": question})
}

// RequestPasswordReset 请求重置密码通知，不暴露邮箱是否存在
func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var req RecoveryQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.UserAuthService.RequestPasswordReset(req.Email); err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "failed to request password reset")
		return
	}
	response.Success(c, gin.H{"requested": true})
}

// RecoveryAnswerRequest 密保答案校验请求
type RecoveryAnswerRequest struct {
	Email  string `json:"email" binding:"required"`
	Answer string `json:"answer" binding:"required"`
}

// VerifyRecoveryAnswer 校验密保答案
func (h *Handler) VerifyRecoveryAnswer(c *gin.Context) {
	var req RecoveryAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.UserAuthService.VerifyRecoveryAnswer(req.Email, req.Answer); err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "failed to verify answer")
		return
	}
	response.Success(c, gin.H{"verified": true})
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	Answer      string `json:"answer" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetUserPassword 通过密保答案重置密码
func (h *Handler) ResetUserPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.UserAuthService.ResetPasswordWithRecovery(req.Email, req.Answer, req.NewPassword); err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "failed to reset password")
		return
	}
	response.Success(c, gin.H{"reset": true})
}
