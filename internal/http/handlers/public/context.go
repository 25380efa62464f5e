package public

import (
	"strings"

	handlershared "github.com/vastrika/vastrika-api/internal/http/handlers/shared"
	"github.com/vastrika/vastrika-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

const guestTokenHeader = "X-Guest-Token"

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "user_id")
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

// getGuestToken 读取游客 token 请求头；缺失时返回 false 并已写出错误响应
func getGuestToken(c *gin.Context) (string, bool) {
	token := strings.TrimSpace(c.GetHeader(guestTokenHeader))
	if token == "" {
		respondError(c, response.CodeBadRequest, "guest token required", nil)
		return "", false
	}
	return token, true
}
