package admin

import (
	"errors"

	"github.com/vastrika/vastrika-api/internal/http/response"
	"github.com/vastrika/vastrika-api/internal/service"

	"github.com/gin-gonic/gin"
)

// GetSetting 获取设置项 (Admin)
func (h *Handler) GetSetting(c *gin.Context) {
	key := c.Param("key")
	value, err := h.SettingService.GetByKey(key)
	if err != nil {
		if errors.Is(err, service.ErrSettingKeyUnknown) {
			respondError(c, response.CodeBadRequest, "unknown setting key", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load setting", err)
		return
	}
	response.Success(c, gin.H{"key": key, "value": value})
}

// UpdateSetting 写入设置项，按 key 整体覆盖
func (h *Handler) UpdateSetting(c *gin.Context) {
	key := c.Param("key")
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	value, err := h.SettingService.Update(key, body)
	if err != nil {
		if errors.Is(err, service.ErrSettingKeyUnknown) {
			respondError(c, response.CodeBadRequest, "unknown setting key", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to save setting", err)
		return
	}
	response.Success(c, gin.H{"key": key, "value": value})
}
