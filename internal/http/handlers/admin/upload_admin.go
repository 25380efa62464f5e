package admin

import (
	"errors"

	"github.com/vastrika/vastrika-api/internal/http/response"
	"github.com/vastrika/vastrika-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadFile 上传文件，返回可访问的相对路径
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "file is required", err)
		return
	}

	scene := c.PostForm("scene")
	if scene == "" {
		scene = c.Query("scene")
	}

	url, err := h.UploadService.SaveFile(file, scene)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadTooLarge):
			respondError(c, response.CodeBadRequest, "file exceeds the allowed size", nil)
		case errors.Is(err, service.ErrUploadInvalidType):
			respondError(c, response.CodeBadRequest, "file type not allowed", nil)
		default:
			respondError(c, response.CodeInternal, "failed to save file", err)
		}
		return
	}

	response.Success(c, gin.H{"url": url})
}
