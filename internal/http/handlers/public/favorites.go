package public

import (
	"github.com/vastrika/vastrika-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// FavoriteRequest 收藏请求
type FavoriteRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetFavorites 获取收藏列表
func (h *Handler) GetFavorites(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	favorites, err := h.FavoriteService.ListByUser(uid)
	if err != nil {
		respondFavoriteError(c, err)
		return
	}
	response.Success(c, gin.H{"items": favorites})
}

// AddFavorite 添加收藏，重复添加幂等
func (h *Handler) AddFavorite(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.FavoriteService.Add(uid, req.ProductID); err != nil {
		respondFavoriteError(c, err)
		return
	}
	response.Success(c, gin.H{"favorited": true})
}

// ToggleFavorite 切换收藏状态
func (h *Handler) ToggleFavorite(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	favorited, err := h.FavoriteService.Toggle(uid, req.ProductID)
	if err != nil {
		respondFavoriteError(c, err)
		return
	}
	response.Success(c, gin.H{"favorited": favorited})
}

// DeleteFavorite 取消收藏
func (h *Handler) DeleteFavorite(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseProductIDParam(c)
	if !ok {
		return
	}
	if err := h.FavoriteService.Remove(uid, productID); err != nil {
		respondFavoriteError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
