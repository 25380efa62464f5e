package public

import (
	"github.com/vastrika/vastrika-api/internal/constants"
	"github.com/vastrika/vastrika-api/internal/http/response"
	"github.com/vastrika/vastrika-api/internal/service"

	"github.com/gin-gonic/gin"
)

// GuestCartItemRequest 游客购物车添加请求
// 名称、图片、单价均在服务端按商品当前数据快照
type GuestCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CreateGuestToken 发放游客 token
func (h *Handler) CreateGuestToken(c *gin.Context) {
	response.Success(c, gin.H{"guest_token": h.GuestStateService.NewGuestToken()})
}

// GetGuestCart 获取游客购物车
func (h *Handler) GetGuestCart(c *gin.Context) {
	token, ok := getGuestToken(c)
	if !ok {
		return
	}
	items, err := h.GuestStateService.GetCart(c.Request.Context(), token)
	if err != nil {
		respondGuestStateError(c, err)
		return
	}
	response.Success(c, service.SummarizeGuestCart(items))
}

// AddGuestCartItem 添加游客购物车项，按商品当前数据快照名称与单价
func (h *Handler) AddGuestCartItem(c *gin.Context) {
	token, ok := getGuestToken(c)
	if !ok {
		return
	}
	var req GuestCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.ProductRepo.GetByID(req.ProductID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load product", err)
		return
	}
	if product == nil || product.Status == constants.ProductStatusInactive {
		respondError(c, response.CodeBadRequest, "product not available", nil)
		return
	}
	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}

	items, err := h.GuestStateService.AddCartItem(c.Request.Context(), token, service.GuestCartItem{
		ProductID: product.ID,
		Quantity:  req.Quantity,
		UnitPrice: product.PriceAmount,
		Name:      product.Name,
		Image:     image,
	})
	if err != nil {
		respondGuestStateError(c, err)
		return
	}
	response.Success(c, service.SummarizeGuestCart(items))
}

// UpdateGuestCartItem 覆盖游客购物车项数量
func (h *Handler) UpdateGuestCartItem(c *gin.Context) {
	token, ok := getGuestToken(c)
	if !ok {
		return
	}
	productID, ok := parseProductIDParam(c)
	if !ok {
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	items, err := h.GuestStateService.UpdateCartQuantity(c.Request.Context(), token, productID, req.Quantity)
	if err != nil {
		respondGuestStateError(c, err)
		return
	}
	response.Success(c, service.SummarizeGuestCart(items))
}

// DeleteGuestCartItem 删除游客购物车项
func (h *Handler) DeleteGuestCartItem(c *gin.Context) {
	token, ok := getGuestToken(c)
	if !ok {
		return
	}
	productID, ok := parseProductIDParam(c)
	if !ok {
		return
	}
	items, err := h.GuestStateService.RemoveCartItem(c.Request.Context(), token, productID)
	if err != nil {
		respondGuestStateError(c, err)
		return
	}
	response.Success(c, service.SummarizeGuestCart(items))
}

// ClearGuestCart 清空游客购物车
func (h *Handler) ClearGuestCart(c *gin.Context) {
	token, ok := getGuestToken(c)
	if !ok {
		return
	}
	if err := h.GuestStateService.ClearCart(c.Request.Context(), token); err != nil {
		respondGuestStateError(c, err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}

// GetGuestFavorites 获取游客收藏
func (h *Handler) GetGuestFavorites(c *gin.Context) {
	token, ok := getGuestToken(c)
	if !ok {
		return
	}
	ids, err := h.GuestStateService.GetFavorites(c.Request.Context(), token)
	if err != nil {
		respondGuestStateError(c, err)
		return
	}
	response.Success(c, gin.H{"product_ids": ids})
}

// ToggleGuestFavorite 切换游客收藏状态
func (h *Handler) ToggleGuestFavorite(c *gin.Context) {
	token, ok := getGuestToken(c)
	if !ok {
		return
	}
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	favorited, err := h.GuestStateService.ToggleFavorite(c.Request.Context(), token, req.ProductID)
	if err != nil {
		respondGuestStateError(c, err)
		return
	}
	response.Success(c, gin.H{"favorited": favorited})
}
