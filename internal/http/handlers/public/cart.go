package public

import (
	"strconv"

	"github.com/vastrika/vastrika-api/internal/http/response"
	"github.com/vastrika/vastrika-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 购物车添加请求
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CartQuantityRequest 购物车数量覆盖请求
type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	summary, err := h.CartService.ListByUser(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, summary)
}

// AddCartItem 添加购物车项；重复添加累加数量
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.CartService.AddItem(service.AddCartItemInput{
		UserID:    uid,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"added": true})
}

// UpdateCartItem 覆盖购物车项数量，数量归零即移除
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
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
	if err := h.CartService.UpdateQuantity(uid, productID, req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseProductIDParam(c)
	if !ok {
		return
	}
	if err := h.CartService.RemoveItem(uid, productID); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(uid); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}

// MergeGuestState 登录后把游客购物车与收藏合并进账号，随后清除游客状态
func (h *Handler) MergeGuestState(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	token, ok := getGuestToken(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	guestCart, err := h.GuestStateService.GetCart(ctx, token)
	if err != nil {
		respondGuestStateError(c, err)
		return
	}
	guestFavorites, err := h.GuestStateService.GetFavorites(ctx, token)
	if err != nil {
		respondGuestStateError(c, err)
		return
	}

	if err := h.CartService.MergeGuestItems(uid, guestCart); err != nil {
		respondCartError(c, err)
		return
	}
	if err := h.FavoriteService.MergeGuestItems(uid, guestFavorites); err != nil {
		respondFavoriteError(c, err)
		return
	}
	if err := h.GuestStateService.Clear(ctx, token); err != nil {
		respondGuestStateError(c, err)
		return
	}

	response.Success(c, gin.H{
		"merged_cart_items": len(guestCart),
		"merged_favorites":  len(guestFavorites),
	})
}

func parseProductIDParam(c *gin.Context) (uint, bool) {
	rawID := c.Param("product_id")
	productID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return 0, false
	}
	return uint(productID), true
}
