package public

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/vastrika/vastrika-api/internal/cache"
	"github.com/vastrika/vastrika-api/internal/http/response"
	"github.com/vastrika/vastrika-api/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig 获取门店公开配置
func (h *Handler) GetConfig(c *gin.Context) {
	defaults := map[string]interface{}{
		"store_name":   "Vastrika",
		"currency":     "INR",
		"announcement": "",
		"contact": map[string]interface{}{
			"phone":     "",
			"whatsapp":  "",
			"instagram": "",
		},
	}

	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	data, err := h.SettingService.GetStoreConfig(defaults)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load store config", err)
		return
	}

	deliveryCfg, err := h.SettingService.GetDeliveryConfig()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load store config", err)
		return
	}
	data["delivery"] = map[string]interface{}{
		"free_delivery_min": deliveryCfg.FreeDeliveryMin.StringFixed(2),
		"delivery_fee":      deliveryCfg.DeliveryFee.StringFixed(2),
	}

	_ = cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL)
	response.Success(c, data)
}

// GetCategories 获取公开分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListPublic()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load categories", err)
		return
	}
	response.Success(c, gin.H{"items": categories})
}

// GetProducts 获取公开商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	query := service.ProductListQuery{
		CategoryID: c.Query("category_id"),
		Search:     strings.TrimSpace(c.Query("search")),
		Featured:   c.Query("featured") == "true",
		New:        c.Query("new") == "true",
		Sale:       c.Query("sale") == "true",
		OrderBy:    c.Query("sort"),
		Page:       page,
		PageSize:   pageSize,
	}

	products, total, err := h.ProductService.ListPublic(query)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load products", err)
		return
	}

	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProductBySlug 根据 slug 获取商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.ProductService.GetPublicBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load product", err)
		return
	}

	response.Success(c, product)
}
