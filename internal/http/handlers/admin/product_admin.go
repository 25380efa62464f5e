package admin

import (
	"errors"
	"strconv"

	"github.com/vastrika/vastrika-api/internal/http/response"
	"github.com/vastrika/vastrika-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SaveProductRequest 创建/更新商品请求
type SaveProductRequest struct {
	CategoryID     uint     `json:"category_id" binding:"required"`
	Slug           string   `json:"slug"`
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Fabric         string   `json:"fabric"`
	Occasion       string   `json:"occasion"`
	PriceAmount    float64  `json:"price_amount" binding:"required"`
	OriginalAmount float64  `json:"original_amount"`
	Stock          *int     `json:"stock"`
	Images         []string `json:"images"`
	Tags           []string `json:"tags"`
	Status         string   `json:"status"`
	IsFeatured     *bool    `json:"is_featured"`
	IsNew          *bool    `json:"is_new"`
	IsSale         *bool    `json:"is_sale"`
	SortOrder      int      `json:"sort_order"`
}

func (r SaveProductRequest) toServiceInput() service.SaveProductInput {
	return service.SaveProductInput{
		CategoryID:     r.CategoryID,
		Slug:           r.Slug,
		Name:           r.Name,
		Description:    r.Description,
		Fabric:         r.Fabric,
		Occasion:       r.Occasion,
		PriceAmount:    decimal.NewFromFloat(r.PriceAmount),
		OriginalAmount: decimal.NewFromFloat(r.OriginalAmount),
		Stock:          r.Stock,
		Images:         r.Images,
		Tags:           r.Tags,
		Status:         r.Status,
		IsFeatured:     r.IsFeatured,
		IsNew:          r.IsNew,
		IsSale:         r.IsSale,
		SortOrder:      r.SortOrder,
	}
}

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	categoryID := c.Query("category_id")
	search := c.Query("search")
	status := c.Query("status")

	products, total, err := h.ProductService.ListAdmin(categoryID, search, status, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load products", err)
		return
	}

	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.ProductService.GetAdminByID(id)
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

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.ProductService.Create(req.toServiceInput())
	if err != nil {
		respondProductSaveError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.ProductService.Update(id, req.toServiceInput())
	if err != nil {
		respondProductSaveError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProductStatusRequest 商品状态更新请求
type UpdateProductStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateProductStatus 更新商品状态
func (h *Handler) UpdateProductStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateProductStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.ProductService.UpdateStatus(id, req.Status)
	if err != nil {
		respondProductSaveError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "product not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to delete product", err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondProductSaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "name and category are required", nil)
	case errors.Is(err, service.ErrProductPriceInvalid):
		respondError(c, response.CodeBadRequest, "price must be greater than zero", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "category not found", nil)
	case errors.Is(err, service.ErrProductSlugTaken):
		respondError(c, response.CodeConflict, "product slug already exists", nil)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	default:
		respondError(c, response.CodeInternal, "failed to save product", err)
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	rawID := c.Param("id")
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}
