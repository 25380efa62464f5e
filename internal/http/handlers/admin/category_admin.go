package admin

import (
	"errors"

	"github.com/vastrika/vastrika-api/internal/http/response"
	"github.com/vastrika/vastrika-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SaveCategoryRequest 创建/更新分类请求
type SaveCategoryRequest struct {
	Slug        string `json:"slug"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

func (r SaveCategoryRequest) toServiceInput() service.SaveCategoryInput {
	return service.SaveCategoryInput{
		Slug:        r.Slug,
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		IsActive:    r.IsActive,
		SortOrder:   r.SortOrder,
	}
}

// GetAdminCategories 获取分类列表 (Admin)
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListAdmin()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load categories", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req SaveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	category, err := h.CategoryService.Create(req.toServiceInput())
	if err != nil {
		respondCategorySaveError(c, err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req SaveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	category, err := h.CategoryService.Update(id, req.toServiceInput())
	if err != nil {
		respondCategorySaveError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类；仍挂有商品的分类拒绝删除
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, response.CodeNotFound, "category not found", nil)
		case errors.Is(err, service.ErrCategoryHasProducts):
			respondError(c, response.CodeConflict, "category still has products", nil)
		default:
			respondError(c, response.CodeInternal, "failed to delete category", err)
		}
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondCategorySaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "name is required", nil)
	case errors.Is(err, service.ErrCategorySlugTaken):
		respondError(c, response.CodeConflict, "category slug already exists", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeNotFound, "category not found", nil)
	default:
		respondError(c, response.CodeInternal, "failed to save category", err)
	}
}
