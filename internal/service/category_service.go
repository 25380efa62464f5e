package service

import (
	"strings"

	"github.com/vastrika/vastrika-api/internal/models"
	"github.com/vastrika/vastrika-api/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// SaveCategoryInput 创建/更新分类输入
type SaveCategoryInput struct {
	Slug        string
	Name        string
	Description string
	Image       string
	IsActive    *bool
	SortOrder   int
}

// ListPublic 获取公开分类列表
func (s *CategoryService) ListPublic() ([]models.Category, error) {
	return s.repo.List(true)
}

// ListAdmin 获取后台分类列表
func (s *CategoryService) ListAdmin() ([]models.Category, error) {
	return s.repo.List(false)
}

// GetByID 获取分类详情
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(input SaveCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	count, err := s.repo.CountBySlug(slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategorySlugTaken
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	category := models.Category{
		Slug:        slug,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Image:       strings.TrimSpace(input.Image),
		IsActive:    isActive,
		SortOrder:   input.SortOrder,
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input SaveCategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = category.Slug
	}
	if slug != category.Slug {
		count, err := s.repo.CountBySlug(slug, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrCategorySlugTaken
		}
	}

	category.Slug = slug
	category.Name = name
	category.Description = strings.TrimSpace(input.Description)
	category.Image = strings.TrimSpace(input.Image)
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	category.SortOrder = input.SortOrder

	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类；仍有商品的分类拒绝删除
func (s *CategoryService) Delete(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	count, err := s.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryHasProducts
	}
	return s.repo.Delete(id)
}
