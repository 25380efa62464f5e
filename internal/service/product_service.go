package service

import (
	"regexp"
	"strings"

	"github.com/vastrika/vastrika-api/internal/constants"
	"github.com/vastrika/vastrika-api/internal/models"
	"github.com/vastrika/vastrika-api/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品业务服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo}
}

// ProductListQuery 公开商品列表查询
type ProductListQuery struct {
	CategoryID string
	Search     string
	Featured   bool
	New        bool
	Sale       bool
	OrderBy    string
	Page       int
	PageSize   int
}

// SaveProductInput 创建/更新商品输入
type SaveProductInput struct {
	CategoryID     uint
	Slug           string
	Name           string
	Description    string
	Fabric         string
	Occasion       string
	PriceAmount    decimal.Decimal
	OriginalAmount decimal.Decimal
	Stock          *int
	Images         []string
	Tags           []string
	Status         string
	IsFeatured     *bool
	IsNew          *bool
	IsSale         *bool
	SortOrder      int
}

// ListPublic 获取公开商品列表
func (s *ProductService) ListPublic(query ProductListQuery) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:         query.Page,
		PageSize:     query.PageSize,
		CategoryID:   query.CategoryID,
		Search:       query.Search,
		OnlyActive:   true,
		OnlyFeatured: query.Featured,
		OnlyNew:      query.New,
		OnlySale:     query.Sale,
		WithCategory: true,
		OrderBy:      query.OrderBy,
	}
	return s.repo.List(filter)
}

// GetPublicBySlug 获取公开商品详情
func (s *ProductService) GetPublicBySlug(slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListAdmin 获取后台商品列表
func (s *ProductService) ListAdmin(categoryID, search, status string, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       search,
		Status:       normalizeProductStatus(status),
		WithCategory: true,
	}
	return s.repo.List(filter)
}

// GetAdminByID 获取后台商品详情
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input SaveProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.CategoryID == 0 {
		return nil, ErrInvalidInput
	}
	priceAmount := input.PriceAmount.Round(2)
	if priceAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrProductPriceInvalid
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
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
		return nil, ErrProductSlugTaken
	}

	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}
	if stock < 0 {
		return nil, ErrInvalidInput
	}

	status := normalizeProductStatus(input.Status)
	if status == "" {
		status = constants.ProductStatusActive
	}
	if stock == 0 && status == constants.ProductStatusActive {
		status = constants.ProductStatusOutOfStock
	}

	original := input.OriginalAmount.Round(2)
	product := models.Product{
		CategoryID:      input.CategoryID,
		Slug:            slug,
		Name:            name,
		Description:     strings.TrimSpace(input.Description),
		Fabric:          strings.TrimSpace(input.Fabric),
		Occasion:        strings.TrimSpace(input.Occasion),
		PriceAmount:     models.NewMoneyFromDecimal(priceAmount),
		OriginalAmount:  models.NewMoneyFromDecimal(original),
		DiscountPercent: discountPercent(original, priceAmount),
		Stock:           stock,
		Images:          models.StringArray(input.Images),
		Tags:            models.StringArray(input.Tags),
		Status:          status,
		IsFeatured:      boolValue(input.IsFeatured),
		IsNew:           boolValue(input.IsNew),
		IsSale:          boolValue(input.IsSale),
		SortOrder:       input.SortOrder,
	}

	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input SaveProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	name := strings.TrimSpace(input.Name)
	if name == "" || input.CategoryID == 0 {
		return nil, ErrInvalidInput
	}
	priceAmount := input.PriceAmount.Round(2)
	if priceAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrProductPriceInvalid
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = product.Slug
	}
	if slug != product.Slug {
		count, err := s.repo.CountBySlug(slug, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrProductSlugTaken
		}
	}

	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, ErrInvalidInput
		}
		product.Stock = *input.Stock
	}

	status := normalizeProductStatus(input.Status)
	if status != "" {
		product.Status = status
	}
	if product.Stock == 0 && product.Status == constants.ProductStatusActive {
		product.Status = constants.ProductStatusOutOfStock
	}

	original := input.OriginalAmount.Round(2)
	product.CategoryID = input.CategoryID
	product.Slug = slug
	product.Name = name
	product.Description = strings.TrimSpace(input.Description)
	product.Fabric = strings.TrimSpace(input.Fabric)
	product.Occasion = strings.TrimSpace(input.Occasion)
	product.PriceAmount = models.NewMoneyFromDecimal(priceAmount)
	product.OriginalAmount = models.NewMoneyFromDecimal(original)
	product.DiscountPercent = discountPercent(original, priceAmount)
	product.Images = models.StringArray(input.Images)
	product.Tags = models.StringArray(input.Tags)
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
	if input.IsNew != nil {
		product.IsNew = *input.IsNew
	}
	if input.IsSale != nil {
		product.IsSale = *input.IsSale
	}
	product.SortOrder = input.SortOrder

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateStatus 更新商品状态
func (s *ProductService) UpdateStatus(id uint, status string) (*models.Product, error) {
	normalized := normalizeProductStatus(status)
	if normalized == "" {
		return nil, ErrInvalidInput
	}
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	product.Status = normalized
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.repo.Delete(id)
}

func normalizeProductStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case constants.ProductStatusActive:
		return constants.ProductStatusActive
	case constants.ProductStatusInactive:
		return constants.ProductStatusInactive
	case constants.ProductStatusOutOfStock:
		return constants.ProductStatusOutOfStock
	default:
		return ""
	}
}

func discountPercent(original, price decimal.Decimal) int {
	if original.LessThanOrEqual(decimal.Zero) || original.LessThanOrEqual(price) {
		return 0
	}
	percent := original.Sub(price).Div(original).Mul(decimal.NewFromInt(100))
	return int(percent.Round(0).IntPart())
}

func boolValue(v *bool) bool {
	return v != nil && *v
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify 将名称转换为 URL slug
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
