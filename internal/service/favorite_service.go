package service

import (
	"time"

	"github.com/vastrika/vastrika-api/internal/constants"
	"github.com/vastrika/vastrika-api/internal/models"
	"github.com/vastrika/vastrika-api/internal/repository"
)

// FavoriteDetail 收藏详情（用于响应）
type FavoriteDetail struct {
	ProductID    uint            `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
	CategoryName string          `json:"category_name"`
	UnitPrice    models.Money    `json:"unit_price"`
	AddedAt      time.Time       `json:"added_at"`
	Product      *models.Product `json:"product,omitempty"`
}

// FavoriteService 收藏服务
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	productRepo  repository.ProductRepository
}

// NewFavoriteService 创建收藏服务
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, productRepo repository.ProductRepository) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
	}
}

// ListByUser 获取用户收藏
func (s *FavoriteService) ListByUser(userID uint) ([]FavoriteDetail, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	favorites, err := s.favoriteRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	details := make([]FavoriteDetail, 0, len(favorites))
	for _, favorite := range favorites {
		product := &favorite.Product
		if product.ID == 0 {
			product = nil
		}
		details = append(details, FavoriteDetail{
			ProductID:    favorite.ProductID,
			ProductName:  favorite.ProductName,
			ProductImage: favorite.ProductImage,
			CategoryName: favorite.CategoryName,
			UnitPrice:    favorite.UnitAmount,
			AddedAt:      favorite.CreatedAt,
			Product:      product,
		})
	}
	return details, nil
}

// Add 添加收藏，重复添加幂等
func (s *FavoriteService) Add(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrInvalidInput
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || product.Status == constants.ProductStatusInactive {
		return ErrProductNotAvailable
	}

	favorite := &models.Favorite{
		UserID:       userID,
		ProductID:    productID,
		ProductName:  product.Name,
		ProductImage: firstImage(product.Images),
		CategoryName: product.Category.Name,
		UnitAmount:   product.PriceAmount,
		CreatedAt:    time.Now(),
	}
	return s.favoriteRepo.Add(favorite)
}

// Remove 取消收藏
func (s *FavoriteService) Remove(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrInvalidInput
	}
	affected, err := s.favoriteRepo.DeleteByUserAndProduct(userID, productID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// Toggle 切换收藏状态，返回切换后是否已收藏
func (s *FavoriteService) Toggle(userID, productID uint) (bool, error) {
	if userID == 0 || productID == 0 {
		return false, ErrInvalidInput
	}
	exists, err := s.favoriteRepo.Exists(userID, productID)
	if err != nil {
		return false, err
	}
	if exists {
		if _, err := s.favoriteRepo.DeleteByUserAndProduct(userID, productID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.Add(userID, productID); err != nil {
		return false, err
	}
	return true, nil
}

// IsFavorite 判断是否已收藏
func (s *FavoriteService) IsFavorite(userID, productID uint) (bool, error) {
	if userID == 0 || productID == 0 {
		return false, nil
	}
	return s.favoriteRepo.Exists(userID, productID)
}

// MergeGuestItems 登录后合并游客收藏；无效商品静默跳过
func (s *FavoriteService) MergeGuestItems(userID uint, productIDs []uint) error {
	if userID == 0 {
		return ErrInvalidInput
	}
	for _, productID := range productIDs {
		if productID == 0 {
			continue
		}
		if err := s.Add(userID, productID); err != nil && err != ErrProductNotAvailable {
			return err
		}
	}
	return nil
}
