package service

import (
	"time"

	"github.com/vastrika/vastrika-api/internal/constants"
	"github.com/vastrika/vastrika-api/internal/models"
	"github.com/vastrika/vastrika-api/internal/repository"

	"github.com/shopspring/decimal"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ProductID    uint            `json:"product_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    models.Money    `json:"unit_price"`
	LineTotal    models.Money    `json:"line_total"`
	ProductName  string          `json:"product_name"`
	ProductImage string          `json:"product_image"`
	Product      *models.Product `json:"product,omitempty"`
}

// CartSummary 购物车汇总
type CartSummary struct {
	Items     []CartItemDetail `json:"items"`
	ItemCount int              `json:"item_count"`
	Subtotal  models.Money     `json:"subtotal"`
}

// AddCartItemInput 购物车添加输入
type AddCartItemInput struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// ListByUser 获取用户购物车并计算汇总
// 已下架商品在读取时剔除，保证响应与商品库一致
func (s *CartService) ListByUser(userID uint) (*CartSummary, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	summary := &CartSummary{Items: make([]CartItemDetail, 0, len(items))}
	subtotal := decimal.Zero
	for _, item := range items {
		product := &item.Product
		if product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			product = p
		}
		if product == nil || product.Status != constants.ProductStatusActive {
			_, _ = s.cartRepo.DeleteByUserAndProduct(userID, item.ProductID)
			continue
		}

		lineTotal := product.PriceAmount.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		summary.Items = append(summary.Items, CartItemDetail{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			UnitPrice:    product.PriceAmount,
			LineTotal:    models.NewMoneyFromDecimal(lineTotal),
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Product:      product,
		})
		summary.ItemCount += item.Quantity
	}
	summary.Subtotal = models.NewMoneyFromDecimal(subtotal)
	return summary, nil
}

// AddItem 添加购物车项；同一商品重复添加在数据库侧累加数量
func (s *CartService) AddItem(input AddCartItemInput) error {
	if input.UserID == 0 || input.ProductID == 0 || input.Quantity <= 0 {
		return ErrInvalidInput
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil || product.Status != constants.ProductStatusActive {
		return ErrProductNotAvailable
	}
	if product.Stock < input.Quantity {
		return ErrInsufficientStock
	}

	now := time.Now()
	item := &models.CartItem{
		UserID:       input.UserID,
		ProductID:    input.ProductID,
		Quantity:     input.Quantity,
		UnitAmount:   product.PriceAmount,
		ProductName:  product.Name,
		ProductImage: firstImage(product.Images),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.cartRepo.UpsertAdd(item)
}

// UpdateQuantity 覆盖购物车项数量；数量归零视为移除
func (s *CartService) UpdateQuantity(userID, productID uint, quantity int) error {
	if userID == 0 || productID == 0 {
		return ErrInvalidInput
	}
	if quantity <= 0 {
		return s.RemoveItem(userID, productID)
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil || product.Status != constants.ProductStatusActive {
		return ErrProductNotAvailable
	}
	if product.Stock < quantity {
		return ErrInsufficientStock
	}

	affected, err := s.cartRepo.UpdateQuantity(userID, productID, quantity)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrInvalidInput
	}
	affected, err := s.cartRepo.DeleteByUserAndProduct(userID, productID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrInvalidInput
	}
	return s.cartRepo.ClearByUser(userID)
}

// MergeGuestItems 登录后合并游客购物车；无效商品静默跳过
func (s *CartService) MergeGuestItems(userID uint, items []GuestCartItem) error {
	if userID == 0 {
		return ErrInvalidInput
	}
	for _, guestItem := range items {
		if guestItem.ProductID == 0 || guestItem.Quantity <= 0 {
			continue
		}
		err := s.AddItem(AddCartItemInput{
			UserID:    userID,
			ProductID: guestItem.ProductID,
			Quantity:  guestItem.Quantity,
		})
		if err != nil && err != ErrProductNotAvailable && err != ErrInsufficientStock {
			return err
		}
	}
	return nil
}

func firstImage(images models.StringArray) string {
	if len(images) == 0 {
		return ""
	}
	return images[0]
}
