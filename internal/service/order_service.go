package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/vastrika/vastrika-api/internal/constants"
	"github.com/vastrika/vastrika-api/internal/logger"
	"github.com/vastrika/vastrika-api/internal/models"
	"github.com/vastrika/vastrika-api/internal/queue"
	"github.com/vastrika/vastrika-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutInput 下单输入
type CheckoutInput struct {
	UserID        uint
	ReceiverName  string
	ReceiverPhone string
	Address       string
	Remark        string
	ClientIP      string
}

// OrderService 订单业务服务
type OrderService struct {
	orderRepo      repository.OrderRepository
	cartRepo       repository.CartRepository
	productRepo    repository.ProductRepository
	queueClient    *queue.Client
	settingService *SettingService
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository, queueClient *queue.Client, settingService *SettingService) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		cartRepo:       cartRepo,
		productRepo:    productRepo,
		queueClient:    queueClient,
		settingService: settingService,
	}
}

// Checkout 从购物车下单
// 库存扣减、订单落库、购物车清空在同一事务内完成
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}
	receiverName := strings.TrimSpace(input.ReceiverName)
	receiverPhone := strings.TrimSpace(input.ReceiverPhone)
	address := strings.TrimSpace(input.Address)
	if receiverName == "" || receiverPhone == "" || address == "" {
		return nil, ErrInvalidInput
	}

	cartItems, err := s.cartRepo.ListByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	deliveryCfg, err := s.settingService.GetDeliveryConfig()
	if err != nil {
		return nil, err
	}

	orderNo, err := generateOrderNo()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:       orderNo,
		UserID:        input.UserID,
		Status:        constants.OrderStatusPending,
		ReceiverName:  receiverName,
		ReceiverPhone: receiverPhone,
		Address:       address,
		Remark:        strings.TrimSpace(input.Remark),
		ClientIP:      strings.TrimSpace(input.ClientIP),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		subtotal := decimal.Zero
		items := make([]models.OrderItem, 0, len(cartItems))

		for _, cartItem := range cartItems {
			product, err := productRepo.GetByID(cartItem.ProductID)
			if err != nil {
				return err
			}
			if product == nil || product.Status != constants.ProductStatusActive {
				return ErrProductNotAvailable
			}

			affected, err := productRepo.DeductStock(product.ID, cartItem.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrInsufficientStock
			}

			lineTotal := product.PriceAmount.Decimal.Mul(decimal.NewFromInt(int64(cartItem.Quantity)))
			subtotal = subtotal.Add(lineTotal)
			items = append(items, models.OrderItem{
				ProductID:    product.ID,
				ProductName:  product.Name,
				ProductImage: firstImage(product.Images),
				UnitAmount:   product.PriceAmount,
				Quantity:     cartItem.Quantity,
				TotalAmount:  models.NewMoneyFromDecimal(lineTotal),
			})
		}

		deliveryFee := deliveryCfg.DeliveryFee
		if subtotal.GreaterThanOrEqual(deliveryCfg.FreeDeliveryMin) {
			deliveryFee = decimal.Zero
		}

		order.Items = items
		order.SubtotalAmount = models.NewMoneyFromDecimal(subtotal)
		order.DeliveryAmount = models.NewMoneyFromDecimal(deliveryFee)
		order.TotalAmount = models.NewMoneyFromDecimal(subtotal.Add(deliveryFee))

		if err := s.orderRepo.WithTx(tx).Create(order); err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).ClearByUser(input.UserID)
	})
	if err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: order.ID,
		Status:  order.Status,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", order.ID, "error", err)
	}

	return order, nil
}

// ListByUser 获取用户订单列表
func (s *OrderService) ListByUser(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.orderRepo.List(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
}

// GetForUser 获取用户订单详情（校验归属）
func (s *OrderService) GetForUser(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// AdminList 获取后台订单列表
func (s *OrderService) AdminList(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.Status != "" && !isKnownOrderStatus(filter.Status) {
		return nil, 0, ErrOrderStatusInvalid
	}
	return s.orderRepo.List(filter)
}

// AdminGetByID 获取后台订单详情
func (s *OrderService) AdminGetByID(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// AdminUpdateStatus 更新订单状态；仅允许合法流转，取消时回补库存
func (s *OrderService) AdminUpdateStatus(orderID uint, status string) (*models.Order, error) {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if !isKnownOrderStatus(normalized) {
		return nil, ErrOrderStatusInvalid
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !isOrderTransitionAllowed(order.Status, normalized) {
		return nil, ErrOrderTransitionInvalid
	}

	now := time.Now()
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		if normalized == constants.OrderStatusCanceled {
			productRepo := s.productRepo.WithTx(tx)
			for _, item := range order.Items {
				if err := productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}

		order.Status = normalized
		order.UpdatedAt = now
		switch normalized {
		case constants.OrderStatusConfirmed:
			order.ConfirmedAt = &now
		case constants.OrderStatusShipped:
			order.ShippedAt = &now
		case constants.OrderStatusDelivered:
			order.DeliveredAt = &now
		case constants.OrderStatusCanceled:
			order.CanceledAt = &now
		}
		return s.orderRepo.WithTx(tx).Update(order)
	})
	if err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: order.ID,
		Status:  order.Status,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", order.ID, "error", err)
	}

	return order, nil
}

// CountByStatus 按状态统计订单数（后台看板）
func (s *OrderService) CountByStatus(status string) (int64, error) {
	if status != "" && !isKnownOrderStatus(status) {
		return 0, ErrOrderStatusInvalid
	}
	return s.orderRepo.CountByStatus(status)
}

func isKnownOrderStatus(status string) bool {
	switch status {
	case constants.OrderStatusPending, constants.OrderStatusConfirmed, constants.OrderStatusShipped,
		constants.OrderStatusDelivered, constants.OrderStatusCanceled:
		return true
	default:
		return false
	}
}

func isOrderTransitionAllowed(from, to string) bool {
	switch from {
	case constants.OrderStatusPending:
		return to == constants.OrderStatusConfirmed || to == constants.OrderStatusCanceled
	case constants.OrderStatusConfirmed:
		return to == constants.OrderStatusShipped || to == constants.OrderStatusCanceled
	case constants.OrderStatusShipped:
		return to == constants.OrderStatusDelivered
	default:
		return false
	}
}

func generateOrderNo() (string, error) {
	suffix, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("VS%s%06d", time.Now().Format("20060102150405"), suffix.Int64()), nil
}
