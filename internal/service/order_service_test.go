package service

import (
	"errors"
	"testing"

	"github.com/vastrika/vastrika-api/internal/constants"
	"github.com/vastrika/vastrika-api/internal/models"
	"github.com/vastrika/vastrika-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *CartService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:ordersvc?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.CartItem{}, &models.Order{}, &models.OrderItem{}, &models.Setting{}); err != nil {
		t.Fatalf("migrate tables failed: %v", err)
	}
	for _, model := range []interface{}{&models.OrderItem{}, &models.Order{}, &models.CartItem{}, &models.Setting{}} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			t.Fatalf("reset table failed: %v", err)
		}
	}
	if err := db.Unscoped().Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
		t.Fatalf("reset product table failed: %v", err)
	}

	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	settingService := NewSettingService(repository.NewSettingRepository(db))
	orderService := NewOrderService(orderRepo, cartRepo, productRepo, nil, settingService)
	cartService := NewCartService(cartRepo, productRepo)
	return orderService, cartService, db
}

func checkoutInput(userID uint) CheckoutInput {
	return CheckoutInput{
		UserID:        userID,
		ReceiverName:  "Meera Iyer",
		ReceiverPhone: "+91 98765 43210",
		Address:       "12 Temple Street, Chennai",
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	orderService, _, _ := setupOrderServiceTest(t)

	if _, err := orderService.Checkout(checkoutInput(1)); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("empty cart want ErrCartEmpty got %v", err)
	}
}

func TestCheckoutDeductsStockAndClearsCart(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	product := createTestProduct(t, db, "order-deduct", 2500, 5, constants.ProductStatusActive)

	if err := cartService.AddItem(AddCartItemInput{UserID: 2, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}

	order, err := orderService.Checkout(checkoutInput(2))
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.OrderNo == "" {
		t.Fatalf("order number should be generated")
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("status want pending got %s", order.Status)
	}
	if len(order.Items) != 1 {
		t.Fatalf("order items want 1 got %d", len(order.Items))
	}
	if !order.SubtotalAmount.Decimal.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("subtotal want 5000 got %s", order.SubtotalAmount.Decimal.String())
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 3 {
		t.Fatalf("stock want 3 got %d", reloaded.Stock)
	}

	summary, err := cartService.ListByUser(2)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("cart should be empty after checkout, got %d items", len(summary.Items))
	}
}

func TestCheckoutAppliesDeliveryFee(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	cheap := createTestProduct(t, db, "order-fee-cheap", 500, 10, constants.ProductStatusActive)
	costly := createTestProduct(t, db, "order-fee-costly", 5000, 10, constants.ProductStatusActive)

	// 小额订单收取配送费
	if err := cartService.AddItem(AddCartItemInput{UserID: 3, ProductID: cheap.ID, Quantity: 1}); err != nil {
		t.Fatalf("add cheap failed: %v", err)
	}
	order, err := orderService.Checkout(checkoutInput(3))
	if err != nil {
		t.Fatalf("checkout cheap failed: %v", err)
	}
	if !order.DeliveryAmount.Decimal.Equal(decimal.NewFromInt(99)) {
		t.Fatalf("delivery fee want 99 got %s", order.DeliveryAmount.Decimal.String())
	}
	if !order.TotalAmount.Decimal.Equal(decimal.NewFromInt(599)) {
		t.Fatalf("total want 599 got %s", order.TotalAmount.Decimal.String())
	}

	// 满额免配送费
	if err := cartService.AddItem(AddCartItemInput{UserID: 4, ProductID: costly.ID, Quantity: 1}); err != nil {
		t.Fatalf("add costly failed: %v", err)
	}
	order, err = orderService.Checkout(checkoutInput(4))
	if err != nil {
		t.Fatalf("checkout costly failed: %v", err)
	}
	if !order.DeliveryAmount.Decimal.Equal(decimal.Zero) {
		t.Fatalf("delivery fee want 0 got %s", order.DeliveryAmount.Decimal.String())
	}
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	product := createTestProduct(t, db, "order-rollback", 1000, 2, constants.ProductStatusActive)

	if err := cartService.AddItem(AddCartItemInput{UserID: 5, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	// 他人先买走库存
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("stock", 1).Error; err != nil {
		t.Fatalf("shrink stock failed: %v", err)
	}

	if _, err := orderService.Checkout(checkoutInput(5)); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("checkout want ErrInsufficientStock got %v", err)
	}

	summary, err := cartService.ListByUser(5)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(summary.Items) != 1 {
		t.Fatalf("cart should survive failed checkout, got %d items", len(summary.Items))
	}
	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 1 {
		t.Fatalf("stock want 1 got %d", reloaded.Stock)
	}
}

func TestAdminUpdateStatusEnforcesTransitions(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	product := createTestProduct(t, db, "order-transition", 1500, 10, constants.ProductStatusActive)

	if err := cartService.AddItem(AddCartItemInput{UserID: 6, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	order, err := orderService.Checkout(checkoutInput(6))
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := orderService.AdminUpdateStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrOrderTransitionInvalid) {
		t.Fatalf("pending->delivered want ErrOrderTransitionInvalid got %v", err)
	}
	if _, err := orderService.AdminUpdateStatus(order.ID, "unknown"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("unknown status want ErrOrderStatusInvalid got %v", err)
	}

	updated, err := orderService.AdminUpdateStatus(order.ID, constants.OrderStatusConfirmed)
	if err != nil {
		t.Fatalf("pending->confirmed failed: %v", err)
	}
	if updated.ConfirmedAt == nil {
		t.Fatalf("confirmed_at should be set")
	}
	if _, err := orderService.AdminUpdateStatus(order.ID, constants.OrderStatusShipped); err != nil {
		t.Fatalf("confirmed->shipped failed: %v", err)
	}
	if _, err := orderService.AdminUpdateStatus(order.ID, constants.OrderStatusDelivered); err != nil {
		t.Fatalf("shipped->delivered failed: %v", err)
	}
	if _, err := orderService.AdminUpdateStatus(order.ID, constants.OrderStatusCanceled); !errors.Is(err, ErrOrderTransitionInvalid) {
		t.Fatalf("delivered->canceled want ErrOrderTransitionInvalid got %v", err)
	}
}

func TestAdminCancelRestoresStock(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	product := createTestProduct(t, db, "order-cancel", 2000, 4, constants.ProductStatusActive)

	if err := cartService.AddItem(AddCartItemInput{UserID: 7, ProductID: product.ID, Quantity: 3}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	order, err := orderService.Checkout(checkoutInput(7))
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	var afterCheckout models.Product
	if err := db.First(&afterCheckout, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if afterCheckout.Stock != 1 {
		t.Fatalf("stock after checkout want 1 got %d", afterCheckout.Stock)
	}

	if _, err := orderService.AdminUpdateStatus(order.ID, constants.OrderStatusCanceled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	var afterCancel models.Product
	if err := db.First(&afterCancel, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if afterCancel.Stock != 4 {
		t.Fatalf("stock after cancel want 4 got %d", afterCancel.Stock)
	}
}

func TestGetForUserChecksOwnership(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	product := createTestProduct(t, db, "order-owner", 1200, 5, constants.ProductStatusActive)

	if err := cartService.AddItem(AddCartItemInput{UserID: 8, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	order, err := orderService.Checkout(checkoutInput(8))
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := orderService.GetForUser(8, order.ID); err != nil {
		t.Fatalf("owner get failed: %v", err)
	}
	if _, err := orderService.GetForUser(9, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("other user want ErrOrderNotFound got %v", err)
	}
}
