package service

import (
	"testing"

	"github.com/vastrika/vastrika-api/internal/constants"
	"github.com/vastrika/vastrika-api/internal/models"
	"github.com/vastrika/vastrika-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:cartsvc?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate tables failed: %v", err)
	}
	if err := db.Where("1 = 1").Delete(&models.CartItem{}).Error; err != nil {
		t.Fatalf("reset cart table failed: %v", err)
	}
	if err := db.Unscoped().Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
		t.Fatalf("reset product table failed: %v", err)
	}
	return NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db)), db
}

func createTestProduct(t *testing.T, db *gorm.DB, slug string, price int64, stock int, status string) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID:  1,
		Slug:        slug,
		Name:        "Saree " + slug,
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		Stock:       stock,
		Status:      status,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product %s failed: %v", slug, err)
	}
	return product
}

func TestCartAddItemChecksStockAndStatus(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	active := createTestProduct(t, db, "cart-active", 2499, 3, constants.ProductStatusActive)
	inactive := createTestProduct(t, db, "cart-inactive", 1999, 5, constants.ProductStatusInactive)

	if err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: active.ID, Quantity: 2}); err != nil {
		t.Fatalf("add active failed: %v", err)
	}
	if err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: inactive.ID, Quantity: 1}); err != ErrProductNotAvailable {
		t.Fatalf("add inactive want ErrProductNotAvailable got %v", err)
	}
	if err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: active.ID, Quantity: 10}); err != ErrInsufficientStock {
		t.Fatalf("add over stock want ErrInsufficientStock got %v", err)
	}
	if err := svc.AddItem(AddCartItemInput{UserID: 1, ProductID: active.ID, Quantity: 0}); err != ErrInvalidInput {
		t.Fatalf("add zero quantity want ErrInvalidInput got %v", err)
	}
}

func TestCartListByUserComputesSubtotal(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	first := createTestProduct(t, db, "cart-sum-a", 1000, 10, constants.ProductStatusActive)
	second := createTestProduct(t, db, "cart-sum-b", 2500, 10, constants.ProductStatusActive)

	if err := svc.AddItem(AddCartItemInput{UserID: 2, ProductID: first.ID, Quantity: 2}); err != nil {
		t.Fatalf("add first failed: %v", err)
	}
	if err := svc.AddItem(AddCartItemInput{UserID: 2, ProductID: second.ID, Quantity: 1}); err != nil {
		t.Fatalf("add second failed: %v", err)
	}

	summary, err := svc.ListByUser(2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(summary.Items) != 2 {
		t.Fatalf("items want 2 got %d", len(summary.Items))
	}
	if summary.ItemCount != 3 {
		t.Fatalf("item count want 3 got %d", summary.ItemCount)
	}
	if !summary.Subtotal.Decimal.Equal(decimal.NewFromInt(4500)) {
		t.Fatalf("subtotal want 4500 got %s", summary.Subtotal.Decimal.String())
	}
}

func TestCartListByUserPrunesUnavailableProducts(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "cart-prune", 1500, 5, constants.ProductStatusActive)

	if err := svc.AddItem(AddCartItemInput{UserID: 3, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("status", constants.ProductStatusInactive).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	summary, err := svc.ListByUser(3)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("items want 0 got %d", len(summary.Items))
	}

	summary, err = svc.ListByUser(3)
	if err != nil {
		t.Fatalf("second list failed: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("pruned item should stay removed, got %d items", len(summary.Items))
	}
}

func TestCartUpdateQuantityZeroRemovesItem(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	product := createTestProduct(t, db, "cart-zero", 999, 5, constants.ProductStatusActive)

	if err := svc.AddItem(AddCartItemInput{UserID: 4, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.UpdateQuantity(4, product.ID, 0); err != nil {
		t.Fatalf("zero quantity update failed: %v", err)
	}

	summary, err := svc.ListByUser(4)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("items want 0 got %d", len(summary.Items))
	}

	if err := svc.UpdateQuantity(4, product.ID, 1); err != ErrCartItemNotFound {
		t.Fatalf("update missing want ErrCartItemNotFound got %v", err)
	}
}

func TestCartMergeGuestItemsSkipsUnavailable(t *testing.T) {
	svc, db := setupCartServiceTest(t)
	active := createTestProduct(t, db, "cart-merge-a", 1200, 5, constants.ProductStatusActive)
	soldOut := createTestProduct(t, db, "cart-merge-b", 1800, 0, constants.ProductStatusOutOfStock)

	err := svc.MergeGuestItems(5, []GuestCartItem{
		{ProductID: active.ID, Quantity: 2},
		{ProductID: soldOut.ID, Quantity: 1},
		{ProductID: 0, Quantity: 3},
	})
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	summary, err := svc.ListByUser(5)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(summary.Items) != 1 {
		t.Fatalf("items want 1 got %d", len(summary.Items))
	}
	if summary.Items[0].ProductID != active.ID || summary.Items[0].Quantity != 2 {
		t.Fatalf("merged item want product %d qty 2 got product %d qty %d", active.ID, summary.Items[0].ProductID, summary.Items[0].Quantity)
	}
}
