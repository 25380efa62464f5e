package repository

import (
	"testing"

	"github.com/vastrika/vastrika-api/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) (*GormCartRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:cartrepo?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate cart tables failed: %v", err)
	}
	if err := db.Where("1 = 1").Delete(&models.CartItem{}).Error; err != nil {
		t.Fatalf("reset cart table failed: %v", err)
	}
	return NewCartRepository(db), db
}

func newCartItem(userID, productID uint, quantity int) *models.CartItem {
	return &models.CartItem{
		UserID:      userID,
		ProductID:   productID,
		Quantity:    quantity,
		UnitAmount:  models.NewMoneyFromDecimal(decimal.NewFromInt(2499)),
		ProductName: "Banarasi Silk Saree",
	}
}

func TestCartUpsertAddAccumulatesQuantity(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)

	if err := repo.UpsertAdd(newCartItem(1, 10, 1)); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := repo.UpsertAdd(newCartItem(1, 10, 1)); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	var items []models.CartItem
	if err := db.Where("user_id = ?", 1).Find(&items).Error; err != nil {
		t.Fatalf("load cart failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("rows want 1 got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("quantity want 2 got %d", items[0].Quantity)
	}
}

func TestCartListByUserKeepsInsertionOrder(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)

	if err := repo.UpsertAdd(newCartItem(2, 20, 1)); err != nil {
		t.Fatalf("add first failed: %v", err)
	}
	if err := repo.UpsertAdd(newCartItem(2, 21, 3)); err != nil {
		t.Fatalf("add second failed: %v", err)
	}
	if err := repo.UpsertAdd(newCartItem(2, 20, 1)); err != nil {
		t.Fatalf("re-add first failed: %v", err)
	}

	items, err := repo.ListByUser(2)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("rows want 2 got %d", len(items))
	}
	if items[0].ProductID != 20 || items[1].ProductID != 21 {
		t.Fatalf("order want [20 21] got [%d %d]", items[0].ProductID, items[1].ProductID)
	}
	if items[0].Quantity != 2 {
		t.Fatalf("re-added quantity want 2 got %d", items[0].Quantity)
	}
}

func TestCartUpdateQuantityAndDelete(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)

	if err := repo.UpsertAdd(newCartItem(3, 30, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	affected, err := repo.UpdateQuantity(3, 30, 5)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("update affected want 1 got %d", affected)
	}

	affected, err = repo.UpdateQuantity(3, 999, 5)
	if err != nil {
		t.Fatalf("update missing failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("update missing affected want 0 got %d", affected)
	}

	affected, err = repo.DeleteByUserAndProduct(3, 30)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("delete affected want 1 got %d", affected)
	}

	items, err := repo.ListByUser(3)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("rows want 0 got %d", len(items))
	}
}

func TestCartClearByUserLeavesOtherUsers(t *testing.T) {
	repo, _ := setupCartRepositoryTest(t)

	if err := repo.UpsertAdd(newCartItem(4, 40, 1)); err != nil {
		t.Fatalf("add user 4 failed: %v", err)
	}
	if err := repo.UpsertAdd(newCartItem(5, 40, 1)); err != nil {
		t.Fatalf("add user 5 failed: %v", err)
	}

	if err := repo.ClearByUser(4); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	items, err := repo.ListByUser(4)
	if err != nil {
		t.Fatalf("list user 4 failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("user 4 rows want 0 got %d", len(items))
	}

	items, err = repo.ListByUser(5)
	if err != nil {
		t.Fatalf("list user 5 failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("user 5 rows want 1 got %d", len(items))
	}
}
