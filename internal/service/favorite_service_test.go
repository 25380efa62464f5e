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

func setupFavoriteServiceTest(t *testing.T) (*FavoriteService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:favsvc?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Favorite{}); err != nil {
		t.Fatalf("migrate tables failed: %v", err)
	}
	if err := db.Where("1 = 1").Delete(&models.Favorite{}).Error; err != nil {
		t.Fatalf("reset favorite table failed: %v", err)
	}
	if err := db.Unscoped().Where("1 = 1").Delete(&models.Category{}).Error; err != nil {
		t.Fatalf("reset category table failed: %v", err)
	}
	if err := db.Unscoped().Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
		t.Fatalf("reset product table failed: %v", err)
	}
	return NewFavoriteService(repository.NewFavoriteRepository(db), repository.NewProductRepository(db)), db
}

func TestFavoriteAddIsIdempotent(t *testing.T) {
	svc, db := setupFavoriteServiceTest(t)
	product := createTestProduct(t, db, "fav-idem", 2499, 5, constants.ProductStatusActive)

	if err := svc.Add(1, product.ID); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := svc.Add(1, product.ID); err != nil {
		t.Fatalf("repeat add failed: %v", err)
	}

	details, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("favorites want 1 got %d", len(details))
	}
	if details[0].ProductID != product.ID {
		t.Fatalf("product id want %d got %d", product.ID, details[0].ProductID)
	}
}

func TestFavoriteAddSnapshotsCategoryLabel(t *testing.T) {
	svc, db := setupFavoriteServiceTest(t)
	category := &models.Category{Slug: "fav-silk", Name: "Silk Sarees", IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		CategoryID:  category.ID,
		Slug:        "fav-category-snapshot",
		Name:        "Kanjivaram Saree",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(4500)),
		Stock:       3,
		Status:      constants.ProductStatusActive,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := svc.Add(5, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	details, err := svc.ListByUser(5)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("favorites want 1 got %d", len(details))
	}
	if details[0].CategoryName != "Silk Sarees" {
		t.Fatalf("category name want Silk Sarees got %q", details[0].CategoryName)
	}
	if details[0].ProductName != "Kanjivaram Saree" {
		t.Fatalf("product name want Kanjivaram Saree got %q", details[0].ProductName)
	}
	if !details[0].UnitPrice.Decimal.Equal(decimal.NewFromInt(4500)) {
		t.Fatalf("unit price want 4500 got %s", details[0].UnitPrice.Decimal.String())
	}
}

func TestFavoriteToggleFlipsState(t *testing.T) {
	svc, db := setupFavoriteServiceTest(t)
	product := createTestProduct(t, db, "fav-toggle", 1999, 5, constants.ProductStatusActive)

	favorited, err := svc.Toggle(2, product.ID)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !favorited {
		t.Fatalf("first toggle should favorite")
	}

	favorited, err = svc.Toggle(2, product.ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if favorited {
		t.Fatalf("second toggle should unfavorite")
	}

	exists, err := svc.IsFavorite(2, product.ID)
	if err != nil {
		t.Fatalf("is favorite failed: %v", err)
	}
	if exists {
		t.Fatalf("favorite should be removed after second toggle")
	}
}

func TestFavoriteRemoveMissingReturnsNotFound(t *testing.T) {
	svc, _ := setupFavoriteServiceTest(t)

	if err := svc.Remove(3, 999); err != ErrFavoriteNotFound {
		t.Fatalf("remove missing want ErrFavoriteNotFound got %v", err)
	}
}

func TestFavoriteMergeGuestItemsSkipsInactive(t *testing.T) {
	svc, db := setupFavoriteServiceTest(t)
	active := createTestProduct(t, db, "fav-merge-a", 1200, 5, constants.ProductStatusActive)
	inactive := createTestProduct(t, db, "fav-merge-b", 1500, 5, constants.ProductStatusInactive)

	if err := svc.MergeGuestItems(4, []uint{active.ID, inactive.ID, 0}); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	details, err := svc.ListByUser(4)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("favorites want 1 got %d", len(details))
	}
	if details[0].ProductID != active.ID {
		t.Fatalf("merged favorite want product %d got %d", active.ID, details[0].ProductID)
	}
}
