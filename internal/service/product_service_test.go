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

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:productsvc?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("migrate tables failed: %v", err)
	}
	if err := db.Unscoped().Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
		t.Fatalf("reset product table failed: %v", err)
	}
	if err := db.Unscoped().Where("1 = 1").Delete(&models.Category{}).Error; err != nil {
		t.Fatalf("reset category table failed: %v", err)
	}
	return NewProductService(repository.NewProductRepository(db), repository.NewCategoryRepository(db)), db
}

func createTestCategory(t *testing.T, db *gorm.DB, slug string) *models.Category {
	t.Helper()
	category := &models.Category{Slug: slug, Name: "Category " + slug, IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category %s failed: %v", slug, err)
	}
	return category
}

func TestProductCreateGeneratesSlugAndDiscount(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := createTestCategory(t, db, "silk")

	stock := 10
	product, err := svc.Create(SaveProductInput{
		CategoryID:     category.ID,
		Name:           "Kanjivaram Bridal Saree",
		PriceAmount:    decimal.NewFromInt(7500),
		OriginalAmount: decimal.NewFromInt(10000),
		Stock:          &stock,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.Slug != "kanjivaram-bridal-saree" {
		t.Fatalf("slug want kanjivaram-bridal-saree got %s", product.Slug)
	}
	if product.DiscountPercent != 25 {
		t.Fatalf("discount want 25 got %d", product.DiscountPercent)
	}
	if product.Status != constants.ProductStatusActive {
		t.Fatalf("status want active got %s", product.Status)
	}
}

func TestProductCreateZeroStockBecomesOutOfStock(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := createTestCategory(t, db, "cotton")

	product, err := svc.Create(SaveProductInput{
		CategoryID:  category.ID,
		Name:        "Chettinad Cotton Saree",
		PriceAmount: decimal.NewFromInt(1800),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.Status != constants.ProductStatusOutOfStock {
		t.Fatalf("status want out_of_stock got %s", product.Status)
	}
}

func TestProductCreateValidation(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := createTestCategory(t, db, "georgette")

	if _, err := svc.Create(SaveProductInput{CategoryID: category.ID, PriceAmount: decimal.NewFromInt(100)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing name want ErrInvalidInput got %v", err)
	}
	if _, err := svc.Create(SaveProductInput{CategoryID: category.ID, Name: "Free Saree", PriceAmount: decimal.Zero}); !errors.Is(err, ErrProductPriceInvalid) {
		t.Fatalf("zero price want ErrProductPriceInvalid got %v", err)
	}
	if _, err := svc.Create(SaveProductInput{CategoryID: 999, Name: "Orphan Saree", PriceAmount: decimal.NewFromInt(100)}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("missing category want ErrCategoryNotFound got %v", err)
	}
}

func TestProductCreateRejectsDuplicateSlug(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := createTestCategory(t, db, "banarasi")

	stock := 5
	if _, err := svc.Create(SaveProductInput{
		CategoryID:  category.ID,
		Name:        "Banarasi Katan Saree",
		PriceAmount: decimal.NewFromInt(9000),
		Stock:       &stock,
	}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.Create(SaveProductInput{
		CategoryID:  category.ID,
		Slug:        "banarasi-katan-saree",
		Name:        "Another Saree",
		PriceAmount: decimal.NewFromInt(5000),
		Stock:       &stock,
	})
	if !errors.Is(err, ErrProductSlugTaken) {
		t.Fatalf("duplicate slug want ErrProductSlugTaken got %v", err)
	}
}

func TestProductUpdateStatusValidatesValue(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := createTestCategory(t, db, "status")

	stock := 5
	product, err := svc.Create(SaveProductInput{
		CategoryID:  category.ID,
		Name:        "Status Saree",
		PriceAmount: decimal.NewFromInt(2000),
		Stock:       &stock,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.UpdateStatus(product.ID, "archived"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown status want ErrInvalidInput got %v", err)
	}

	updated, err := svc.UpdateStatus(product.ID, "Inactive")
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.ProductStatusInactive {
		t.Fatalf("status want inactive got %s", updated.Status)
	}
}

func TestProductGetPublicBySlugHidesInactive(t *testing.T) {
	svc, db := setupProductServiceTest(t)
	category := createTestCategory(t, db, "public")

	stock := 5
	product, err := svc.Create(SaveProductInput{
		CategoryID:  category.ID,
		Name:        "Public Saree",
		PriceAmount: decimal.NewFromInt(3000),
		Stock:       &stock,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.GetPublicBySlug(product.Slug); err != nil {
		t.Fatalf("get public failed: %v", err)
	}

	if _, err := svc.UpdateStatus(product.ID, constants.ProductStatusInactive); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if _, err := svc.GetPublicBySlug(product.Slug); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("inactive product want ErrProductNotFound got %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Kanjivaram Bridal Saree": "kanjivaram-bridal-saree",
		"  Mysore   Silk!  ":      "mysore-silk",
		"100% Cotton":             "100-cotton",
	}
	for input, want := range cases {
		if got := Slugify(input); got != want {
			t.Fatalf("slugify %q want %q got %q", input, want, got)
		}
	}
}
