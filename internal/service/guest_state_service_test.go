package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/vastrika/vastrika-api/internal/config"
	"github.com/vastrika/vastrika-api/internal/constants"
	"github.com/vastrika/vastrika-api/internal/models"

	"github.com/shopspring/decimal"
)

func newTestGuestStateService() *GuestStateService {
	return NewGuestStateService(&config.Config{}, NewMemoryGuestStateStore())
}

func TestGuestCartAddMergesSameProduct(t *testing.T) {
	svc := newTestGuestStateService()
	ctx := context.Background()
	token := svc.NewGuestToken()

	if _, err := svc.AddCartItem(ctx, token, GuestCartItem{ProductID: 1, Quantity: 1}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	items, err := svc.AddCartItem(ctx, token, GuestCartItem{ProductID: 1, Quantity: 2})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("items want 1 got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("quantity want 3 got %d", items[0].Quantity)
	}
}

func TestGuestCartSummaryComputesSubtotal(t *testing.T) {
	svc := newTestGuestStateService()
	ctx := context.Background()
	token := svc.NewGuestToken()
	unit := models.NewMoneyFromDecimal(decimal.NewFromInt(1000))

	if _, err := svc.AddCartItem(ctx, token, GuestCartItem{ProductID: 1, Quantity: 1, UnitPrice: unit}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	items, err := svc.AddCartItem(ctx, token, GuestCartItem{ProductID: 1, Quantity: 1, UnitPrice: unit})
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	summary := SummarizeGuestCart(items)
	if len(summary.Items) != 1 {
		t.Fatalf("lines want 1 got %d", len(summary.Items))
	}
	if summary.Items[0].Quantity != 2 {
		t.Fatalf("quantity want 2 got %d", summary.Items[0].Quantity)
	}
	if summary.ItemCount != 2 {
		t.Fatalf("item count want 2 got %d", summary.ItemCount)
	}
	if !summary.Subtotal.Decimal.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("subtotal want 2000 got %s", summary.Subtotal.Decimal.String())
	}
}

func TestGuestCartRoundTripFreshService(t *testing.T) {
	store := NewMemoryGuestStateStore()
	first := NewGuestStateService(&config.Config{}, store)
	ctx := context.Background()
	token := first.NewGuestToken()

	seeded := []GuestCartItem{
		{ProductID: 1, Quantity: 2, UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(1200))},
		{ProductID: 2, Quantity: 1, UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(4500))},
		{ProductID: 3, Quantity: 3, UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(799))},
	}
	for _, item := range seeded {
		if _, err := first.AddCartItem(ctx, token, item); err != nil {
			t.Fatalf("seed add product %d failed: %v", item.ProductID, err)
		}
	}

	second := NewGuestStateService(&config.Config{}, store)
	items, err := second.GetCart(ctx, token)
	if err != nil {
		t.Fatalf("reload cart failed: %v", err)
	}
	if len(items) != len(seeded) {
		t.Fatalf("lines want %d got %d", len(seeded), len(items))
	}
	for i, want := range seeded {
		got := items[i]
		if got.ProductID != want.ProductID || got.Quantity != want.Quantity {
			t.Fatalf("line %d want product %d qty %d got product %d qty %d", i, want.ProductID, want.Quantity, got.ProductID, got.Quantity)
		}
		if !got.UnitPrice.Decimal.Equal(want.UnitPrice.Decimal) {
			t.Fatalf("line %d unit price want %s got %s", i, want.UnitPrice.Decimal.String(), got.UnitPrice.Decimal.String())
		}
	}
}

func TestGuestCartConcurrentAddsSerialize(t *testing.T) {
	svc := newTestGuestStateService()
	ctx := context.Background()
	token := svc.NewGuestToken()

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.AddCartItem(ctx, token, GuestCartItem{ProductID: 7, Quantity: 1}); err != nil {
				t.Errorf("concurrent add failed: %v", err)
			}
		}()
	}
	wg.Wait()

	items, err := svc.GetCart(ctx, token)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items want 1 got %d", len(items))
	}
	if items[0].Quantity != workers {
		t.Fatalf("quantity want %d got %d", workers, items[0].Quantity)
	}
}

func TestGuestCartUpdateAndRemove(t *testing.T) {
	svc := newTestGuestStateService()
	ctx := context.Background()
	token := svc.NewGuestToken()

	if _, err := svc.AddCartItem(ctx, token, GuestCartItem{ProductID: 1, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := svc.AddCartItem(ctx, token, GuestCartItem{ProductID: 2, Quantity: 1}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	items, err := svc.UpdateCartQuantity(ctx, token, 1, 5)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if items[0].Quantity != 5 {
		t.Fatalf("quantity want 5 got %d", items[0].Quantity)
	}

	items, err = svc.RemoveCartItem(ctx, token, 1)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != 2 {
		t.Fatalf("remaining want product 2 got %+v", items)
	}

	if _, err := svc.UpdateCartQuantity(ctx, token, 99, 1); err != ErrCartItemNotFound {
		t.Fatalf("missing update want ErrCartItemNotFound got %v", err)
	}
}

func TestGuestCorruptPayloadTreatedAsEmpty(t *testing.T) {
	store := NewMemoryGuestStateStore()
	svc := NewGuestStateService(&config.Config{}, store)
	ctx := context.Background()
	token := svc.NewGuestToken()

	if err := store.Set(ctx, token, constants.GuestScopeCart, []byte("{not json"), time.Hour); err != nil {
		t.Fatalf("seed corrupt payload failed: %v", err)
	}

	items, err := svc.GetCart(ctx, token)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("corrupt payload want empty cart got %d items", len(items))
	}

	items, err = svc.AddCartItem(ctx, token, GuestCartItem{ProductID: 3, Quantity: 1})
	if err != nil {
		t.Fatalf("add after corrupt failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items want 1 got %d", len(items))
	}
}

func TestGuestFavoritesToggle(t *testing.T) {
	svc := newTestGuestStateService()
	ctx := context.Background()
	token := svc.NewGuestToken()

	on, err := svc.ToggleFavorite(ctx, token, 10)
	if err != nil {
		t.Fatalf("toggle on failed: %v", err)
	}
	if !on {
		t.Fatal("first toggle should favorite")
	}

	off, err := svc.ToggleFavorite(ctx, token, 10)
	if err != nil {
		t.Fatalf("toggle off failed: %v", err)
	}
	if off {
		t.Fatal("second toggle should unfavorite")
	}

	ids, err := svc.GetFavorites(ctx, token)
	if err != nil {
		t.Fatalf("get favorites failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("favorites want empty got %v", ids)
	}
}

func TestGuestTokenValidation(t *testing.T) {
	svc := newTestGuestStateService()
	ctx := context.Background()

	if _, err := svc.GetCart(ctx, "not-a-uuid"); err != ErrGuestTokenInvalid {
		t.Fatalf("want ErrGuestTokenInvalid got %v", err)
	}
	if err := svc.ValidateToken(svc.NewGuestToken()); err != nil {
		t.Fatalf("fresh token should validate: %v", err)
	}
}
