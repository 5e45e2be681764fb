package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/peptide-store/internal/constants"
	"github.com/peptide-store/internal/models"
)

func TestCartAddItemMergesLines(t *testing.T) {
	f := newStoreFixture(t)
	f.addToCart(t, f.buyer.ID, f.productA, 1)
	f.addToCart(t, f.buyer.ID, f.productA, 2)
	// quantity 缺省按 1 处理
	f.addToCart(t, f.buyer.ID, f.productA, 0)

	view, err := f.cart.GetActiveCart(f.buyer.ID)
	if err != nil || view == nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Products) != 1 || view.Products[0].Quantity != 4 {
		t.Fatalf("expected a single line with quantity 4, got %+v", view.Products)
	}
	if view.Subtotal.String() != "199.96" {
		t.Fatalf("unexpected subtotal %s", view.Subtotal)
	}
	if n := f.countRows(t, &models.Cart{}); n != 1 {
		t.Fatalf("expected a single cart, got %d", n)
	}
}

func TestCartGetActiveCart(t *testing.T) {
	f := newStoreFixture(t)
	view, err := f.cart.GetActiveCart(f.buyer.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if view != nil {
		t.Fatalf("expected nil cart before first add, got %+v", view)
	}

	f.addToCart(t, f.buyer.ID, f.productA, 1)
	f.addToCart(t, f.buyer.ID, f.productB, 2)
	if err := f.db.Model(&models.Product{}).Where("id = ?", f.productB.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}
	view, err = f.cart.GetActiveCart(f.buyer.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Products) != 1 || view.Products[0].ID != f.productA.ID {
		t.Fatalf("inactive product should be hidden, got %+v", view.Products)
	}
	if view.Products[0].FilePath != "/img/bpc.png" || view.Subtotal.String() != "49.99" {
		t.Fatalf("unexpected view: %+v", view)
	}

	// 其他用户看不到
	if other, _ := f.cart.GetActiveCart(f.otherUser.ID); other != nil {
		t.Fatalf("cart must be scoped to its owner")
	}
}

func TestCartMutationErrors(t *testing.T) {
	f := newStoreFixture(t)

	if err := f.cart.AddItem(f.buyer.ID, 0, 1); !errors.Is(err, ErrProductRequired) {
		t.Fatalf("expected ErrProductRequired, got %v", err)
	}
	if err := f.cart.AddItem(f.buyer.ID, 999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if err := f.cart.UpdateItemQuantity(f.buyer.ID, f.productA.ID, 2); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
	if err := f.cart.RemoveItem(f.buyer.ID, f.productA.ID); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}

	f.addToCart(t, f.buyer.ID, f.productA, 1)
	if err := f.cart.UpdateItemQuantity(f.buyer.ID, f.productA.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := f.cart.UpdateItemQuantity(f.buyer.ID, f.productB.ID, 2); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound on update, got %v", err)
	}
	if err := f.cart.RemoveItem(f.buyer.ID, f.productB.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound on remove, got %v", err)
	}

	if err := f.cart.UpdateItemQuantity(f.buyer.ID, f.productA.ID, 5); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	view, _ := f.cart.GetActiveCart(f.buyer.ID)
	if view.Products[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", view.Products[0].Quantity)
	}
	if err := f.cart.RemoveItem(f.buyer.ID, f.productA.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	view, _ = f.cart.GetActiveCart(f.buyer.ID)
	if view == nil || len(view.Products) != 0 || view.Subtotal.String() != "0.00" {
		t.Fatalf("expected empty active cart, got %+v", view)
	}
}

func TestCartConcurrentFirstAddsShareOneCart(t *testing.T) {
	f := newStoreFixture(t)
	const workers = 8

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs <- f.cart.AddItem(f.buyer.ID, f.productA.ID, 1)
		}()
	}
	close(start)
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent add failed: %v", err)
		}
	}

	var activeCarts int64
	if err := f.db.Model(&models.Cart{}).Where("user_id = ? AND status = ?", f.buyer.ID, constants.CartStatusActive).Count(&activeCarts).Error; err != nil {
		t.Fatalf("count carts failed: %v", err)
	}
	if activeCarts != 1 {
		t.Fatalf("expected one active cart, got %d", activeCarts)
	}
	var items []models.CartItem
	if err := f.db.Find(&items).Error; err != nil {
		t.Fatalf("load items failed: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != workers {
		t.Fatalf("expected one line with quantity %d, got %+v", workers, items)
	}
}
