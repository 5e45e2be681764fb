package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/peptide-store/internal/constants"
	"github.com/peptide-store/internal/models"

	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := models.OpenDB("sqlite", dsn, models.DBOptions{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func TestCartCreateActiveRejectsSecondActiveCart(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)

	first, err := repo.CreateActive(7)
	if err != nil {
		t.Fatalf("create first cart failed: %v", err)
	}
	if _, err := repo.CreateActive(7); !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation for second active cart, got %v", err)
	}

	affected, err := repo.MarkConverted(first.ID, 7, time.Now())
	if err != nil || affected != 1 {
		t.Fatalf("mark converted failed: affected=%d err=%v", affected, err)
	}
	affected, err = repo.MarkConverted(first.ID, 7, time.Now())
	if err != nil || affected != 0 {
		t.Fatalf("second conversion should affect nothing: affected=%d err=%v", affected, err)
	}

	if _, err := repo.CreateActive(7); err != nil {
		t.Fatalf("new active cart after conversion should be allowed: %v", err)
	}
	var activeCount int64
	db.Model(&models.Cart{}).Where("user_id = ? AND status = ?", 7, constants.CartStatusActive).Count(&activeCount)
	if activeCount != 1 {
		t.Fatalf("expected one active cart, got %d", activeCount)
	}
}

func TestCartItemUniquePerProduct(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	cart, err := repo.CreateActive(1)
	if err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if err := repo.CreateItem(&models.CartItem{CartID: cart.ID, ProductID: 3, Quantity: 1}); err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	if err := repo.CreateItem(&models.CartItem{CartID: cart.ID, ProductID: 3, Quantity: 1}); !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation for duplicate line, got %v", err)
	}
	item, err := repo.GetItem(cart.ID, 3)
	if err != nil || item == nil {
		t.Fatalf("get item failed: %v", err)
	}
	if err := repo.IncrementItem(item.ID, 2); err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	item, _ = repo.GetItem(cart.ID, 3)
	if item.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", item.Quantity)
	}
	affected, err := repo.DeleteItem(cart.ID, 99)
	if err != nil || affected != 0 {
		t.Fatalf("delete missing should affect nothing: affected=%d err=%v", affected, err)
	}
}

func TestPromotionRedeemableWindowIsInclusive(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewPromotionRepository(db)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)
	promotion := &models.Promotion{
		Code:      "SAVE10",
		Type:      constants.PromotionTypeDiscount,
		Value:     models.MustMoney("10"),
		StartsAt:  &start,
		ExpiresAt: &end,
		IsActive:  true,
	}
	if err := repo.Create(promotion); err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}

	cases := []struct {
		at   time.Time
		want bool
	}{
		{at: start, want: true},
		{at: end, want: true},
		{at: start.Add(-time.Second), want: false},
		{at: end.Add(time.Second), want: false},
	}
	for _, tc := range cases {
		got, err := repo.GetRedeemableByCode("SAVE10", tc.at)
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if (got != nil) != tc.want {
			t.Fatalf("at %s: redeemable=%v want %v", tc.at, got != nil, tc.want)
		}
	}

	if _, err := repo.SetActive(promotion.ID, false, 1); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if got, _ := repo.GetRedeemableByCode("SAVE10", start); got != nil {
		t.Fatalf("inactive promotion must not be redeemable")
	}
}

func TestPromotionUsageUniquePerUser(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewPromotionUsageRepository(db)
	if err := repo.Create(&models.PromotionUsage{PromotionID: 1, UserID: 2, OrderID: 3}); err != nil {
		t.Fatalf("create usage failed: %v", err)
	}
	if err := repo.Create(&models.PromotionUsage{PromotionID: 1, UserID: 2, OrderID: 4}); !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
	if err := repo.Create(&models.PromotionUsage{PromotionID: 1, UserID: 5, OrderID: 6}); err != nil {
		t.Fatalf("other user usage should succeed: %v", err)
	}
	count, err := repo.CountByPromotion(1)
	if err != nil || count != 2 {
		t.Fatalf("expected 2 usages, got %d err=%v", count, err)
	}
}

func TestOrderListAdminKeywordAndStatus(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	seed := []models.Order{
		{Code: "ORD-A", UserID: 1, RecipientName: "Alice", ContactInfo: "alice@example.com", Status: constants.OrderStatusPending, ShipmentMethodID: 1, PaymentMethodID: 1},
		{Code: "ORD-B", UserID: 2, RecipientName: "Bob", ContactInfo: "bob@example.com", Status: constants.OrderStatusShipped, ShipmentMethodID: 1, PaymentMethodID: 1},
		{Code: "ORD-C", UserID: 2, RecipientName: "Carol", ContactInfo: "carol@example.com", Status: constants.OrderStatusPending, ShipmentMethodID: 1, PaymentMethodID: 1},
	}
	for i := range seed {
		if err := db.Omit("Items", "ShipmentMethod", "PaymentMethod", "Promotion").Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed order failed: %v", err)
		}
	}

	orders, total, err := repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, Keyword: "bob"})
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 1 || len(orders) != 1 || orders[0].Code != "ORD-B" {
		t.Fatalf("unexpected keyword result: total=%d orders=%+v", total, orders)
	}

	orders, total, err = repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 1, Status: constants.OrderStatusPending})
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 2 || len(orders) != 1 || orders[0].Code != "ORD-C" {
		t.Fatalf("unexpected status page: total=%d orders=%+v", total, orders)
	}

	mine, total, err := repo.ListByUser(OrderListFilter{UserID: 2, Page: 1, PageSize: 10})
	if err != nil || total != 2 || len(mine) != 2 {
		t.Fatalf("unexpected user orders: total=%d err=%v", total, err)
	}
	if other, _ := repo.GetByIDAndUser(seed[0].ID, 2); other != nil {
		t.Fatalf("user must not read another user's order")
	}
}
