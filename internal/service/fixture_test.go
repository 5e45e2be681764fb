package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/peptide-store/internal/models"
	"github.com/peptide-store/internal/repository"

	"gorm.io/gorm"
)

type recordingNotifier struct {
	mu     sync.Mutex
	err    error
	orders []*models.Order
}

func (n *recordingNotifier) NotifyOrderCreated(_ context.Context, order *models.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, order)
	return n.err
}

type storeFixture struct {
	db         *gorm.DB
	carts      *repository.GormCartRepository
	orders     *repository.GormOrderRepository
	usages     *repository.GormPromotionUsageRepository
	promoRepo  *repository.GormPromotionRepository
	userRepo   *repository.GormUserRepository
	cart       *CartService
	promotions *PromotionService
	checkout   *OrderService
	admin      *OrderAdminService
	notifier   *recordingNotifier

	productA  models.Product
	productB  models.Product
	standard  models.ShipmentMethod
	express   models.ShipmentMethod
	zelle     models.PaymentMethod
	buyer     models.User
	otherUser models.User
}

func openServiceTestDB(t *testing.T) *gorm.DB {
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

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()
	db := openServiceTestDB(t)
	f := &storeFixture{
		db:        db,
		carts:     repository.NewCartRepository(db),
		orders:    repository.NewOrderRepository(db),
		usages:    repository.NewPromotionUsageRepository(db),
		promoRepo: repository.NewPromotionRepository(db),
		userRepo:  repository.NewUserRepository(db),
		notifier:  &recordingNotifier{},
	}
	products := repository.NewProductRepository(db)
	master := repository.NewMasterDataRepository(db)

	f.productA = models.Product{Name: "BPC-157", Description: "5mg vial", Category: "healing", Price: models.MustMoney("49.99"), FilePath: "/img/bpc.png", IsActive: true}
	f.productB = models.Product{Name: "TB-500", Description: "2mg vial", Category: "healing", Price: models.MustMoney("20.00"), FilePath: "/img/tb.png", IsActive: true}
	f.standard = models.ShipmentMethod{Code: "standard", Description: "5-7 days", Fee: models.MustMoney("10.00"), IsActive: true}
	f.express = models.ShipmentMethod{Code: "express", Description: "1-2 days", Fee: models.MustMoney("25.00"), IsActive: true}
	f.zelle = models.PaymentMethod{Code: "zelle", Name: "Zelle", Instructions: "Send to pay@example.com", IsActive: true}
	f.buyer = models.User{Name: "Buyer", Username: "buyer", PasswordHash: "x", Role: "user", IsActive: true}
	f.otherUser = models.User{Name: "Other", Username: "other", PasswordHash: "x", Role: "user", IsActive: true}
	for _, row := range []interface{}{&f.productA, &f.productB, &f.standard, &f.express, &f.zelle, &f.buyer, &f.otherUser} {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed %T failed: %v", row, err)
		}
	}

	f.cart = NewCartService(f.carts, products)
	f.promotions = NewPromotionService(f.promoRepo, f.usages)
	f.checkout = NewOrderService(OrderServiceOptions{
		UnitOfWork: repository.NewUnitOfWork(db, f.carts, f.orders, f.usages),
		CartRepo:   f.carts,
		OrderRepo:  f.orders,
		MasterRepo: master,
		Promotions: f.promotions,
		Notifier:   f.notifier,
	})
	f.admin = NewOrderAdminService(f.orders, f.userRepo, nil)
	return f
}

func (f *storeFixture) addToCart(t *testing.T, userID uint, product models.Product, quantity int) {
	t.Helper()
	if err := f.cart.AddItem(userID, product.ID, quantity); err != nil {
		t.Fatalf("add %s to cart failed: %v", product.Name, err)
	}
}

func (f *storeFixture) checkoutInput(userID uint) CheckoutInput {
	return CheckoutInput{
		UserID:           userID,
		RecipientName:    "Jane Doe",
		Email:            "Jane@Example.com",
		Phone:            "555-0100",
		Country:          "US",
		State:            "CA",
		City:             "San Diego",
		Address:          "1 Harbor Dr",
		PostalCode:       "92101",
		ShipmentMethodID: f.standard.ID,
		PaymentMethodID:  f.zelle.ID,
	}
}

func (f *storeFixture) createPromotion(t *testing.T, code, promotionType, value string, usageLimit int) *models.Promotion {
	t.Helper()
	promotion, err := f.promotions.Create(CreatePromotionInput{
		Code:       code,
		Type:       promotionType,
		Value:      models.MustMoney(value),
		UsageLimit: usageLimit,
		ActorID:    1,
	})
	if err != nil {
		t.Fatalf("create promotion %s failed: %v", code, err)
	}
	return promotion
}

func (f *storeFixture) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := f.db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count %T failed: %v", model, err)
	}
	return count
}
