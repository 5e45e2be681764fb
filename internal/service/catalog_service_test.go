package service

import (
	"context"
	"errors"
	"testing"

	"github.com/peptide-store/internal/config"
	"github.com/peptide-store/internal/models"
	"github.com/peptide-store/internal/repository"
)

func TestCatalogServiceWithoutCache(t *testing.T) {
	f := newStoreFixture(t)
	hidden := models.Product{Name: "Retired", Category: "healing", Price: models.MustMoney("1.00"), IsActive: true}
	if err := f.db.Create(&hidden).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	f.db.Model(&models.Product{}).Where("id = ?", hidden.ID).Update("is_active", false)

	svc := NewCatalogService(repository.NewProductRepository(f.db), nil, 0)
	products, err := svc.ListProducts(context.Background(), " healing ", "")
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 active products, got %d", len(products))
	}
	products, err = svc.ListProducts(context.Background(), "", "tb-")
	if err != nil || len(products) != 1 || products[0].ID != f.productB.ID {
		t.Fatalf("search failed: %+v err=%v", products, err)
	}

	product, err := svc.GetProduct(context.Background(), f.productA.ID)
	if err != nil || product.Name != "BPC-157" {
		t.Fatalf("get product failed: %+v err=%v", product, err)
	}
	if _, err := svc.GetProduct(context.Background(), hidden.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("inactive product must be not found, got %v", err)
	}
	if _, err := svc.GetProduct(context.Background(), 0); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("zero id must be not found, got %v", err)
	}
}

func TestMasterDataServiceWithoutCache(t *testing.T) {
	f := newStoreFixture(t)
	svc := NewMasterDataService(repository.NewMasterDataRepository(f.db), nil, 0)

	methods, err := svc.ListShipmentMethods(context.Background())
	if err != nil || len(methods) != 2 || methods[0].Code != "standard" {
		t.Fatalf("expected shipment methods ordered by fee, got %+v err=%v", methods, err)
	}
	payments, err := svc.ListPaymentMethods(context.Background())
	if err != nil || len(payments) != 1 || payments[0].Name != "Zelle" {
		t.Fatalf("unexpected payment methods: %+v err=%v", payments, err)
	}
	if _, err := svc.ResolveShipmentFee(999); !errors.Is(err, ErrShipmentMethodNotFound) {
		t.Fatalf("expected ErrShipmentMethodNotFound, got %v", err)
	}
	method, err := svc.ResolveShipmentFee(f.express.ID)
	if err != nil || method.Fee.String() != "25.00" {
		t.Fatalf("resolve fee failed: %+v err=%v", method, err)
	}
}

func TestCaptchaServiceScenes(t *testing.T) {
	disabled := NewCaptchaService(config.CaptchaConfig{})
	if disabled.Enabled(CaptchaSceneLogin) {
		t.Fatalf("captcha disabled globally")
	}
	if err := disabled.Verify(CaptchaSceneLogin, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled scene should pass, got %v", err)
	}

	svc := NewCaptchaService(config.CaptchaConfig{Enabled: true, Login: true})
	if !svc.Enabled(CaptchaSceneLogin) || svc.Enabled(CaptchaSceneRegister) {
		t.Fatalf("scene switches not honored")
	}
	if err := svc.Verify(CaptchaSceneLogin, CaptchaVerifyPayload{}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("expected ErrCaptchaRequired, got %v", err)
	}
	challenge, err := svc.GenerateImageChallenge()
	if err != nil || challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("generate challenge failed: %+v err=%v", challenge, err)
	}
	if err := svc.Verify(CaptchaSceneLogin, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: "wrong!"}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("expected ErrCaptchaInvalid, got %v", err)
	}
}
