package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/peptide-store/internal/config"
	"github.com/peptide-store/internal/constants"
	"github.com/peptide-store/internal/models"
	"github.com/peptide-store/internal/provider"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type dataEnvelope struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
	Warnings []string        `json:"warnings"`
}

type storefrontFixture struct {
	engine    *gin.Engine
	db        *gorm.DB
	productID uint
	shipment  uint
	payment   uint
}

func setupStorefrontRouter(t *testing.T) *storefrontFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := models.OpenDB("sqlite", dsn, models.DBOptions{})
	if err != nil {
		t.Fatalf("open db failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := models.InitDefaultAdmin(db, "admin", "admin-password", "admin@example.com"); err != nil {
		t.Fatalf("init admin failed: %v", err)
	}

	product := models.Product{Name: "BPC-157", Category: "healing", Price: models.MustMoney("45.00"), IsActive: true}
	shipment := models.ShipmentMethod{Code: "standard", Fee: models.MustMoney("8.00"), IsActive: true}
	payment := models.PaymentMethod{Code: "zelle", Name: "Zelle", Instructions: "Send via Zelle", IsActive: true}
	for _, row := range []interface{}{&product, &shipment, &payment} {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "debug"},
		JWT:     config.JWTConfig{SecretKey: "storefront-router-test-secret-0123456789", ExpireHours: 1},
		Order:   config.OrderConfig{CodePrefix: "ORD"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics", Namespace: "storefront_test"},
	}
	container, err := provider.NewContainer(cfg, db)
	if err != nil {
		t.Fatalf("new container failed: %v", err)
	}
	t.Cleanup(container.Close)

	return &storefrontFixture{
		engine:    SetupRouter(cfg, container),
		db:        db,
		productID: product.ID,
		shipment:  shipment.ID,
		payment:   payment.ID,
	}
}

func (f *storefrontFixture) do(t *testing.T, method, path, token string, body interface{}) (int, dataEnvelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var resp dataEnvelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal %s %s failed: %v body=%s", method, path, err, w.Body.String())
		}
	}
	return w.Code, resp
}

func (f *storefrontFixture) login(t *testing.T, username, password string) string {
	t.Helper()
	code, resp := f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if code != http.StatusOK {
		t.Fatalf("login %s want 200 got %d (%s)", username, code, resp.Message)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("login token missing: %v %s", err, string(resp.Data))
	}
	return data.Token
}

func TestStorefrontCheckoutFlow(t *testing.T) {
	f := setupStorefrontRouter(t)

	code, resp := f.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Alice",
		"username": "alice",
		"email":    "alice@example.com",
		"password": "alice-password",
	})
	if code != http.StatusCreated {
		t.Fatalf("register want 201 got %d (%s)", code, resp.Message)
	}
	code, _ = f.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Alice",
		"username": "alice",
		"password": "alice-password",
	})
	if code != http.StatusConflict {
		t.Fatalf("duplicate register want 409 got %d", code)
	}

	token := f.login(t, "alice", "alice-password")

	code, resp = f.do(t, http.MethodGet, "/api/v1/cart", token, nil)
	if code != http.StatusOK || resp.Message != "Cart not found" {
		t.Fatalf("empty cart want 200 Cart not found got %d %s", code, resp.Message)
	}

	code, resp = f.do(t, http.MethodPost, "/api/v1/cart", token, map[string]interface{}{
		"productId": f.productID,
		"quantity":  2,
	})
	if code != http.StatusOK {
		t.Fatalf("add cart item want 200 got %d (%s)", code, resp.Message)
	}

	code, resp = f.do(t, http.MethodPost, "/api/v1/orders/quote", token, map[string]interface{}{
		"shipmentMethod": f.shipment,
	})
	if code != http.StatusOK {
		t.Fatalf("quote want 200 got %d (%s)", code, resp.Message)
	}
	var quote struct {
		Subtotal    string `json:"subtotal"`
		DeliveryFee string `json:"delivery_fee"`
		Total       string `json:"total"`
	}
	if err := json.Unmarshal(resp.Data, &quote); err != nil {
		t.Fatalf("unmarshal quote failed: %v", err)
	}
	if quote.Subtotal != "90.00" || quote.DeliveryFee != "8.00" || quote.Total != "98.00" {
		t.Fatalf("unexpected quote: %+v", quote)
	}

	code, resp = f.do(t, http.MethodPost, "/api/v1/orders", token, map[string]interface{}{
		"recipientName":  "Alice",
		"email":          "alice@example.com",
		"country":        "US",
		"state":          "CA",
		"city":           "San Francisco",
		"address":        "1 Market St",
		"postalCode":     "94105",
		"shipmentMethod": f.shipment,
		"paymentMethod":  f.payment,
	})
	if code != http.StatusCreated {
		t.Fatalf("checkout want 201 got %d (%s)", code, resp.Message)
	}
	if len(resp.Warnings) != 1 {
		t.Fatalf("disabled email should produce one warning, got %v", resp.Warnings)
	}
	var created struct {
		ID   uint   `json:"id"`
		Code string `json:"code"`
	}
	if err := json.Unmarshal(resp.Data, &created); err != nil || created.ID == 0 {
		t.Fatalf("checkout result invalid: %v %s", err, string(resp.Data))
	}
	if !strings.HasPrefix(created.Code, "ORD") {
		t.Fatalf("unexpected order code: %s", created.Code)
	}

	code, resp = f.do(t, http.MethodGet, "/api/v1/cart", token, nil)
	if code != http.StatusOK || resp.Message != "Cart not found" {
		t.Fatalf("converted cart should not be active, got %d %s", code, resp.Message)
	}

	orderPath := fmt.Sprintf("/api/v1/orders/%d", created.ID)
	code, resp = f.do(t, http.MethodGet, orderPath, token, nil)
	if code != http.StatusOK {
		t.Fatalf("get own order want 200 got %d (%s)", code, resp.Message)
	}
	var detail struct {
		Status      string `json:"status"`
		TotalAmount string `json:"total_amount"`
		Items       []struct {
			Quantity int `json:"quantity"`
		} `json:"items"`
	}
	if err := json.Unmarshal(resp.Data, &detail); err != nil {
		t.Fatalf("unmarshal detail failed: %v", err)
	}
	if detail.Status != constants.OrderStatusPending || detail.TotalAmount != "98.00" || len(detail.Items) != 1 {
		t.Fatalf("unexpected order detail: %+v", detail)
	}

	adminPath := fmt.Sprintf("/api/v1/admin/orders/%d", created.ID)
	code, _ = f.do(t, http.MethodPatch, adminPath, token, map[string]string{"status": "shipped"})
	if code != http.StatusForbidden {
		t.Fatalf("user updating status want 403 got %d", code)
	}

	adminToken := f.login(t, "admin", "admin-password")
	code, resp = f.do(t, http.MethodPatch, adminPath, adminToken, map[string]string{"status": "bogus"})
	if code != http.StatusBadRequest {
		t.Fatalf("invalid status want 400 got %d (%s)", code, resp.Message)
	}
	code, resp = f.do(t, http.MethodPatch, adminPath, adminToken, map[string]string{"status": "Shipped"})
	if code != http.StatusOK {
		t.Fatalf("admin status update want 200 got %d (%s)", code, resp.Message)
	}

	var stored models.Order
	if err := f.db.First(&stored, created.ID).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusShipped || stored.ShippedAt == nil {
		t.Fatalf("status milestone not recorded: status=%s shipped_at=%v", stored.Status, stored.ShippedAt)
	}
}

func TestStorefrontPublicEndpoints(t *testing.T) {
	f := setupStorefrontRouter(t)

	code, resp := f.do(t, http.MethodGet, "/api/v1/products", "", nil)
	if code != http.StatusOK {
		t.Fatalf("list products want 200 got %d (%s)", code, resp.Message)
	}
	code, _ = f.do(t, http.MethodGet, "/api/v1/products/999999", "", nil)
	if code != http.StatusNotFound {
		t.Fatalf("missing product want 404 got %d", code)
	}
	code, _ = f.do(t, http.MethodGet, "/api/v1/master-data/payment-methods", "", nil)
	if code != http.StatusOK {
		t.Fatalf("payment methods want 200 got %d", code)
	}
	code, _ = f.do(t, http.MethodGet, "/api/v1/orders", "", nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("anonymous orders want 401 got %d", code)
	}
	code, resp = f.do(t, http.MethodGet, "/api/v1/nope", "", nil)
	if code != http.StatusNotFound || resp.Message != "Route not found" {
		t.Fatalf("unknown route want 404 got %d %s", code, resp.Message)
	}
	code, _ = f.do(t, http.MethodGet, "/health", "", nil)
	if code != http.StatusOK {
		t.Fatalf("health want 200 got %d", code)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "storefront_test_http_requests_total") {
		t.Fatalf("metrics endpoint missing request counter: %d", w.Code)
	}
}
