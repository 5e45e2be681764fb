package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceRoleWithPolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.GrantRolePolicy("user", "/orders/:id", "GET"); err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}

	allow, err := svc.EnforceRole("user", "/api/v1/orders/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceRole("user", "/api/v1/orders/42", "DELETE")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "/admin/orders/:id", want: "/admin/orders/:id"},
		{in: "admin/orders", want: "/admin/orders"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(false); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	// 重复执行保持幂等
	if err := svc.BootstrapBuiltinRoles(false); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	if len(roles) != 2 || roles[0] != "role:administrator" || roles[1] != "role:user" {
		t.Fatalf("unexpected roles: %v", roles)
	}

	cases := []struct {
		role   string
		path   string
		method string
		want   bool
	}{
		{role: "administrator", path: "/api/v1/admin/orders/:id", method: "PATCH", want: true},
		{role: "administrator", path: "/api/v1/cart", method: "POST", want: true},
		{role: "user", path: "/api/v1/admin/orders", method: "GET", want: false},
		{role: "user", path: "/api/v1/cart", method: "DELETE", want: true},
		{role: "user", path: "/api/v1/promotions", method: "POST", want: true},
	}
	for _, tc := range cases {
		allow, err := svc.EnforceRole(tc.role, tc.path, tc.method)
		if err != nil {
			t.Fatalf("enforce %s %s failed: %v", tc.method, tc.path, err)
		}
		if allow != tc.want {
			t.Fatalf("role=%s %s %s allow=%v want %v", tc.role, tc.method, tc.path, allow, tc.want)
		}
	}
}

func TestBootstrapPromotionAdminOnly(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(false); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(true); err != nil {
		t.Fatalf("bootstrap admin only failed: %v", err)
	}

	allow, err := svc.EnforceRole("user", "/promotions", "POST")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if allow {
		t.Fatalf("user must lose promotion management when admin only")
	}
	allow, err = svc.EnforceRole("administrator", "/promotions", "PATCH")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if !allow {
		t.Fatalf("administrator must manage promotions")
	}
	allow, _ = svc.EnforceRole("user", "/promotions/validate", "POST")
	if !allow {
		t.Fatalf("validation stays open to users")
	}
}

func TestPermittedPrefixesIncludeInherited(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(false); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	userPrefixes, err := svc.PermittedPrefixes("user")
	if err != nil {
		t.Fatalf("user prefixes failed: %v", err)
	}
	if len(userPrefixes) != 3 {
		t.Fatalf("unexpected user prefixes: %v", userPrefixes)
	}

	adminPrefixes, err := svc.PermittedPrefixes("administrator")
	if err != nil {
		t.Fatalf("admin prefixes failed: %v", err)
	}
	want := map[string]bool{"/admin/panel": true, "/cart": true, "/orders": true}
	for _, prefix := range adminPrefixes {
		delete(want, prefix)
	}
	if len(want) != 0 {
		t.Fatalf("admin prefixes missing %v, got %v", want, adminPrefixes)
	}
}
