package models

import (
	"encoding/json"
	"testing"
)

func TestMoneyJSONUsesTwoDecimals(t *testing.T) {
	raw, err := json.Marshal(MustMoney("172"))
	if err != nil {
		t.Fatalf("marshal money failed: %v", err)
	}
	if string(raw) != `"172.00"` {
		t.Fatalf("unexpected money json: %s", raw)
	}
}

func TestMoneyUnmarshalAcceptsNumberAndString(t *testing.T) {
	cases := map[string]string{
		`"12.345"`: "12.35",
		`10`:       "10.00",
		`0.1`:      "0.10",
	}
	for input, want := range cases {
		var m Money
		if err := json.Unmarshal([]byte(input), &m); err != nil {
			t.Fatalf("unmarshal %s failed: %v", input, err)
		}
		if m.String() != want {
			t.Fatalf("unmarshal %s got %s want %s", input, m.String(), want)
		}
	}
}

func TestOpenDBRejectsUnknownDriverMySQL(t *testing.T) {
	if _, err := OpenDB("mysql", "", DBOptions{}); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}

func TestInitDefaultAdminIsIdempotent(t *testing.T) {
	db, err := OpenDB("sqlite", "file:models_init_admin?mode=memory&cache=shared", DBOptions{})
	if err != nil {
		t.Fatalf("open db failed: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if err := InitDefaultAdmin(db, "root", "Secret123", ""); err != nil {
		t.Fatalf("init admin failed: %v", err)
	}
	if err := InitDefaultAdmin(db, "root2", "Secret123", ""); err != nil {
		t.Fatalf("second init admin failed: %v", err)
	}
	var count int64
	db.Model(&User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one admin, got %d", count)
	}
}
