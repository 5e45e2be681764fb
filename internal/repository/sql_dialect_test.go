package repository

import (
	"testing"
)

func TestBuildKeywordConditionSQLite(t *testing.T) {
	condition, count := buildKeywordConditionByDialect("sqlite", []string{"code", " ", "recipient_name"})
	if count != 2 {
		t.Fatalf("arg count want 2 got %d", count)
	}
	want := "(code LIKE ? OR recipient_name LIKE ?)"
	if condition != want {
		t.Fatalf("condition mismatch, want %s got %s", want, condition)
	}
}

func TestBuildKeywordConditionPostgres(t *testing.T) {
	condition, count := buildKeywordConditionByDialect("postgres", []string{"code"})
	if count != 1 || condition != "(code ILIKE ?)" {
		t.Fatalf("unexpected postgres condition %s (%d)", condition, count)
	}
}

func TestBuildKeywordConditionEmpty(t *testing.T) {
	condition, count := buildKeywordConditionByDialect("sqlite", nil)
	if count != 0 || condition != "" {
		t.Fatalf("expected empty condition, got %q (%d)", condition, count)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}
