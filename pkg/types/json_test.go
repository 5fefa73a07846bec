package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestJSONMapScanAndValue(t *testing.T) {
	m := JSONMap{"items": map[string]any{"p1": float64(2)}}
	raw, err := m.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var decoded JSONMap
	if err := decoded.Scan(raw); err != nil {
		t.Fatalf("scan: %v", err)
	}
	items, ok := decoded["items"].(map[string]any)
	if !ok || items["p1"] != float64(2) {
		t.Fatalf("unexpected decoded map %v", decoded)
	}

	var empty JSONMap
	if v, _ := empty.Value(); v != "{}" {
		t.Fatalf("nil map should store {}, got %v", v)
	}
	if err := empty.Scan(nil); err != nil || empty == nil {
		t.Fatalf("scan nil should yield empty map, got %v %v", empty, err)
	}
}

func TestStringListScan(t *testing.T) {
	var list StringList
	if err := list.Scan([]byte(`["a.png","b.png"]`)); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(list) != 2 || list[1] != "b.png" {
		t.Fatalf("unexpected list %v", list)
	}
	if err := list.Scan(42); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}

func TestCouponSnapshotJSON(t *testing.T) {
	var zero CouponSnapshot
	raw, err := json.Marshal(zero)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != "{}" {
		t.Fatalf("expected empty object, got %s", raw)
	}
	if !zero.IsZero() {
		t.Fatal("zero snapshot should report IsZero")
	}

	pct := decimal.NewFromInt(10)
	snap := CouponSnapshot{Code: "SAVE10", Discount: &pct, Description: "10% off"}
	raw, err = json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"code":"SAVE10","discount":"10","description":"10% off"}` {
		t.Fatalf("unexpected json %s", raw)
	}
}
