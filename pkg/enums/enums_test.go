package enums

import "testing"

func TestParseStoreStatus(t *testing.T) {
	for _, raw := range []string{"pending", "approved", "rejected"} {
		got, err := ParseStoreStatus(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got.String() != raw {
			t.Fatalf("expected %q got %q", raw, got)
		}
	}
	if _, err := ParseStoreStatus("APPROVED"); err == nil {
		t.Fatal("store status parsing is case-sensitive")
	}
	if _, err := ParseStoreStatus("suspended"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestStoreStatusIsActive(t *testing.T) {
	if !StoreStatusApproved.IsActive() {
		t.Fatal("approved stores are active")
	}
	if StoreStatusPending.IsActive() || StoreStatusRejected.IsActive() {
		t.Fatal("only approved stores are active")
	}
}

func TestParsePaymentMethodNormalizesCase(t *testing.T) {
	tests := map[string]PaymentMethod{
		"cod":      PaymentMethodCOD,
		" Stripe ": PaymentMethodStripe,
		"STRIPE":   PaymentMethodStripe,
	}
	for raw, want := range tests {
		got, err := ParsePaymentMethod(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %s got %s", raw, want, got)
		}
	}
	if _, err := ParsePaymentMethod("paypal"); err == nil {
		t.Fatal("expected error for unsupported method")
	}
	if !PaymentMethodStripe.SettlesAtCheckout() || PaymentMethodCOD.SettlesAtCheckout() {
		t.Fatal("only stripe settles at checkout")
	}
}

func TestParseUserRoleDefaultsToBuyer(t *testing.T) {
	if ParseUserRole("") != UserRoleBuyer {
		t.Fatal("empty role should be buyer")
	}
	if ParseUserRole("superuser") != UserRoleBuyer {
		t.Fatal("unknown role should be buyer")
	}
	if ParseUserRole("admin") != UserRoleAdmin {
		t.Fatal("admin should parse")
	}
}

func TestParseOrderStatus(t *testing.T) {
	if _, err := ParseOrderStatus("ORDER_PLACED"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if OrderStatus("LOST").IsValid() {
		t.Fatal("unknown status must be invalid")
	}
}
