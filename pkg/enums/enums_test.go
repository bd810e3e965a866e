package enums

import "testing"

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey("price-asc")
	if err != nil || key != SortPriceAsc {
		t.Fatalf("unexpected result: %v, %v", key, err)
	}

	// Empty input means no sorting, not an error.
	key, err = ParseSortKey("")
	if err != nil || key != SortNone {
		t.Fatalf("unexpected result: %v, %v", key, err)
	}

	if _, err := ParseSortKey("price"); err == nil {
		t.Fatal("expected error for unknown sort key")
	}
}

func TestParseCheckoutStage(t *testing.T) {
	stage, err := ParseCheckoutStage("payment_select")
	if err != nil || stage != StagePaymentSelect {
		t.Fatalf("unexpected result: %v, %v", stage, err)
	}
	if CheckoutStage("checkout").IsValid() {
		t.Fatal("expected unknown stage to be invalid")
	}
}

func TestPaymentMethodDisplayName(t *testing.T) {
	cases := map[PaymentMethod]string{
		PaymentEasyPaisa: "EasyPaisa",
		PaymentJazzCash:  "JazzCash",
		PaymentQR:        "QR",
		PaymentGeneric:   "Card",
	}
	for method, want := range cases {
		if got := method.DisplayName(); got != want {
			t.Fatalf("method %s: expected %q, got %q", method, want, got)
		}
	}
}

func TestParseStorageBackend(t *testing.T) {
	backend, err := ParseStorageBackend("redis")
	if err != nil || backend != StorageRedis {
		t.Fatalf("unexpected result: %v, %v", backend, err)
	}
	if _, err := ParseStorageBackend("postgres"); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
}
