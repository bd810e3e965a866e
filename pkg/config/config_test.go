package config

import (
	"testing"
	"time"

	"github.com/rnitealiii/EliteMart/pkg/enums"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Env != AppEnvDev || !cfg.App.IsDev() {
		t.Fatalf("expected dev environment, got %q", cfg.App.Env)
	}
	if cfg.Catalog.URL == "" {
		t.Fatal("expected a default catalog url")
	}
	if cfg.Catalog.Timeout != 10*time.Second {
		t.Fatalf("unexpected catalog timeout: %s", cfg.Catalog.Timeout)
	}
	if cfg.Storage.ParsedBackend() != enums.StorageFile {
		t.Fatalf("unexpected default backend: %s", cfg.Storage.ParsedBackend())
	}
	if cfg.Checkout.WalletDelay != 2*time.Second {
		t.Fatalf("unexpected wallet delay: %s", cfg.Checkout.WalletDelay)
	}
	if cfg.Checkout.QRDelay != 3*time.Second {
		t.Fatalf("unexpected qr delay: %s", cfg.Checkout.QRDelay)
	}
	if cfg.Notify.DismissAfter != 3*time.Second {
		t.Fatalf("unexpected dismiss delay: %s", cfg.Notify.DismissAfter)
	}
	if cfg.Ops.Addr != "" {
		t.Fatalf("ops listener should be disabled by default, got %q", cfg.Ops.Addr)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ELITEMART_APP_ENV", "prod")
	t.Setenv("ELITEMART_CATALOG_URL", "https://cdn.example.com/products.json")
	t.Setenv("ELITEMART_STORAGE_BACKEND", "sqlite")
	t.Setenv("ELITEMART_STORAGE_PATH", "/var/lib/elitemart/store.db")
	t.Setenv("ELITEMART_CHECKOUT_WALLET_DELAY", "50ms")
	t.Setenv("ELITEMART_OPS_ADDR", ":9091")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.App.IsProd() {
		t.Fatalf("expected prod environment, got %q", cfg.App.Env)
	}
	if cfg.Catalog.URL != "https://cdn.example.com/products.json" {
		t.Fatalf("unexpected catalog url: %q", cfg.Catalog.URL)
	}
	if cfg.Storage.ParsedBackend() != enums.StorageSQLite {
		t.Fatalf("unexpected backend: %s", cfg.Storage.ParsedBackend())
	}
	if cfg.Checkout.WalletDelay != 50*time.Millisecond {
		t.Fatalf("unexpected wallet delay: %s", cfg.Checkout.WalletDelay)
	}
	if cfg.Ops.Addr != ":9091" {
		t.Fatalf("unexpected ops addr: %q", cfg.Ops.Addr)
	}
}

func TestLoad_RejectsUnknownStorageBackend(t *testing.T) {
	t.Setenv("ELITEMART_STORAGE_BACKEND", "dynamo")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown storage backend")
	}
}

func TestStorageConfig_ParsedBackendFallsBackToFile(t *testing.T) {
	cfg := StorageConfig{Backend: "  SQLite "}
	if cfg.ParsedBackend() != enums.StorageSQLite {
		t.Fatalf("expected sqlite, got %s", cfg.ParsedBackend())
	}

	cfg = StorageConfig{Backend: "bogus"}
	if cfg.ParsedBackend() != enums.StorageFile {
		t.Fatalf("expected file fallback, got %s", cfg.ParsedBackend())
	}
}
