package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rnitealiii/EliteMart/pkg/enums"
)

// EnvPrefix namespaces every environment variable read by the storefront.
const EnvPrefix = "ELITEMART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	Catalog  CatalogConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Checkout CheckoutConfig
	Notify   NotifyConfig
	Ops      OpsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"ELITEMART_APP_ENV" default:"dev"`
	LogLevel string `envconfig:"ELITEMART_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type CatalogConfig struct {
	URL     string        `envconfig:"ELITEMART_CATALOG_URL" default:"http://localhost:8080/products.json"`
	Timeout time.Duration `envconfig:"ELITEMART_CATALOG_TIMEOUT" default:"10s"`
}

type StorageConfig struct {
	Backend string `envconfig:"ELITEMART_STORAGE_BACKEND" default:"file"`
	// Path locates the JSON file (file backend) or database file (sqlite backend).
	Path string `envconfig:"ELITEMART_STORAGE_PATH" default:"elitemart-store.json"`
}

func (s StorageConfig) ParsedBackend() enums.StorageBackend {
	backend, err := enums.ParseStorageBackend(strings.ToLower(strings.TrimSpace(s.Backend)))
	if err != nil {
		return enums.StorageFile
	}
	return backend
}

func (s StorageConfig) validate() error {
	if _, err := enums.ParseStorageBackend(strings.ToLower(strings.TrimSpace(s.Backend))); err != nil {
		return fmt.Errorf("storage config: %w", err)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"ELITEMART_REDIS_URL"`
	Address      string        `envconfig:"ELITEMART_REDIS_ADDR"`
	Password     string        `envconfig:"ELITEMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"ELITEMART_REDIS_DB" default:"0"`
	DialTimeout  time.Duration `envconfig:"ELITEMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ELITEMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ELITEMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CheckoutConfig struct {
	// WhatsAppNumber is the delivery-chat target for the handoff branch.
	WhatsAppNumber string        `envconfig:"ELITEMART_WHATSAPP_NUMBER" default:"03148326903"`
	WalletDelay    time.Duration `envconfig:"ELITEMART_CHECKOUT_WALLET_DELAY" default:"2s"`
	QRDelay        time.Duration `envconfig:"ELITEMART_CHECKOUT_QR_DELAY" default:"3s"`
}

type NotifyConfig struct {
	DismissAfter time.Duration `envconfig:"ELITEMART_NOTIFY_DISMISS_AFTER" default:"3s"`
}

type OpsConfig struct {
	// Addr enables the read-only ops listener when non-empty.
	Addr string `envconfig:"ELITEMART_OPS_ADDR"`
}
