package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Configはアプリ全体の設定
type Config struct {
	Port        string // サーバーポート（8080）
	Environment string // development/production
	LogLevel    string

	Backend  BackendConfig
	Catalog  CatalogConfig
	Storage  StorageConfig
	Session  SessionConfig
	Checkout CheckoutConfig

	ToastTTL time.Duration // 通知の自動削除までの時間
}

// REST バックエンド
type BackendConfig struct {
	BaseURL      string // API_BASE_URL
	AssetBaseURL string // 画像URLの前に付ける
	Timeout      time.Duration
}

type CatalogConfig struct {
	Source string // static / remote
	TTL    time.Duration
}

// カート保存先
type StorageConfig struct {
	Driver  string // memory / redis / postgres
	CartKey string // localStorageのキー名

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DatabaseURL string
	Postgres    PostgresConfig
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SessionConfig struct {
	Secret  string
	IdleTTL time.Duration
	Secure  bool
}

type CheckoutConfig struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

const (
	CatalogSourceStatic = "static"
	CatalogSourceRemote = "remote"

	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Loadは .env（任意）と環境変数から読む
func Load() (*Config, error) {
	// .envは無くてもよい
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Backend: BackendConfig{
			BaseURL:      strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
			AssetBaseURL: strings.TrimRight(v.GetString("ASSET_BASE_URL"), "/"),
			Timeout:      v.GetDuration("BACKEND_TIMEOUT"),
		},
		Catalog: CatalogConfig{
			Source: strings.ToLower(v.GetString("CATALOG_SOURCE")),
			TTL:    v.GetDuration("CATALOG_TTL"),
		},
		Storage: StorageConfig{
			Driver:        strings.ToLower(v.GetString("STORAGE_DRIVER")),
			CartKey:       v.GetString("CART_STORAGE_KEY"),
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
			DatabaseURL:   v.GetString("DATABASE_URL"),
			Postgres: PostgresConfig{
				Host:     v.GetString("POSTGRES_HOST"),
				Port:     v.GetString("POSTGRES_PORT"),
				User:     v.GetString("POSTGRES_USER"),
				Password: v.GetString("POSTGRES_PASSWORD"),
				DBName:   v.GetString("POSTGRES_DB"),
				SSLMode:  v.GetString("POSTGRES_SSLMODE"),
			},
		},
		Session: SessionConfig{
			Secret:  v.GetString("SESSION_SECRET"),
			IdleTTL: v.GetDuration("SESSION_IDLE_TTL"),
			Secure:  v.GetBool("COOKIE_SECURE"),
		},
		ToastTTL: v.GetDuration("TOAST_TTL"),
	}

	threshold, err := decimal.NewFromString(v.GetString("FREE_SHIPPING_THRESHOLD"))
	if err != nil {
		return nil, fmt.Errorf("FREE_SHIPPING_THRESHOLD must be number: %w", err)
	}
	fee, err := decimal.NewFromString(v.GetString("FLAT_SHIPPING_FEE"))
	if err != nil {
		return nil, fmt.Errorf("FLAT_SHIPPING_FEE must be number: %w", err)
	}
	cfg.Checkout = CheckoutConfig{FreeShippingThreshold: threshold, FlatShippingFee: fee}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("API_BASE_URL", "")
	v.SetDefault("ASSET_BASE_URL", "")
	v.SetDefault("BACKEND_TIMEOUT", "30s")

	v.SetDefault("CATALOG_SOURCE", CatalogSourceStatic)
	v.SetDefault("CATALOG_TTL", "5m")

	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("CART_STORAGE_KEY", "bunaiCart")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_DB", "storefront")
	v.SetDefault("POSTGRES_SSLMODE", "disable")

	v.SetDefault("SESSION_SECRET", "dev_secret_change_me")
	v.SetDefault("SESSION_IDLE_TTL", "24h")
	v.SetDefault("COOKIE_SECURE", false)

	v.SetDefault("TOAST_TTL", "2s")
	v.SetDefault("FREE_SHIPPING_THRESHOLD", "2000")
	v.SetDefault("FLAT_SHIPPING_FEE", "100")
}

// 必須チェック
func (c *Config) validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}

	switch c.Catalog.Source {
	case CatalogSourceStatic:
	case CatalogSourceRemote:
		if c.Backend.BaseURL == "" {
			return errors.New("API_BASE_URL is required when CATALOG_SOURCE=remote")
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE must be static or remote: %q", c.Catalog.Source)
	}

	switch c.Storage.Driver {
	case StorageMemory, StorageRedis, StoragePostgres:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be memory, redis or postgres: %q", c.Storage.Driver)
	}
	if c.Storage.CartKey == "" {
		return errors.New("CART_STORAGE_KEY is required")
	}

	if c.Environment == "production" && c.Session.Secret == "dev_secret_change_me" {
		return errors.New("SESSION_SECRET is required in production")
	}
	if c.ToastTTL <= 0 {
		return errors.New("TOAST_TTL must be > 0")
	}
	if c.Backend.Timeout <= 0 {
		return errors.New("BACKEND_TIMEOUT must be > 0")
	}
	if c.Checkout.FreeShippingThreshold.IsNegative() || c.Checkout.FlatShippingFee.IsNegative() {
		return errors.New("shipping amounts must be >= 0")
	}
	return nil
}

// BackendEnabled はREST バックエンドが設定されているか。
func (c *Config) BackendEnabled() bool {
	return c.Backend.BaseURL != ""
}
