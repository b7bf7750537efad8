package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	apperrors "github.com/jafarshop/shopsync/pkg/errors"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	Shopify ShopifyConfig

	// AppHost is the externally reachable base URL used as the webhook
	// callback host, e.g. https://shop-sync.jafarshop.com
	AppHost string

	// WebhookSecret verifies incoming Shopify webhooks (X-Shopify-Hmac-Sha256)
	WebhookSecret string

	// MetafieldNamespace is the namespace used for delivery metafields on
	// products and orders.
	MetafieldNamespace string
}

type ShopifyConfig struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.AutomaticEnv()

	// .env file is optional, env vars win
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Shopify: ShopifyConfig{
			ShopDomain:  strings.TrimSpace(getEnvOrViper("SHOPIFY_SHOP_DOMAIN", "")),
			AccessToken: strings.TrimSpace(getEnvOrViper("SHOPIFY_ACCESS_TOKEN", "")),
			APIVersion:  getEnvOrViper("SHOPIFY_API_VERSION", "2025-04"),
		},
		AppHost:            strings.TrimSuffix(strings.TrimSpace(getEnvOrViper("APP_HOST", "")), "/"),
		WebhookSecret:      strings.TrimSpace(getEnvOrViper("SHOPIFY_WEBHOOK_SECRET", "")),
		MetafieldNamespace: getEnvOrViper("METAFIELD_NAMESPACE", "custom"),
	}

	var missing []string
	if cfg.Shopify.ShopDomain == "" {
		missing = append(missing, "SHOPIFY_SHOP_DOMAIN")
	}
	if cfg.Shopify.AccessToken == "" {
		missing = append(missing, "SHOPIFY_ACCESS_TOKEN")
	}
	if len(missing) > 0 {
		return nil, &apperrors.ErrConfiguration{Missing: missing}
	}

	return cfg, nil
}

// ValidateWebhook checks the additional settings the webhook server needs.
// The sync CLI does not require them, so they are not enforced in Load.
func (c *Config) ValidateWebhook() error {
	var missing []string
	if c.WebhookSecret == "" {
		missing = append(missing, "SHOPIFY_WEBHOOK_SECRET")
	}
	if c.AppHost == "" {
		missing = append(missing, "APP_HOST")
	}
	if len(missing) > 0 {
		return &apperrors.ErrConfiguration{Missing: missing}
	}
	return nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
