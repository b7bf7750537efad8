package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jafarshop/shopsync/pkg/errors"
)

func TestLoadFailsFastWhenShopifyCredentialsMissing(t *testing.T) {
	t.Setenv("SHOPIFY_SHOP_DOMAIN", "")
	t.Setenv("SHOPIFY_ACCESS_TOKEN", "")

	_, err := Load()

	var cfgErr *apperrors.ErrConfiguration
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Missing, "SHOPIFY_SHOP_DOMAIN")
	assert.Contains(t, cfgErr.Missing, "SHOPIFY_ACCESS_TOKEN")
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("SHOPIFY_SHOP_DOMAIN", "jafarshop.myshopify.com")
	t.Setenv("SHOPIFY_ACCESS_TOKEN", "shpat_test")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "custom", cfg.MetafieldNamespace)
	assert.NotEmpty(t, cfg.Shopify.APIVersion)
}

func TestLoadTrimsValues(t *testing.T) {
	t.Setenv("SHOPIFY_SHOP_DOMAIN", "  jafarshop.myshopify.com ")
	t.Setenv("SHOPIFY_ACCESS_TOKEN", " shpat_test ")
	t.Setenv("APP_HOST", "https://sync.jafarshop.com/")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "jafarshop.myshopify.com", cfg.Shopify.ShopDomain)
	assert.Equal(t, "shpat_test", cfg.Shopify.AccessToken)
	assert.Equal(t, "https://sync.jafarshop.com", cfg.AppHost)
}

func TestValidateWebhookRequiresSecretAndHost(t *testing.T) {
	cfg := &Config{}

	err := cfg.ValidateWebhook()

	var cfgErr *apperrors.ErrConfiguration
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Missing, "SHOPIFY_WEBHOOK_SECRET")
	assert.Contains(t, cfgErr.Missing, "APP_HOST")

	cfg.WebhookSecret = "secret"
	cfg.AppHost = "https://sync.jafarshop.com"
	assert.NoError(t, cfg.ValidateWebhook())
}
