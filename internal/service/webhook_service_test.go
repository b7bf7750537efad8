package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/shopsync/internal/shopify"
)

func TestEnsureOrdersPaidSubscriptionReusesExisting(t *testing.T) {
	api := newFakeShopifyAPI()
	api.subscriptions = []shopify.WebhookSubscription{
		{ID: "gid://shopify/WebhookSubscription/7", Topic: "ORDERS_PAID", CallbackURL: "https://sync.jafarshop.com/webhooks/orders_paid"},
	}
	svc := NewWebhookService(api, "https://sync.jafarshop.com", zap.NewNop())

	id, err := svc.EnsureOrdersPaidSubscription(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/WebhookSubscription/7", id)
	assert.Empty(t, api.createdSubs)
}

func TestEnsureOrdersPaidSubscriptionCreatesWhenMissing(t *testing.T) {
	api := newFakeShopifyAPI()
	// same topic, different callback URL: must not be reused
	api.subscriptions = []shopify.WebhookSubscription{
		{ID: "gid://shopify/WebhookSubscription/7", Topic: "ORDERS_PAID", CallbackURL: "https://old.jafarshop.com/webhooks/orders_paid"},
	}
	svc := NewWebhookService(api, "https://sync.jafarshop.com", zap.NewNop())

	id, err := svc.EnsureOrdersPaidSubscription(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "gid://shopify/WebhookSubscription/1", id)
	require.Len(t, api.createdSubs, 1)
	assert.Equal(t, "ORDERS_PAID https://sync.jafarshop.com/webhooks/orders_paid", api.createdSubs[0])
}
