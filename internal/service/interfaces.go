package service

import (
	"context"

	"github.com/jafarshop/shopsync/internal/shopify"
)

// ShopifyAPI is the set of Admin API operations the services depend on.
// *shopify.Client satisfies it; tests substitute fakes.
type ShopifyAPI interface {
	FindProductBySKU(ctx context.Context, sku string) (*shopify.Product, error)
	GetProductMetafield(ctx context.Context, productGID, namespace, key string) (string, error)
	ProductSet(ctx context.Context, identifier *shopify.ProductSetIdentifiers, input shopify.ProductSetInput) (string, error)
	MetafieldsSet(ctx context.Context, metafields []shopify.MetafieldsSetInput) error
	StagedUploadsCreate(ctx context.Context, input shopify.StagedUploadInput) (*shopify.StagedTarget, error)
	FileCreate(ctx context.Context, file shopify.FileCreateInput) (string, error)
	ListWebhookSubscriptions(ctx context.Context) ([]shopify.WebhookSubscription, error)
	CreateWebhookSubscription(ctx context.Context, topic, callbackURL string) (string, error)
}

var _ ShopifyAPI = (*shopify.Client)(nil)
