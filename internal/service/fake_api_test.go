package service

import (
	"context"

	"github.com/jafarshop/shopsync/internal/shopify"
)

// fakeShopifyAPI records calls in order and serves canned responses
type fakeShopifyAPI struct {
	calls []string

	// product metafield values keyed by product GID
	metafieldValues map[string]string
	metafieldErr    error

	// products keyed by SKU for FindProductBySKU
	productsBySKU map[string]*shopify.Product
	findErr       error

	productSetIdentifiers []*shopify.ProductSetIdentifiers
	productSetInputs      []shopify.ProductSetInput
	productSetErr         error
	productSetGID         string

	metafieldsSetInputs [][]shopify.MetafieldsSetInput
	metafieldsSetErr    error

	stagedUploadInputs []shopify.StagedUploadInput
	stagedUploadErr    error

	fileCreateInputs []shopify.FileCreateInput
	fileCreateErr    error
	fileGID          string

	subscriptions []shopify.WebhookSubscription
	createdSubs   []string
}

func newFakeShopifyAPI() *fakeShopifyAPI {
	return &fakeShopifyAPI{
		metafieldValues: map[string]string{},
		productsBySKU:   map[string]*shopify.Product{},
		productSetGID:   "gid://shopify/Product/999",
		fileGID:         "gid://shopify/GenericFile/42",
	}
}

func (f *fakeShopifyAPI) FindProductBySKU(ctx context.Context, sku string) (*shopify.Product, error) {
	f.calls = append(f.calls, "findProductBySKU")
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.productsBySKU[sku], nil
}

func (f *fakeShopifyAPI) GetProductMetafield(ctx context.Context, productGID, namespace, key string) (string, error) {
	f.calls = append(f.calls, "getProductMetafield")
	if f.metafieldErr != nil {
		return "", f.metafieldErr
	}
	return f.metafieldValues[productGID], nil
}

func (f *fakeShopifyAPI) ProductSet(ctx context.Context, identifier *shopify.ProductSetIdentifiers, input shopify.ProductSetInput) (string, error) {
	f.calls = append(f.calls, "productSet")
	f.productSetIdentifiers = append(f.productSetIdentifiers, identifier)
	f.productSetInputs = append(f.productSetInputs, input)
	if f.productSetErr != nil {
		return "", f.productSetErr
	}
	return f.productSetGID, nil
}

func (f *fakeShopifyAPI) MetafieldsSet(ctx context.Context, metafields []shopify.MetafieldsSetInput) error {
	f.calls = append(f.calls, "metafieldsSet")
	f.metafieldsSetInputs = append(f.metafieldsSetInputs, metafields)
	return f.metafieldsSetErr
}

func (f *fakeShopifyAPI) StagedUploadsCreate(ctx context.Context, input shopify.StagedUploadInput) (*shopify.StagedTarget, error) {
	f.calls = append(f.calls, "stagedUploadsCreate")
	f.stagedUploadInputs = append(f.stagedUploadInputs, input)
	if f.stagedUploadErr != nil {
		return nil, f.stagedUploadErr
	}
	return &shopify.StagedTarget{
		ResourceURL: "https://storage.example.com/tmp/report.json",
		URL:         "https://storage.example.com/upload",
	}, nil
}

func (f *fakeShopifyAPI) FileCreate(ctx context.Context, file shopify.FileCreateInput) (string, error) {
	f.calls = append(f.calls, "fileCreate")
	f.fileCreateInputs = append(f.fileCreateInputs, file)
	if f.fileCreateErr != nil {
		return "", f.fileCreateErr
	}
	return f.fileGID, nil
}

func (f *fakeShopifyAPI) ListWebhookSubscriptions(ctx context.Context) ([]shopify.WebhookSubscription, error) {
	f.calls = append(f.calls, "listWebhookSubscriptions")
	return f.subscriptions, nil
}

func (f *fakeShopifyAPI) CreateWebhookSubscription(ctx context.Context, topic, callbackURL string) (string, error) {
	f.calls = append(f.calls, "createWebhookSubscription")
	f.createdSubs = append(f.createdSubs, topic+" "+callbackURL)
	return "gid://shopify/WebhookSubscription/1", nil
}
