package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/shopsync/internal/domain"
	apperrors "github.com/jafarshop/shopsync/pkg/errors"
)

func testOrder() domain.Order {
	return domain.Order{
		ID:                450789469,
		OrderNumber:       1001,
		CreatedAt:         "2025-06-01T10:00:00Z",
		Email:             "jane@example.com",
		Customer:          domain.Customer{FirstName: "Jane", LastName: "Doe"},
		AdminGraphQLAPIID: "gid://shopify/Order/450789469",
		LineItems: []domain.LineItem{
			{ID: 1, ProductID: 100, Title: "Desk", Quantity: 1},
			{ID: 2, ProductID: 200, Title: "Chair", Quantity: 2},
		},
	}
}

func TestProcessOrderInvalidPayloadMakesNoAPICalls(t *testing.T) {
	tests := []struct {
		name  string
		order domain.Order
	}{
		{"missing id", domain.Order{OrderNumber: 1001, LineItems: []domain.LineItem{}}},
		{"missing order number", domain.Order{ID: 1, LineItems: []domain.LineItem{}}},
		{"missing line items", domain.Order{ID: 1, OrderNumber: 1001}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeShopifyAPI()
			svc := NewDeliveryDateService(api, "custom", zap.NewNop())

			outcome, err := svc.ProcessOrder(context.Background(), tt.order)

			require.NoError(t, err)
			assert.Equal(t, OutcomeInvalid, outcome)
			assert.Empty(t, api.calls)
		})
	}
}

func TestProcessOrderNoEstimatesSkipsUploadAndAttach(t *testing.T) {
	api := newFakeShopifyAPI()
	svc := NewDeliveryDateService(api, "custom", zap.NewNop())

	outcome, err := svc.ProcessOrder(context.Background(), testOrder())

	require.NoError(t, err)
	assert.Equal(t, OutcomeNoEstimates, outcome)
	assert.Equal(t, []string{"getProductMetafield", "getProductMetafield"}, api.calls)
}

func TestProcessOrderUploadsAndAttachesInOrder(t *testing.T) {
	api := newFakeShopifyAPI()
	api.metafieldValues["gid://shopify/Product/100"] = "5"
	svc := NewDeliveryDateService(api, "custom", zap.NewNop())

	outcome, err := svc.ProcessOrder(context.Background(), testOrder())

	require.NoError(t, err)
	assert.Equal(t, OutcomeProcessed, outcome)
	assert.Equal(t, []string{
		"getProductMetafield",
		"getProductMetafield",
		"stagedUploadsCreate",
		"fileCreate",
		"metafieldsSet",
	}, api.calls)

	require.Len(t, api.stagedUploadInputs, 1)
	assert.Contains(t, api.stagedUploadInputs[0].Filename, "estimated_delivery_450789469_")
	assert.Equal(t, "application/json", api.stagedUploadInputs[0].MimeType)
	assert.Equal(t, "FILE", api.stagedUploadInputs[0].Resource)

	require.Len(t, api.fileCreateInputs, 1)
	assert.Equal(t, "https://storage.example.com/tmp/report.json", api.fileCreateInputs[0].OriginalSource)

	require.Len(t, api.metafieldsSetInputs, 1)
	mf := api.metafieldsSetInputs[0][0]
	assert.Equal(t, "gid://shopify/Order/450789469", mf.OwnerID)
	assert.Equal(t, "custom", mf.Namespace)
	assert.Equal(t, MetafieldFileKey, mf.Key)
	assert.Equal(t, "file_reference", mf.Type)
	assert.Equal(t, "gid://shopify/GenericFile/42", mf.Value)
}

func TestProcessOrderSkipsUnresolvableItemsWithoutAborting(t *testing.T) {
	api := newFakeShopifyAPI()
	api.metafieldValues["gid://shopify/Product/100"] = "not-a-number"
	api.metafieldValues["gid://shopify/Product/200"] = "7"
	svc := NewDeliveryDateService(api, "custom", zap.NewNop())

	outcome, err := svc.ProcessOrder(context.Background(), testOrder())

	require.NoError(t, err)
	assert.Equal(t, OutcomeProcessed, outcome)
	// only product 200 made it into the report
	assert.Len(t, api.fileCreateInputs, 1)
}

func TestProcessOrderUploadFailureSurfacesShopifyError(t *testing.T) {
	api := newFakeShopifyAPI()
	api.metafieldValues["gid://shopify/Product/100"] = "5"
	api.stagedUploadErr = &apperrors.ErrShopify{Messages: []string{"failed to get staged upload URL"}}
	svc := NewDeliveryDateService(api, "custom", zap.NewNop())

	_, err := svc.ProcessOrder(context.Background(), testOrder())

	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to get staged upload URL")
	assert.NotContains(t, api.calls, "fileCreate")
	assert.NotContains(t, api.calls, "metafieldsSet")
}

func TestProcessBatchIsolatesFailures(t *testing.T) {
	api := newFakeShopifyAPI()
	api.metafieldValues["gid://shopify/Product/100"] = "5"
	api.fileCreateErr = &apperrors.ErrShopify{Messages: []string{"files.0: rejected"}}
	svc := NewDeliveryDateService(api, "custom", zap.NewNop())

	// both orders fail at fileCreate but the batch still visits both
	svc.ProcessBatch(context.Background(), []domain.Order{testOrder(), testOrder()})

	assert.Len(t, api.fileCreateInputs, 2)
}
