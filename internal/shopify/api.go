package shopify

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/jafarshop/shopsync/pkg/errors"
)

// Product is the subset of product fields the sync engine needs
type Product struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

// WebhookSubscription is one existing subscription on the shop
type WebhookSubscription struct {
	ID          string
	Topic       string
	CallbackURL string
}

// StagedTarget is a reserved upload location
type StagedTarget struct {
	ResourceURL string `json:"resourceUrl"`
	URL         string `json:"url"`
}

// FindProductBySKU looks a product up by exact SKU search. Returns nil when
// no product matches. SKU uniqueness is not guaranteed upstream; the first
// match wins and additional matches are logged.
func (c *Client) FindProductBySKU(ctx context.Context, sku string) (*Product, error) {
	resp, err := c.Execute(ctx, ProductBySKUQuery, map[string]interface{}{
		"query": fmt.Sprintf("sku:%s", sku),
	})
	if err != nil {
		return nil, err
	}
	if err := AggregateErrors(resp); err != nil {
		return nil, err
	}

	var result struct {
		Products struct {
			Edges []struct {
				Node Product `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, &apperrors.ErrTransport{Op: "parse products response", Err: err}
	}

	edges := result.Products.Edges
	if len(edges) == 0 {
		return nil, nil
	}
	if len(edges) > 1 {
		c.logger.Warn("Multiple products matched SKU, using first match",
			zap.String("sku", sku),
			zap.Int("matches", len(edges)),
		)
	}
	product := edges[0].Node
	return &product, nil
}

// GetProductMetafield reads a metafield value off a product. Returns "" when
// the product or metafield does not exist.
func (c *Client) GetProductMetafield(ctx context.Context, productGID, namespace, key string) (string, error) {
	resp, err := c.Execute(ctx, ProductMetafieldQuery, map[string]interface{}{
		"namespace": namespace,
		"key":       key,
		"id":        productGID,
	})
	if err != nil {
		return "", err
	}
	if err := AggregateErrors(resp); err != nil {
		return "", err
	}

	var result struct {
		Product *struct {
			Metafield *struct {
				Value string `json:"value"`
			} `json:"metafield"`
		} `json:"product"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", &apperrors.ErrTransport{Op: "parse metafield response", Err: err}
	}
	if result.Product == nil || result.Product.Metafield == nil {
		return "", nil
	}
	return result.Product.Metafield.Value, nil
}

// ProductSet runs the idempotent upsert. identifier nil means create, an
// id-bearing identifier means update. Returns the product GID.
func (c *Client) ProductSet(ctx context.Context, identifier *ProductSetIdentifiers, input ProductSetInput) (string, error) {
	variables := map[string]interface{}{
		"input": input,
	}
	if identifier != nil {
		variables["identifier"] = identifier
	}
	resp, err := c.Execute(ctx, ProductSetMutation, variables)
	if err != nil {
		return "", err
	}

	var result struct {
		ProductSet struct {
			Product    *Product    `json:"product"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"productSet"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", &apperrors.ErrTransport{Op: "parse productSet response", Err: err}
	}
	if err := AggregateErrors(resp, result.ProductSet.UserErrors); err != nil {
		return "", err
	}
	if result.ProductSet.Product == nil {
		return "", &apperrors.ErrShopify{Messages: []string{"productSet returned no product"}}
	}
	return result.ProductSet.Product.ID, nil
}

// MetafieldsSet assigns metafields on their owners
func (c *Client) MetafieldsSet(ctx context.Context, metafields []MetafieldsSetInput) error {
	resp, err := c.Execute(ctx, MetafieldsSetMutation, map[string]interface{}{
		"metafields": metafields,
	})
	if err != nil {
		return err
	}

	var result struct {
		MetafieldsSet struct {
			UserErrors []UserError `json:"userErrors"`
		} `json:"metafieldsSet"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return &apperrors.ErrTransport{Op: "parse metafieldsSet response", Err: err}
	}
	return AggregateErrors(resp, result.MetafieldsSet.UserErrors)
}

// StagedUploadsCreate reserves an upload target. A response with no target is
// reported as a Shopify error since the follow-up fileCreate cannot proceed.
func (c *Client) StagedUploadsCreate(ctx context.Context, input StagedUploadInput) (*StagedTarget, error) {
	resp, err := c.Execute(ctx, StagedUploadsCreateMutation, map[string]interface{}{
		"input": []StagedUploadInput{input},
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		StagedUploadsCreate struct {
			StagedTargets []StagedTarget `json:"stagedTargets"`
			UserErrors    []UserError    `json:"userErrors"`
		} `json:"stagedUploadsCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, &apperrors.ErrTransport{Op: "parse stagedUploadsCreate response", Err: err}
	}
	if err := AggregateErrors(resp, result.StagedUploadsCreate.UserErrors); err != nil {
		return nil, err
	}
	if len(result.StagedUploadsCreate.StagedTargets) == 0 {
		return nil, &apperrors.ErrShopify{Messages: []string{"failed to get staged upload URL"}}
	}
	return &result.StagedUploadsCreate.StagedTargets[0], nil
}

// FileCreate registers a staged resource as a file record and returns the
// file GID.
func (c *Client) FileCreate(ctx context.Context, file FileCreateInput) (string, error) {
	resp, err := c.Execute(ctx, FileCreateMutation, map[string]interface{}{
		"files": []FileCreateInput{file},
	})
	if err != nil {
		return "", err
	}

	var result struct {
		FileCreate struct {
			Files []struct {
				ID  string `json:"id"`
				URL string `json:"url"`
			} `json:"files"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"fileCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", &apperrors.ErrTransport{Op: "parse fileCreate response", Err: err}
	}
	if err := AggregateErrors(resp, result.FileCreate.UserErrors); err != nil {
		return "", err
	}
	if len(result.FileCreate.Files) == 0 {
		return "", &apperrors.ErrShopify{Messages: []string{"fileCreate returned no files"}}
	}
	return result.FileCreate.Files[0].ID, nil
}

// ListWebhookSubscriptions returns the shop's HTTP webhook subscriptions
func (c *Client) ListWebhookSubscriptions(ctx context.Context) ([]WebhookSubscription, error) {
	resp, err := c.Execute(ctx, WebhookSubscriptionsQuery, nil)
	if err != nil {
		return nil, err
	}
	if err := AggregateErrors(resp); err != nil {
		return nil, err
	}

	var result struct {
		WebhookSubscriptions struct {
			Edges []struct {
				Node struct {
					ID       string `json:"id"`
					Topic    string `json:"topic"`
					Endpoint struct {
						CallbackURL string `json:"callbackUrl"`
					} `json:"endpoint"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"webhookSubscriptions"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, &apperrors.ErrTransport{Op: "parse webhookSubscriptions response", Err: err}
	}

	subs := make([]WebhookSubscription, 0, len(result.WebhookSubscriptions.Edges))
	for _, edge := range result.WebhookSubscriptions.Edges {
		subs = append(subs, WebhookSubscription{
			ID:          edge.Node.ID,
			Topic:       edge.Node.Topic,
			CallbackURL: edge.Node.Endpoint.CallbackURL,
		})
	}
	return subs, nil
}

// CreateWebhookSubscription subscribes callbackURL to topic and returns the
// subscription GID.
func (c *Client) CreateWebhookSubscription(ctx context.Context, topic, callbackURL string) (string, error) {
	resp, err := c.Execute(ctx, WebhookSubscriptionCreateMutation, map[string]interface{}{
		"topic": topic,
		"webhookSubscription": map[string]interface{}{
			"callbackUrl": callbackURL,
			"format":      "JSON",
		},
	})
	if err != nil {
		return "", err
	}

	var result struct {
		WebhookSubscriptionCreate struct {
			WebhookSubscription *struct {
				ID string `json:"id"`
			} `json:"webhookSubscription"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"webhookSubscriptionCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", &apperrors.ErrTransport{Op: "parse webhookSubscriptionCreate response", Err: err}
	}
	if err := AggregateErrors(resp, result.WebhookSubscriptionCreate.UserErrors); err != nil {
		return "", err
	}
	if result.WebhookSubscriptionCreate.WebhookSubscription == nil {
		return "", &apperrors.ErrShopify{Messages: []string{"webhookSubscriptionCreate returned no subscription"}}
	}
	return result.WebhookSubscriptionCreate.WebhookSubscription.ID, nil
}
