package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/shopsync/internal/config"
	apperrors "github.com/jafarshop/shopsync/pkg/errors"
)

type Client struct {
	shopDomain  string
	accessToken string
	apiVersion  string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a new Shopify GraphQL Admin API client
func NewClient(cfg config.ShopifyConfig, logger *zap.Logger) *Client {
	// Normalize shop domain - remove https://, http://, and trailing slashes
	shopDomain := cfg.ShopDomain
	shopDomain = strings.TrimPrefix(shopDomain, "https://")
	shopDomain = strings.TrimPrefix(shopDomain, "http://")
	shopDomain = strings.TrimSuffix(shopDomain, "/")
	if !strings.Contains(shopDomain, ".") {
		shopDomain += ".myshopify.com"
	}

	return &Client{
		shopDomain:  shopDomain,
		accessToken: cfg.AccessToken,
		apiVersion:  cfg.APIVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response. Data is decoded per
// operation; Errors carries protocol-level errors which are merged with
// mutation user errors by AggregateErrors, not here.
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a protocol-level GraphQL error
type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// UserError is a field-level validation error returned by a mutation even
// when the call itself transport-succeeds.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

func (e UserError) render() string {
	return fmt.Sprintf("%s: %s", strings.Join(e.Field, "."), e.Message)
}

// Execute sends a GraphQL query/mutation. Transport failures (connection,
// non-200 status, malformed body) return an ErrTransport; protocol errors
// ride back on the response for the caller to aggregate. No retries.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}) (*GraphQLResponse, error) {
	url := fmt.Sprintf("https://%s/admin/api/%s/graphql.json", c.shopDomain, c.apiVersion)

	jsonData, err := json.Marshal(GraphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: "marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: "execute request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.ErrTransport{Op: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Shopify API returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, &apperrors.ErrTransport{
			Op:  "shopify API",
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var graphQLResp GraphQLResponse
	if err := json.Unmarshal(body, &graphQLResp); err != nil {
		return nil, &apperrors.ErrTransport{
			Op:  "unmarshal response",
			Err: fmt.Errorf("%w, body: %s", err, string(body)),
		}
	}

	return &graphQLResp, nil
}

// AggregateErrors merges protocol-level errors and the given mutation user
// error lists into a single ErrShopify, each user error rendered as
// "<field>: <message>". Returns nil when there is nothing to report.
func AggregateErrors(resp *GraphQLResponse, userErrorSets ...[]UserError) error {
	var messages []string
	for _, e := range resp.Errors {
		messages = append(messages, e.Message)
	}
	for _, set := range userErrorSets {
		for _, e := range set {
			messages = append(messages, e.render())
		}
	}
	if len(messages) > 0 {
		return &apperrors.ErrShopify{Messages: messages}
	}
	return nil
}
