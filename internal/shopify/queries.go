package shopify

// ProductBySKUQuery finds a product whose variant matches an exact SKU search
// (query string is e.g. "sku:ABC-123"). Shopify does not guarantee SKU
// uniqueness; callers use the first edge.
const ProductBySKUQuery = `
query findProductBySKU($query: String!) {
  products(first: 5, query: $query) {
    edges {
      node {
        id
        title
        handle
        variants(first: 1) {
          edges {
            node {
              id
              sku
            }
          }
        }
      }
    }
  }
}
`

// ProductMetafieldQuery reads a single metafield value off a product
const ProductMetafieldQuery = `
query getProductMetafield($namespace: String!, $key: String!, $id: ID!) {
  product(id: $id) {
    metafield(namespace: $namespace, key: $key) {
      value
    }
  }
}
`

// WebhookSubscriptionsQuery lists existing webhook subscriptions so we can
// avoid creating duplicates on startup
const WebhookSubscriptionsQuery = `
query getWebhookSubscriptions {
  webhookSubscriptions(first: 5) {
    edges {
      node {
        id
        topic
        endpoint {
          __typename
          ... on WebhookHttpEndpoint {
            callbackUrl
          }
        }
      }
    }
  }
}
`
