package shopify

// ProductSetMutation is the idempotent product upsert: creates when the
// identifier is omitted, updates the referenced product when it is supplied.
const ProductSetMutation = `
mutation productSet($identifier: ProductSetIdentifiers, $input: ProductSetInput!) {
  productSet(identifier: $identifier, input: $input) {
    product {
      id
      title
      handle
    }
    userErrors {
      field
      message
    }
  }
}
`

// MetafieldsSetMutation sets metafields on a resource (Order or Product)
const MetafieldsSetMutation = `
mutation metafieldsSet($metafields: [MetafieldsSetInput!]!) {
  metafieldsSet(metafields: $metafields) {
    metafields {
      id
      key
      namespace
      value
    }
    userErrors {
      field
      message
      code
    }
  }
}
`

// StagedUploadsCreateMutation reserves an upload target for a file
const StagedUploadsCreateMutation = `
mutation stagedUploadsCreate($input: [StagedUploadInput!]!) {
  stagedUploadsCreate(input: $input) {
    stagedTargets {
      resourceUrl
      url
      parameters {
        name
        value
      }
    }
    userErrors {
      field
      message
    }
  }
}
`

// FileCreateMutation registers a staged resource as a file record
const FileCreateMutation = `
mutation fileCreate($files: [FileCreateInput!]!) {
  fileCreate(files: $files) {
    files {
      ... on GenericFile {
        id
        url
      }
    }
    userErrors {
      field
      message
    }
  }
}
`

// WebhookSubscriptionCreateMutation subscribes a callback URL to a topic
const WebhookSubscriptionCreateMutation = `
mutation webhookSubscriptionCreate($topic: WebhookSubscriptionTopic!, $webhookSubscription: WebhookSubscriptionInput!) {
  webhookSubscriptionCreate(topic: $topic, webhookSubscription: $webhookSubscription) {
    webhookSubscription {
      id
      topic
      format
      endpoint {
        __typename
        ... on WebhookHttpEndpoint {
          callbackUrl
        }
      }
    }
    userErrors {
      field
      message
    }
  }
}
`

// ProductSetInput is the input for the productSet mutation
type ProductSetInput struct {
	Title           string               `json:"title"`
	DescriptionHtml *string              `json:"descriptionHtml,omitempty"`
	Vendor          *string              `json:"vendor,omitempty"`
	ProductType     *string              `json:"productType,omitempty"`
	Tags            []string             `json:"tags,omitempty"`
	SEO             *SEOInput            `json:"seo,omitempty"`
	ProductOptions  []ProductOptionInput `json:"productOptions,omitempty"`
	Variants        []VariantInput       `json:"variants"`
	Status          string               `json:"status"`
}

// ProductSetIdentifiers selects the product to update; omit to create
type ProductSetIdentifiers struct {
	ID string `json:"id"`
}

type SEOInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type ProductOptionInput struct {
	Name   string             `json:"name"`
	Values []OptionValueInput `json:"values"`
}

type OptionValueInput struct {
	Name string `json:"name"`
}

type VariantInput struct {
	Price        string                    `json:"price"`
	SKU          string                    `json:"sku"`
	Taxable      bool                      `json:"taxable"`
	Barcode      *string                   `json:"barcode,omitempty"`
	OptionValues []VariantOptionValueInput `json:"optionValues,omitempty"`
}

type VariantOptionValueInput struct {
	Name       string `json:"name"`
	OptionName string `json:"optionName"`
}

// MetafieldsSetInput is one metafield assignment for metafieldsSet
type MetafieldsSetInput struct {
	OwnerID   string `json:"ownerId"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}

// StagedUploadInput describes the file a staged target is reserved for
type StagedUploadInput struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	Resource string `json:"resource"`
	FileSize string `json:"fileSize"`
}

// FileCreateInput registers an uploaded resource as a file record
type FileCreateInput struct {
	OriginalSource string `json:"originalSource"`
	Filename       string `json:"filename"`
	ContentType    string `json:"contentType"`
}
