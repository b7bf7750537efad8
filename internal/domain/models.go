package domain

// Order is the orders/paid webhook payload as delivered by Shopify.
// It is input-only and never persisted locally.
type Order struct {
	ID                int64      `json:"id"`
	OrderNumber       int64      `json:"order_number"`
	CreatedAt         string     `json:"created_at"`
	Email             string     `json:"email"`
	Customer          Customer   `json:"customer"`
	LineItems         []LineItem `json:"line_items"`
	AdminGraphQLAPIID string     `json:"admin_graphql_api_id"`
}

type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LineItem struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
}

// DeliveryReport is the JSON artifact uploaded to Shopify Files and linked to
// the order via a file_reference metafield. Field order is fixed by the struct
// so serialization is deterministic.
type DeliveryReport struct {
	OrderID     int64            `json:"order_id"`
	OrderNumber int64            `json:"order_number"`
	CreatedAt   string           `json:"created_at"`
	Customer    ReportCustomer   `json:"customer"`
	LineItems   []ReportLineItem `json:"line_items"`
}

type ReportCustomer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ReportLineItem is a line item that resolved a delivery estimate.
type ReportLineItem struct {
	LineItemID            int64  `json:"line_item_id"`
	ProductID             int64  `json:"product_id"`
	Title                 string `json:"title"`
	Quantity              int    `json:"quantity"`
	EstimatedDeliveryDays int    `json:"estimated_delivery_days"`
}

// SyncStats accumulates product sync outcomes across a run. Counters only go up.
type SyncStats struct {
	Created int
	Updated int
	Errors  int
}

func (s SyncStats) Processed() int {
	return s.Created + s.Updated
}
