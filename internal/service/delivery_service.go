package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/shopsync/internal/domain"
	"github.com/jafarshop/shopsync/internal/shopify"
)

const (
	// MetafieldDeliveryKey holds the per-product estimate in days
	MetafieldDeliveryKey = "estimated_delivery"
	// MetafieldFileKey links the uploaded report file to the order
	MetafieldFileKey = "delivery_dates"

	jsonMIMEType      = "application/json"
	deliveryBatchSize = 50
)

// Outcome is the terminal state of one order's run through the pipeline
type Outcome int

const (
	// OutcomeProcessed means a report was uploaded and attached
	OutcomeProcessed Outcome = iota
	// OutcomeInvalid means the payload failed validation; treated as a no-op
	OutcomeInvalid
	// OutcomeNoEstimates means no line item resolved an estimate; also a no-op
	OutcomeNoEstimates
	// OutcomeFailed means upload or attach failed; returned with the error
	OutcomeFailed
)

// DeliveryDateService enriches paid orders with a delivery-estimate report:
// per line item it reads the product's estimate metafield, bundles the hits
// into a JSON file, uploads it via staged upload + fileCreate, and attaches
// the file to the order with a file_reference metafield.
type DeliveryDateService struct {
	api       ShopifyAPI
	namespace string
	logger    *zap.Logger
	now       func() time.Time
}

func NewDeliveryDateService(api ShopifyAPI, namespace string, logger *zap.Logger) *DeliveryDateService {
	return &DeliveryDateService{
		api:       api,
		namespace: namespace,
		logger:    logger,
		now:       time.Now,
	}
}

// ProcessOrder runs the pipeline for one order. Invalid payloads and orders
// without any resolvable estimate are no-ops, not errors. API failures during
// upload or attach surface as a single error for this order.
func (s *DeliveryDateService) ProcessOrder(ctx context.Context, order domain.Order) (Outcome, error) {
	logger := s.logger.With(zap.Int64("order_number", order.OrderNumber))
	logger.Info("Starting order processing")

	if !validOrder(order) {
		logger.Error("Invalid order data", zap.Int64("order_id", order.ID))
		return OutcomeInvalid, nil
	}

	estimates := s.collectEstimates(ctx, logger, order)
	if len(estimates) == 0 {
		logger.Info("No delivery dates found for any line items")
		return OutcomeNoEstimates, nil
	}
	logger.Info("Found delivery dates", zap.Int("line_items", len(estimates)))

	report := domain.DeliveryReport{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		CreatedAt:   order.CreatedAt,
		Customer: domain.ReportCustomer{
			Email: order.Email,
			Name:  customerName(order.Customer),
		},
		LineItems: estimates,
	}

	logger.Info("Uploading JSON file")
	fileGID, err := s.uploadReport(ctx, order, report)
	if err != nil {
		logger.Error("Failed to upload delivery report", zap.Error(err))
		return OutcomeFailed, fmt.Errorf("order processing failed: %w", err)
	}

	logger.Info("Attaching metafield", zap.String("file_id", fileGID))
	if err := s.attachFileMetafield(ctx, order, fileGID); err != nil {
		logger.Error("Failed to attach metafield", zap.Error(err))
		return OutcomeFailed, fmt.Errorf("order processing failed: %w", err)
	}

	logger.Info("Successfully processed order")
	return OutcomeProcessed, nil
}

// ProcessBatch processes orders in slices of deliveryBatchSize, isolating
// per-order failures.
func (s *DeliveryDateService) ProcessBatch(ctx context.Context, orders []domain.Order) {
	s.logger.Info("Processing batch of orders", zap.Int("count", len(orders)))

	for start := 0; start < len(orders); start += deliveryBatchSize {
		end := start + deliveryBatchSize
		if end > len(orders) {
			end = len(orders)
		}
		for _, order := range orders[start:end] {
			if _, err := s.ProcessOrder(ctx, order); err != nil {
				s.logger.Error("Failed to process order",
					zap.Int64("order_id", order.ID),
					zap.Error(err),
				)
			}
		}
	}
}

func validOrder(order domain.Order) bool {
	if order.ID == 0 {
		return false
	}
	if order.OrderNumber == 0 {
		return false
	}
	if order.LineItems == nil {
		return false
	}
	return true
}

func customerName(c domain.Customer) string {
	name := c.FirstName
	if c.LastName != "" {
		if name != "" {
			name += " "
		}
		name += c.LastName
	}
	return name
}

// collectEstimates resolves the estimate metafield per line item. A missing
// or unparsable value, or a lookup failure, skips the item and never fails
// the order.
func (s *DeliveryDateService) collectEstimates(ctx context.Context, logger *zap.Logger, order domain.Order) []domain.ReportLineItem {
	var estimates []domain.ReportLineItem

	for _, item := range order.LineItems {
		logger.Info("Fetching delivery date for product",
			zap.Int64("product_id", item.ProductID),
			zap.String("title", item.Title),
		)

		value, err := s.api.GetProductMetafield(ctx, productGID(item.ProductID), s.namespace, MetafieldDeliveryKey)
		if err != nil {
			logger.Error("Error fetching delivery date for product",
				zap.Int64("product_id", item.ProductID),
				zap.Error(err),
			)
			continue
		}
		if value == "" {
			logger.Warn("No delivery date found for product",
				zap.Int64("product_id", item.ProductID),
				zap.String("title", item.Title),
			)
			continue
		}
		days, err := strconv.Atoi(value)
		if err != nil {
			logger.Warn("Unparsable delivery date for product",
				zap.Int64("product_id", item.ProductID),
				zap.String("value", value),
			)
			continue
		}

		logger.Info("Found delivery date",
			zap.Int("days", days),
			zap.Int64("product_id", item.ProductID),
		)
		estimates = append(estimates, domain.ReportLineItem{
			LineItemID:            item.ID,
			ProductID:             item.ProductID,
			Title:                 item.Title,
			Quantity:              item.Quantity,
			EstimatedDeliveryDays: days,
		})
	}

	return estimates
}

func (s *DeliveryDateService) uploadReport(ctx context.Context, order domain.Order, report domain.DeliveryReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize delivery report: %w", err)
	}
	filename := fmt.Sprintf("estimated_delivery_%d_%d.json", order.ID, s.now().Unix())

	target, err := s.api.StagedUploadsCreate(ctx, shopify.StagedUploadInput{
		Filename: filename,
		MimeType: jsonMIMEType,
		Resource: "FILE",
		FileSize: strconv.Itoa(len(data)),
	})
	if err != nil {
		return "", err
	}

	return s.api.FileCreate(ctx, shopify.FileCreateInput{
		OriginalSource: target.ResourceURL,
		Filename:       filename,
		ContentType:    "FILE",
	})
}

func (s *DeliveryDateService) attachFileMetafield(ctx context.Context, order domain.Order, fileGID string) error {
	return s.api.MetafieldsSet(ctx, []shopify.MetafieldsSetInput{{
		OwnerID:   order.AdminGraphQLAPIID,
		Namespace: s.namespace,
		Key:       MetafieldFileKey,
		Type:      "file_reference",
		Value:     fileGID,
	}})
}

func productGID(productID int64) string {
	return fmt.Sprintf("gid://shopify/Product/%d", productID)
}
