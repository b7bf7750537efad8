package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/shopsync/internal/domain"
	"github.com/jafarshop/shopsync/internal/shopify"
	apperrors "github.com/jafarshop/shopsync/pkg/errors"
)

const progressInterval = 10

var requiredColumns = []string{"Title", "Variant SKU", "Variant Price"}

var (
	priceRe        = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	deliveryDaysRe = regexp.MustCompile(`^\d+$`)
)

// ProductSyncService upserts a CSV product catalog into Shopify row by row.
// Each row is validated, matched against an existing product by SKU, and
// sent through the idempotent productSet mutation. Row failures are counted
// and never abort the run.
type ProductSyncService struct {
	api       ShopifyAPI
	namespace string
	logger    *zap.Logger
}

func NewProductSyncService(api ShopifyAPI, namespace string, logger *zap.Logger) *ProductSyncService {
	return &ProductSyncService{
		api:       api,
		namespace: namespace,
		logger:    logger,
	}
}

// Sync runs the full import. The file is read twice: once to count rows for
// progress percentages, once to process them. Returns the accumulated stats;
// the error is non-nil only when the row sequence itself cannot be built.
func (s *ProductSyncService) Sync(ctx context.Context, csvPath string) (domain.SyncStats, error) {
	var stats domain.SyncStats

	total, err := countCSVRows(csvPath)
	if err != nil {
		return stats, err
	}
	s.logger.Info("Starting product sync", zap.Int("total_rows", total))

	file, err := os.Open(csvPath)
	if err != nil {
		return stats, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	rows, err := newRowReader(file)
	if err != nil {
		return stats, err
	}

	index := 0
	for {
		row, err := rows.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read csv row: %w", err)
		}
		index++

		created, updated, rowErr := s.syncRow(ctx, row)
		if rowErr != nil {
			stats.Errors++
			s.logger.Error("Error processing row",
				zap.String("sku", row.get("Variant SKU")),
				zap.Error(rowErr),
			)
			continue
		}
		if created {
			stats.Created++
		}
		if updated {
			stats.Updated++
		}
		s.logProgress(index, total)
	}

	s.logFinalStats(stats)
	return stats, nil
}

// syncRow validates and upserts one row. The created/updated classification
// follows whether a product with the row's SKU already existed, decided
// immediately before the upsert.
func (s *ProductSyncService) syncRow(ctx context.Context, row csvRow) (created, updated bool, err error) {
	if err := validateRow(row); err != nil {
		return false, false, err
	}

	existing, err := s.api.FindProductBySKU(ctx, row.get("Variant SKU"))
	if err != nil {
		return false, false, err
	}

	var identifier *shopify.ProductSetIdentifiers
	if existing != nil {
		identifier = &shopify.ProductSetIdentifiers{ID: existing.ID}
	}

	productGID, err := s.api.ProductSet(ctx, identifier, buildProductInput(row))
	if err != nil {
		return false, false, err
	}

	if days := strings.TrimSpace(row.get("Estimated Delivery Date in Days")); days != "" {
		if err := s.setDeliveryMetafield(ctx, productGID, days); err != nil {
			return false, false, err
		}
	}

	return existing == nil, existing != nil, nil
}

func (s *ProductSyncService) setDeliveryMetafield(ctx context.Context, productGID, days string) error {
	// days was validated as digits-only; normalize leading zeros
	n, err := strconv.Atoi(days)
	if err != nil {
		return &apperrors.ErrValidation{Message: fmt.Sprintf("invalid delivery days: %s", days)}
	}
	return s.api.MetafieldsSet(ctx, []shopify.MetafieldsSetInput{{
		OwnerID:   productGID,
		Namespace: s.namespace,
		Key:       MetafieldDeliveryKey,
		Type:      "number_integer",
		Value:     strconv.Itoa(n),
	}})
}

func (s *ProductSyncService) logProgress(current, total int) {
	if current%progressInterval != 0 || total == 0 {
		return
	}
	percentage := float64(current) / float64(total) * 100
	s.logger.Info("Progress",
		zap.String("percentage", fmt.Sprintf("%.2f%%", percentage)),
		zap.Int("processed", current),
		zap.Int("total", total),
	)
}

func (s *ProductSyncService) logFinalStats(stats domain.SyncStats) {
	s.logger.Info("Product sync summary",
		zap.Int("processed", stats.Processed()),
		zap.Int("created", stats.Created),
		zap.Int("updated", stats.Updated),
		zap.Int("errors", stats.Errors),
	)
}

func validateRow(row csvRow) error {
	var missing []string
	for _, col := range requiredColumns {
		if strings.TrimSpace(row.get(col)) == "" {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		fields := make(map[string]string, len(missing))
		for _, col := range missing {
			fields[col] = "required"
		}
		return &apperrors.ErrValidation{
			Message: fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")),
			Fields:  fields,
		}
	}

	if price := row.get("Variant Price"); !priceRe.MatchString(price) {
		return &apperrors.ErrValidation{
			Message: fmt.Sprintf("invalid price format: %s, expected format: 0.00", price),
		}
	}

	if days := strings.TrimSpace(row.get("Estimated Delivery Date in Days")); days != "" {
		if !deliveryDaysRe.MatchString(days) {
			return &apperrors.ErrValidation{
				Message: fmt.Sprintf("invalid delivery days format: %s, expected a non-negative integer", days),
			}
		}
	}

	return nil
}

func buildProductInput(row csvRow) shopify.ProductSetInput {
	input := shopify.ProductSetInput{
		Title:           row.get("Title"),
		DescriptionHtml: optional(row.get("Body (HTML)")),
		Vendor:          optional(row.get("Vendor")),
		ProductType:     optional(row.get("Type")),
		Tags:            splitTags(row.get("Tags")),
		SEO:             buildSEOInput(row),
		ProductOptions:  buildProductOptions(row),
		Variants:        []shopify.VariantInput{buildVariantInput(row)},
		Status:          productStatus(row.get("Status")),
	}
	return input
}

func buildVariantInput(row csvRow) shopify.VariantInput {
	return shopify.VariantInput{
		Price:        row.get("Variant Price"),
		SKU:          row.get("Variant SKU"),
		Taxable:      strings.EqualFold(row.get("Variant Taxable"), "TRUE"),
		Barcode:      optional(row.get("Variant Barcode")),
		OptionValues: buildOptionValues(row),
	}
}

// buildProductOptions fills up to two option slots; a slot counts only when
// both its name and value are present.
func buildProductOptions(row csvRow) []shopify.ProductOptionInput {
	var options []shopify.ProductOptionInput
	for _, slot := range []string{"Option1", "Option2"} {
		name := row.get(slot + " Name")
		value := row.get(slot + " Value")
		if name == "" || value == "" {
			continue
		}
		options = append(options, shopify.ProductOptionInput{
			Name:   name,
			Values: []shopify.OptionValueInput{{Name: value}},
		})
	}
	return options
}

func buildOptionValues(row csvRow) []shopify.VariantOptionValueInput {
	var values []shopify.VariantOptionValueInput
	for _, slot := range []string{"Option1", "Option2"} {
		name := row.get(slot + " Name")
		value := row.get(slot + " Value")
		if name == "" || value == "" {
			continue
		}
		values = append(values, shopify.VariantOptionValueInput{
			Name:       value,
			OptionName: name,
		})
	}
	return values
}

func buildSEOInput(row csvRow) *shopify.SEOInput {
	title := row.get("SEO Title")
	description := row.get("SEO Description")
	if title == "" && description == "" {
		return nil
	}
	return &shopify.SEOInput{
		Title:       optional(title),
		Description: optional(description),
	}
}

func splitTags(tags string) []string {
	if strings.TrimSpace(tags) == "" {
		return nil
	}
	parts := strings.Split(tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func productStatus(status string) string {
	if strings.TrimSpace(status) == "" {
		return "DRAFT"
	}
	return strings.ToUpper(strings.TrimSpace(status))
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
