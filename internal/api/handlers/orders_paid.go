package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/shopsync/internal/api/middleware"
	"github.com/jafarshop/shopsync/internal/config"
	"github.com/jafarshop/shopsync/internal/domain"
	"github.com/jafarshop/shopsync/internal/service"
	apperrors "github.com/jafarshop/shopsync/pkg/errors"
)

// OrderProcessor is the delivery pipeline as seen from the HTTP boundary
type OrderProcessor interface {
	ProcessOrder(ctx context.Context, order domain.Order) (service.Outcome, error)
}

// HandleOrdersPaidWebhook handles POST /webhooks/orders_paid.
// The HMAC is computed over the raw body, so the body is read and verified
// byte-for-byte before any JSON parsing.
func HandleOrdersPaidWebhook(cfg *config.Config, processor OrderProcessor, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
			return
		}

		hmacHeader := c.GetHeader("X-Shopify-Hmac-Sha256")
		if !middleware.VerifyShopifyHMAC(logger, cfg.WebhookSecret, bodyBytes, hmacHeader) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook signature"})
			return
		}

		var order domain.Order
		if err := json.Unmarshal(bodyBytes, &order); err != nil {
			logger.Error("Invalid JSON in webhook payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
			return
		}

		outcome, err := processor.ProcessOrder(c.Request.Context(), order)
		if err != nil {
			var shopifyErr *apperrors.ErrShopify
			if errors.As(err, &shopifyErr) {
				logger.Error("Shopify API error processing paid order", zap.Error(err))
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": shopifyErr.Error()})
				return
			}
			logger.Error("Error processing paid order webhook", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "outcome": outcomeString(outcome)})
	}
}

func outcomeString(outcome service.Outcome) string {
	switch outcome {
	case service.OutcomeInvalid:
		return "invalid_order"
	case service.OutcomeNoEstimates:
		return "no_estimates"
	default:
		return "processed"
	}
}
