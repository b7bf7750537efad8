package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const (
	ordersPaidTopic = "ORDERS_PAID"
	// OrdersPaidPath is the callback path registered for the subscription
	OrdersPaidPath = "/webhooks/orders_paid"
)

// WebhookService manages the shop's ORDERS_PAID subscription
type WebhookService struct {
	api     ShopifyAPI
	appHost string
	logger  *zap.Logger
}

func NewWebhookService(api ShopifyAPI, appHost string, logger *zap.Logger) *WebhookService {
	return &WebhookService{
		api:     api,
		appHost: appHost,
		logger:  logger,
	}
}

// EnsureOrdersPaidSubscription subscribes the app's callback URL to the
// ORDERS_PAID topic unless an identical subscription already exists. Returns
// the subscription GID either way.
func (s *WebhookService) EnsureOrdersPaidSubscription(ctx context.Context) (string, error) {
	callbackURL := s.appHost + OrdersPaidPath

	subs, err := s.api.ListWebhookSubscriptions(ctx)
	if err != nil {
		return "", fmt.Errorf("list webhook subscriptions: %w", err)
	}
	for _, sub := range subs {
		if sub.Topic == ordersPaidTopic && sub.CallbackURL == callbackURL {
			s.logger.Info("Webhook subscription already exists", zap.String("id", sub.ID))
			return sub.ID, nil
		}
	}

	id, err := s.api.CreateWebhookSubscription(ctx, ordersPaidTopic, callbackURL)
	if err != nil {
		return "", fmt.Errorf("create webhook subscription: %w", err)
	}
	s.logger.Info("Subscribed to ORDERS_PAID webhook",
		zap.String("id", id),
		zap.String("callback_url", callbackURL),
	)
	return id, nil
}
