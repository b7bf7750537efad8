package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jafarshop/shopsync/internal/config"
	"github.com/jafarshop/shopsync/internal/service"
	"github.com/jafarshop/shopsync/internal/shopify"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.ValidateWebhook(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := shopify.NewClient(cfg.Shopify, logger)
	webhookSvc := service.NewWebhookService(client, cfg.AppHost, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	id, err := webhookSvc.EnsureOrdersPaidSubscription(ctx)
	if err != nil {
		logger.Fatal("Failed to ensure ORDERS_PAID subscription", zap.Error(err))
	}
	fmt.Printf("ORDERS_PAID subscription: %s\n", id)
}
