package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jafarshop/shopsync/internal/config"
	"github.com/jafarshop/shopsync/internal/service"
	"github.com/jafarshop/shopsync/internal/shopify"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: sync-products <products.csv>")
		os.Exit(2)
	}
	csvPath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := shopify.NewClient(cfg.Shopify, logger)
	syncSvc := service.NewProductSyncService(client, cfg.MetafieldNamespace, logger)

	stats, err := syncSvc.Sync(context.Background(), csvPath)
	if err != nil {
		logger.Fatal("Product sync failed", zap.Error(err))
	}

	fmt.Println("\n========== Product Sync Summary ==========")
	fmt.Printf("Successfully processed %d products\n", stats.Processed())
	fmt.Printf("  - %d products created\n", stats.Created)
	fmt.Printf("  - %d products updated\n", stats.Updated)
	if stats.Errors > 0 {
		fmt.Printf("%d errors encountered\n", stats.Errors)
	} else {
		fmt.Println("No errors encountered")
	}
	fmt.Println("==========================================")
}
