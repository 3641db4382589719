package main

import (
	"fmt"
	"log"
	"os"

	"github.com/decohogar/backend/config"
	httpDelivery "github.com/decohogar/backend/internal/delivery/http"
	"github.com/decohogar/backend/internal/infrastructure/catalog"
	"github.com/decohogar/backend/internal/infrastructure/llm"
	"github.com/decohogar/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting DecoHogar Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	repo, err := catalog.Open(cfg.Database.URL, cfg.Database.CacheTTL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()
	log.Printf("Catalog cache TTL: %s", cfg.Database.CacheTTL)

	modelClient := llm.NewClient(llm.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Timeout:     cfg.LLM.Timeout,
		MaxAttempts: cfg.LLM.MaxAttempts,
		RetryDelay:  cfg.LLM.RetryDelay,
	})

	if cfg.LLM.APIKey != "" {
		log.Printf("Model configured: %s at %s", cfg.LLM.Model, cfg.LLM.BaseURL)
	} else {
		log.Printf("WARNING: model API key not configured, model fallbacks will return empty results")
	}

	// Initialize usecase layer
	searchService := usecase.NewSearchService(repo, modelClient, cfg.Search.DefaultQuantity)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
