package main

import (
	"context"
	"log"

	"tourrec/api"
	"tourrec/config"
	"tourrec/pkg/embedding"
	"tourrec/pkg/postgres"
	qdrantClient "tourrec/pkg/qdrantdb"
	"tourrec/recommender"
	"tourrec/search"

	"go.uber.org/zap"
)

func main() {
	// =========
	// Config
	// =========
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		log.Fatalf("Failed to load recommender settings: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// Embedding Client
	// =========
	embeddingClient := embedding.NewMultiQaMinilmL6(cfg.EmbeddingURL)

	// =========
	// Postgres catalog
	// =========
	catalog, err := postgres.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize postgres: %v", err)
	}
	defer catalog.Close()

	// =========
	// Qdrant vector
	// =========
	qdb, err := qdrantClient.NewClient(cfg.QdrantHost, cfg.QdrantPort, embeddingClient.Dimensions())
	if err != nil {
		log.Fatalf("Failed to initialize qdrant: %v", err)
	}
	err = qdb.CreateTourCollection(context.Background())
	if err != nil {
		log.Fatalf("err: %v", err)
	}

	// =========
	// Recommender Service
	// =========
	recommendations := recommender.NewService(catalog, settings, logger)

	// =========
	// Search Service
	// =========
	materializer := search.NewMaterializer(qdb, embeddingClient, logger)
	searchService := search.NewService(catalog, qdb, embeddingClient, materializer, logger)

	// =========
	// HTTP server
	// =========
	server := api.NewServer(recommendations, searchService, logger, cfg.AppPort)
	if err := server.Start(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
