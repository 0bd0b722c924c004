package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"coderag/internal/adapter/ai"
	"coderag/internal/adapter/store"
	"coderag/internal/domain"
	"coderag/internal/handler"
	"coderag/internal/service"
	"coderag/pkg/config"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg := config.Load()

	slog.Info("🚀 Starting CodeRAG",
		"port", cfg.Port,
		"ollama", cfg.OllamaURL,
		"model", cfg.OllamaModel,
		"qdrant", cfg.QdrantAddr(),
		"collection", cfg.CollectionName,
	)

	// ── Adapters ─────────────────────────────────────────────────────────
	ollamaAI := ai.NewOllamaProvider(ai.Config{
		BaseURL:       cfg.OllamaURL,
		EmbedModel:    cfg.OllamaEmbedModel,
		GenerateModel: cfg.OllamaModel,
		Token:         cfg.OllamaToken,
		Timeout:       cfg.GenerateTimeout,
	})

	vectorStore, err := store.New(cfg.QdrantAddr(), cfg.CollectionName)
	if err != nil {
		slog.Error("failed to connect to vector store", "error", err)
		os.Exit(1)
	}
	defer vectorStore.Close()

	// ── Startup: wait for the store, ensure the collection, seed once ────
	readyCtx, cancel := context.WithTimeout(context.Background(), cfg.StoreReadyTimeout)
	defer cancel()

	if err := vectorStore.WaitReady(readyCtx); err != nil {
		slog.Error("vector store not ready", "error", err)
		os.Exit(1)
	}
	if err := vectorStore.EnsureCollection(readyCtx, cfg.EmbeddingDimension); err != nil {
		slog.Error("failed to ensure collection", "error", err)
		os.Exit(1)
	}

	ragService := service.NewRAGService(ollamaAI, vectorStore, domain.Catalog())

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelSeed()
	if _, err := ragService.SeedIfEmpty(seedCtx); err != nil {
		slog.Error("failed to seed snippet catalog", "error", err)
		os.Exit(1)
	}

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.GenerateTimeout + 10*time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	// Health check
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"app":     cfg.AppName,
			"version": "1.0.0",
		})
	})

	ragHandler := handler.NewRAGHandler(ragService)
	ragHandler.Register(app)

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("🌐 Fiber listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
