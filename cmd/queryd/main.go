// Command queryd is the original bare similarity-search prototype, kept as
// a separate binary. It exposes a single POST /query endpoint that returns
// raw store hits with no score normalization. Superseded by cmd/server;
// not a maintained code path.
package main

import (
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"

	"coderag/internal/adapter/ai"
	"coderag/internal/adapter/store"
	"coderag/pkg/config"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	ollamaAI := ai.NewOllamaProvider(ai.Config{
		BaseURL:    cfg.OllamaURL,
		EmbedModel: cfg.OllamaEmbedModel,
		Token:      cfg.OllamaToken,
	})

	vectorStore, err := store.New(cfg.QdrantAddr(), cfg.CollectionName)
	if err != nil {
		slog.Error("failed to connect to vector store", "error", err)
		os.Exit(1)
	}
	defer vectorStore.Close()

	app := fiber.New(fiber.Config{AppName: cfg.AppName + " (query only)"})
	app.Use(recover.New())

	app.Post("/query", func(c fiber.Ctx) error {
		var body struct {
			Query string `json:"query"`
		}
		if err := c.Bind().JSON(&body); err != nil || body.Query == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		vector, err := ollamaAI.Embed(c.Context(), body.Query)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
		}
		hits, err := vectorStore.Query(c.Context(), vector, 3)
		if err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(hits)
	})

	slog.Info("🌐 queryd listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
