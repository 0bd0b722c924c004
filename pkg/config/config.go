package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Server
	Port    string
	AppName string

	// Ollama
	OllamaURL        string
	OllamaModel      string // generation model
	OllamaEmbedModel string
	OllamaToken      string // Bearer token for Ollama Cloud (empty = local)

	// Qdrant
	QdrantHost     string
	QdrantPort     int
	CollectionName string

	EmbeddingDimension int

	// Timeouts
	StoreReadyTimeout time.Duration
	GenerateTimeout   time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:    envOrDefault("PORT", "8080"),
		AppName: envOrDefault("APP_NAME", "CodeRAG"),

		OllamaURL:        envOrDefault("OLLAMA_URL", "http://ollama:11434"),
		OllamaModel:      envOrDefault("OLLAMA_MODEL", "qwen2.5-coder"),
		OllamaEmbedModel: envOrDefault("OLLAMA_EMBED_MODEL", "bge-m3"),
		OllamaToken:      os.Getenv("OLLAMA_TOKEN"),

		QdrantHost:     envOrDefault("QDRANT_HOST", "qdrant"),
		QdrantPort:     envOrDefaultInt("QDRANT_PORT", 6334),
		CollectionName: envOrDefault("COLLECTION_NAME", "code_snippets"),

		EmbeddingDimension: envOrDefaultInt("EMBEDDING_DIMENSION", 1024),

		StoreReadyTimeout: time.Duration(envOrDefaultInt("STORE_READY_TIMEOUT_SECONDS", 45)) * time.Second,
		GenerateTimeout:   time.Duration(envOrDefaultInt("GENERATE_TIMEOUT_SECONDS", 120)) * time.Second,
	}
}

// QdrantAddr returns the host:port gRPC address of the vector store.
func (c *Config) QdrantAddr() string {
	return fmt.Sprintf("%s:%d", c.QdrantHost, c.QdrantPort)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return fallback
}
