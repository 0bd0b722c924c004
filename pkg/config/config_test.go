package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "CodeRAG", cfg.AppName)
	assert.Equal(t, "http://ollama:11434", cfg.OllamaURL)
	assert.Equal(t, "qwen2.5-coder", cfg.OllamaModel)
	assert.Equal(t, "bge-m3", cfg.OllamaEmbedModel)
	assert.Empty(t, cfg.OllamaToken)
	assert.Equal(t, "qdrant", cfg.QdrantHost)
	assert.Equal(t, 6334, cfg.QdrantPort)
	assert.Equal(t, "code_snippets", cfg.CollectionName)
	assert.Equal(t, 1024, cfg.EmbeddingDimension)
	assert.Equal(t, 45*time.Second, cfg.StoreReadyTimeout)
	assert.Equal(t, 120*time.Second, cfg.GenerateTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OLLAMA_URL", "http://localhost:11434")
	t.Setenv("OLLAMA_MODEL", "codellama")
	t.Setenv("QDRANT_HOST", "localhost")
	t.Setenv("QDRANT_PORT", "7001")
	t.Setenv("COLLECTION_NAME", "other")
	t.Setenv("STORE_READY_TIMEOUT_SECONDS", "5")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://localhost:11434", cfg.OllamaURL)
	assert.Equal(t, "codellama", cfg.OllamaModel)
	assert.Equal(t, "localhost:7001", cfg.QdrantAddr())
	assert.Equal(t, "other", cfg.CollectionName)
	assert.Equal(t, 5*time.Second, cfg.StoreReadyTimeout)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("QDRANT_PORT", "not-a-number")

	cfg := Load()
	assert.Equal(t, 6334, cfg.QdrantPort)
}
