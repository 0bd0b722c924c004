package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coderag/internal/port"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *OllamaProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOllamaProvider(Config{
		BaseURL:       srv.URL,
		EmbedModel:    "bge-m3",
		GenerateModel: "qwen2.5-coder",
	})
}

func TestEmbed(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		json.NewEncoder(w).Encode(map[string]any{
			"embeddings": [][]float32{{0.1, 0.2, 0.3}},
		})
	})

	vec, err := p.Embed(context.Background(), "health check endpoint")
	require.NoError(t, err)

	assert.Equal(t, "/api/embed", gotPath)
	assert.Equal(t, "bge-m3", gotPayload["model"])
	assert.Equal(t, "health check endpoint", gotPayload["input"])
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbed_EmptyResponse(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"embeddings": [][]float32{}})
	})

	_, err := p.Embed(context.Background(), "text")
	require.ErrorIs(t, err, port.ErrEmptyEmbedding)
}

func TestEmbedBatch(t *testing.T) {
	var gotPayload map[string]any

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		json.NewEncoder(w).Encode(map[string]any{
			"embeddings": [][]float32{{1, 0}, {0, 1}},
		})
	})

	vecs, err := p.EmbedBatch(context.Background(), []string{"a", "b"})
	require.NoError(t, err)

	assert.Equal(t, []any{"a", "b"}, gotPayload["input"])
	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{1, 0}, vecs[0])
}

func TestGenerate_SubmitsNonStreamedPrompt(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		json.NewEncoder(w).Encode(map[string]any{"response": "package main\n"})
	})

	out, err := p.Generate(context.Background(), "write a health endpoint")
	require.NoError(t, err)

	assert.Equal(t, "/api/generate", gotPath)
	assert.Equal(t, "qwen2.5-coder", gotPayload["model"])
	assert.Equal(t, "write a health endpoint", gotPayload["prompt"])
	assert.Equal(t, false, gotPayload["stream"])
	assert.Equal(t, "package main\n", out, "adapter returns the raw response field")
}

func TestGenerate_MissingResponseField(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"done": true})
	})

	out, err := p.Generate(context.Background(), "write a health endpoint")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGenerate_NonSuccessStatus(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	})

	_, err := p.Generate(context.Background(), "write a health endpoint")
	require.ErrorContains(t, err, "404")
}

func TestBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"response": "ok"})
	}))
	t.Cleanup(srv.Close)

	p := NewOllamaProvider(Config{BaseURL: srv.URL, GenerateModel: "m", Token: "secret"})
	_, err := p.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestModelName(t *testing.T) {
	p := NewOllamaProvider(Config{GenerateModel: "qwen2.5-coder"})
	assert.Equal(t, "qwen2.5-coder", p.ModelName())
}
