package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"coderag/internal/domain"
	"coderag/internal/port"
)

// RAGService glues the embedding model, the vector store, and the
// generation model into one retrieval pipeline: embed, search, compose,
// generate. It holds no mutable state of its own.
type RAGService struct {
	ai      port.AIProvider
	store   port.VectorStore
	catalog []domain.Snippet
}

// NewRAGService creates a new RAG service over the given catalog.
func NewRAGService(ai port.AIProvider, store port.VectorStore, catalog []domain.Snippet) *RAGService {
	return &RAGService{ai: ai, store: store, catalog: catalog}
}

// SeedIfEmpty writes the snippet catalog to the vector store, once per
// store lifetime. A non-empty store skips seeding entirely, even if its
// contents are unrelated to the catalog; the guard is a count check, not
// per-id dedup.
func (s *RAGService) SeedIfEmpty(ctx context.Context) (domain.SeedResult, error) {
	existing, err := s.store.Count(ctx)
	if err != nil {
		return domain.SeedResult{}, fmt.Errorf("count records: %w", err)
	}
	if existing > 0 {
		slog.Info("seed skipped, store not empty", "count", existing)
		return domain.SeedResult{Seeded: false, Count: existing}, nil
	}

	bodies := make([]string, len(s.catalog))
	for i, snip := range s.catalog {
		bodies[i] = snip.Body
	}

	vectors, err := s.ai.EmbedBatch(ctx, bodies)
	if err != nil {
		return domain.SeedResult{}, fmt.Errorf("embed catalog: %w", err)
	}
	if len(vectors) != len(s.catalog) {
		return domain.SeedResult{}, fmt.Errorf("embed catalog: got %d vectors for %d snippets", len(vectors), len(s.catalog))
	}

	records := make([]domain.StoredRecord, len(s.catalog))
	for i, snip := range s.catalog {
		records[i] = domain.StoredRecord{
			ID:      snip.ID,
			Title:   snip.Title,
			Content: snip.Body,
			Vector:  vectors[i],
		}
	}

	if err := s.store.Upsert(ctx, records); err != nil {
		return domain.SeedResult{}, fmt.Errorf("seed store: %w", err)
	}

	total, err := s.store.Count(ctx)
	if err != nil {
		return domain.SeedResult{}, fmt.Errorf("count after seed: %w", err)
	}

	slog.Info("seeded snippet catalog", "count", total)
	return domain.SeedResult{Seeded: true, Count: total}, nil
}

// Search embeds the query and returns the top-n nearest snippets, scored
// with 1/(1+distance). Results keep the store's native order.
func (s *RAGService) Search(ctx context.Context, query string, n int) ([]domain.Match, error) {
	vector, err := s.ai.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.store.Query(ctx, vector, n)
	if err != nil {
		return nil, fmt.Errorf("query store: %w", err)
	}

	matches := make([]domain.Match, len(hits))
	for i, hit := range hits {
		m := domain.Match{
			ID:    hit.ID,
			Score: 1.0 / (1.0 + hit.Distance),
			Code:  hit.Content,
		}
		if hit.Title != "" {
			title := hit.Title
			m.Title = &title
		}
		matches[i] = m
	}
	return matches, nil
}

// Generate optionally retrieves context for the prompt, composes the final
// prompt, and submits it to the generation model. With useContext false or
// nContext zero the original prompt goes through verbatim.
func (s *RAGService) Generate(ctx context.Context, prompt string, useContext bool, nContext int) (domain.GenerationResult, error) {
	contextText := ""

	if useContext && nContext > 0 {
		matches, err := s.Search(ctx, prompt, nContext)
		if err != nil {
			return domain.GenerationResult{}, fmt.Errorf("retrieve context: %w", err)
		}

		blocks := make([]string, len(matches))
		for i, m := range matches {
			title := "snippet"
			if m.Title != nil && *m.Title != "" {
				title = *m.Title
			}
			blocks[i] = fmt.Sprintf("# CONTEXT: %s\n%s", title, m.Code)
		}
		contextText = strings.Join(blocks, "\n\n")
	}

	composed := prompt
	if contextText != "" {
		composed = fmt.Sprintf("%s\n\n# TASK:\n%s\n", contextText, prompt)
	}

	slog.Info("generating", "model", s.ai.ModelName(), "with_context", contextText != "", "prompt_len", len(composed))

	out, err := s.ai.Generate(ctx, composed)
	if err != nil {
		return domain.GenerationResult{}, fmt.Errorf("generate: %w", err)
	}

	return domain.GenerationResult{
		Model: s.ai.ModelName(),
		Code:  strings.TrimSpace(out),
	}, nil
}
