package handler

import (
	"github.com/gofiber/fiber/v3"

	"coderag/internal/service"
)

// RAGHandler handles the seed/query/generate endpoints.
type RAGHandler struct {
	rag *service.RAGService
}

// NewRAGHandler creates a new RAG handler.
func NewRAGHandler(rag *service.RAGService) *RAGHandler {
	return &RAGHandler{rag: rag}
}

// Register sets up the RAG routes.
func (h *RAGHandler) Register(router fiber.Router) {
	router.Post("/seed", h.Seed)
	router.Post("/query", h.Query)
	router.Post("/generate", h.Generate)
}

// Seed writes the snippet catalog to the vector store if it is empty.
func (h *RAGHandler) Seed(c fiber.Ctx) error {
	result, err := h.rag.SeedIfEmpty(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(result)
}

// Query performs a similarity search over the seeded snippets.
func (h *RAGHandler) Query(c fiber.Ctx) error {
	var body struct {
		Query    string `json:"query"`
		NResults *int   `json:"n_results"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	nResults := 3
	if body.NResults != nil {
		nResults = *body.NResults
	}
	if len(body.Query) < 3 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query must be at least 3 characters"})
	}
	if nResults < 1 || nResults > 10 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "n_results must be between 1 and 10"})
	}

	matches, err := h.rag.Search(c.Context(), body.Query, nResults)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"query":   body.Query,
		"matches": matches,
	})
}

// Generate composes an optionally context-augmented prompt and returns the
// model's output.
func (h *RAGHandler) Generate(c fiber.Ctx) error {
	var body struct {
		Prompt     string `json:"prompt"`
		UseContext *bool  `json:"use_context"`
		NContext   *int   `json:"n_context"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	useContext := true
	if body.UseContext != nil {
		useContext = *body.UseContext
	}
	nContext := 2
	if body.NContext != nil {
		nContext = *body.NContext
	}
	if len(body.Prompt) < 10 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "prompt must be at least 10 characters"})
	}
	if nContext < 0 || nContext > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "n_context must be between 0 and 5"})
	}

	result, err := h.rag.Generate(c.Context(), body.Prompt, useContext, nContext)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}
