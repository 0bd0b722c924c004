package domain

// Snippet is one entry of the immutable seed catalog.
type Snippet struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// StoredRecord is a vectorized snippet ready to be written to the store.
type StoredRecord struct {
	ID      string
	Title   string
	Content string
	Vector  []float32
}

// StoreHit is a raw nearest-neighbor result mapped at the store boundary.
// Distance is the cosine distance of the hit (0 = identical direction).
type StoreHit struct {
	ID       string  `json:"id"`
	Title    string  `json:"title,omitempty"`
	Content  string  `json:"content"`
	Distance float64 `json:"distance"`
}

// Match is a scored retrieval result. Score = 1/(1+distance), so it is
// bounded in (0,1] and strictly decreasing in distance.
type Match struct {
	ID    string  `json:"id"`
	Title *string `json:"title,omitempty"`
	Score float64 `json:"score"`
	Code  string  `json:"code"`
}

// SeedResult reports the outcome of a seed attempt.
type SeedResult struct {
	Seeded bool `json:"seeded"`
	Count  int  `json:"count"`
}

// GenerationResult is the trimmed output of the generation model.
type GenerationResult struct {
	Model string `json:"model"`
	Code  string `json:"code"`
}
