// Package embedding generates vector embeddings for semantic retrieval.
// Supports Ollama (local), Google GenAI (cloud), and a deterministic
// hashing engine for offline use.
package embedding

import (
	"context"
	"fmt"
	"math"
	"sort"

	"loomii/internal/logging"
)

// Engine generates vector embeddings for text.
type Engine interface {
	// Embed generates an embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the dimensionality of embeddings.
	Dimensions() int

	// Name returns the engine name.
	Name() string
}

// HealthChecker is an optional interface for engines that can verify the
// backing service is reachable before a batch run.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Config holds embedding engine configuration.
type Config struct {
	// Provider: "ollama", "genai", or "local"
	Provider string `yaml:"provider" json:"provider"`

	OllamaEndpoint string `yaml:"ollama_endpoint" json:"ollama_endpoint"`
	OllamaModel    string `yaml:"ollama_model" json:"ollama_model"`

	GenAIAPIKey string `yaml:"genai_api_key" json:"genai_api_key"`
	GenAIModel  string `yaml:"genai_model" json:"genai_model"`

	// TaskType for GenAI: "RETRIEVAL_DOCUMENT", "RETRIEVAL_QUERY",
	// "SEMANTIC_SIMILARITY"
	TaskType string `yaml:"task_type" json:"task_type"`

	// LocalDimensions sets the vector size of the local hashing engine.
	LocalDimensions int `yaml:"local_dimensions" json:"local_dimensions"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:        "local",
		OllamaEndpoint:  "http://localhost:11434",
		OllamaModel:     "embeddinggemma",
		GenAIModel:      "gemini-embedding-001",
		TaskType:        "RETRIEVAL_DOCUMENT",
		LocalDimensions: 256,
	}
}

// NewEngine creates an embedding engine based on configuration.
func NewEngine(cfg Config) (Engine, error) {
	timer := logging.StartTimer(logging.CategoryEmbedding, "NewEngine")
	defer timer.Stop()

	logging.Embedding("creating embedding engine: provider=%s", cfg.Provider)

	var engine Engine
	var err error

	switch cfg.Provider {
	case "ollama":
		engine, err = NewOllamaEngine(cfg.OllamaEndpoint, cfg.OllamaModel)
	case "genai":
		engine, err = NewGenAIEngine(cfg.GenAIAPIKey, cfg.GenAIModel, cfg.TaskType)
	case "local", "":
		engine, err = NewLocalEngine(cfg.LocalDimensions)
	default:
		err = fmt.Errorf("unsupported embedding provider: %s (use 'ollama', 'genai', or 'local')", cfg.Provider)
	}

	if err != nil {
		logging.Get(logging.CategoryEmbedding).Error("failed to create embedding engine: %v", err)
		return nil, err
	}

	logging.Embedding("embedding engine ready: name=%s, dimensions=%d", engine.Name(), engine.Dimensions())
	return engine, nil
}

// CosineSimilarity calculates the cosine similarity between two vectors.
// Returns a value between -1 and 1. Zero-magnitude vectors yield 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vectors must have the same length: %d != %d", len(a), len(b))
	}

	var dot, aMag, bMag float64
	for i := 0; i < len(a); i++ {
		dot += float64(a[i]) * float64(b[i])
		aMag += float64(a[i]) * float64(a[i])
		bMag += float64(b[i]) * float64(b[i])
	}

	if aMag == 0 || bMag == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(aMag) * math.Sqrt(bMag)), nil
}

// SimilarityResult is one nearest-neighbor hit.
type SimilarityResult struct {
	Index      int
	Similarity float64
}

// FindTopK returns the indices of the k corpus vectors most similar to the
// query, in descending similarity order. Ties keep corpus order.
func FindTopK(query []float32, corpus [][]float32, k int) ([]SimilarityResult, error) {
	timer := logging.StartTimer(logging.CategoryEmbedding, "FindTopK")
	defer timer.Stop()

	if k <= 0 {
		k = 10
	}

	results := make([]SimilarityResult, 0, len(corpus))
	skipped := 0
	for i, vec := range corpus {
		sim, err := CosineSimilarity(query, vec)
		if err != nil {
			skipped++
			continue
		}
		results = append(results, SimilarityResult{Index: i, Similarity: sim})
	}
	if skipped > 0 {
		logging.Get(logging.CategoryEmbedding).Warn("FindTopK: skipped %d vectors due to dimension mismatch", skipped)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > k {
		results = results[:k]
	}

	logging.EmbeddingDebug("FindTopK: returning %d of %d candidates", len(results), len(corpus))
	return results, nil
}
