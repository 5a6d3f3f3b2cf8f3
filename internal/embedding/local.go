package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// LocalEngine produces deterministic bag-of-words embeddings by feature
// hashing. It needs no external service, so identical text always maps to
// the identical vector. Quality is far below the model-backed engines; it
// exists for offline development and tests.
type LocalEngine struct {
	dims int
}

// NewLocalEngine creates a hashing engine with the given dimensionality.
func NewLocalEngine(dims int) (*LocalEngine, error) {
	if dims <= 0 {
		dims = 256
	}
	return &LocalEngine{dims: dims}, nil
}

// Embed generates an embedding for a single text.
func (e *LocalEngine) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dims)
	for _, tok := range tokenize(text) {
		h := fnv.New64a()
		h.Write([]byte(tok))
		sum := h.Sum64()
		bucket := int(sum % uint64(e.dims))
		// Sign bit from the hash keeps buckets from accumulating only
		// positive mass.
		if sum&(1<<63) != 0 {
			vec[bucket] -= 1
		} else {
			vec[bucket] += 1
		}
	}

	var mag float64
	for _, v := range vec {
		mag += float64(v) * float64(v)
	}
	if mag > 0 {
		norm := float32(math.Sqrt(mag))
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// EmbedBatch generates embeddings for multiple texts.
func (e *LocalEngine) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		emb, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = emb
	}
	return embeddings, nil
}

// Dimensions returns the dimensionality of embeddings.
func (e *LocalEngine) Dimensions() int {
	return e.dims
}

// Name returns the engine name.
func (e *LocalEngine) Name() string {
	return fmt.Sprintf("local:hash-%d", e.dims)
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
