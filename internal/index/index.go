// Package index maintains the in-memory semantic index over the insight
// corpus: document embeddings, cosine top-k search, and hot rebuild when the
// corpus file changes on disk.
package index

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"loomii/internal/corpus"
	"loomii/internal/embedding"
	"loomii/internal/logging"
)

// embedBatchSize bounds a single engine call; batches embed concurrently.
const embedBatchSize = 16

// Hit is one search result: a document, its cosine similarity to the query,
// and the document's position in the built corpus. Position gives callers a
// stable tie-break when two hits score identically.
type Hit struct {
	Document corpus.Document
	Score    float64
	Position int
}

// Index is the in-memory semantic index. Search runs against an immutable
// snapshot, so rebuilds never block readers mid-query.
type Index struct {
	engine embedding.Engine
	cache  *EmbeddingCache // optional

	mu      sync.RWMutex
	docs    []corpus.Document
	vectors [][]float32
}

// New creates an index backed by the given engine. cache may be nil.
func New(engine embedding.Engine, cache *EmbeddingCache) *Index {
	return &Index{engine: engine, cache: cache}
}

// Build compiles insights into documents, embeds them, and atomically swaps
// the new snapshot in. Safe to call concurrently with Search.
func (ix *Index) Build(ctx context.Context, insights []corpus.Insight) error {
	timer := logging.StartTimer(logging.CategoryIndex, "Index.Build")
	defer timer.Stop()

	docs := corpus.Build(insights)
	vectors, err := ix.embedAll(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to embed corpus: %w", err)
	}

	ix.mu.Lock()
	ix.docs = docs
	ix.vectors = vectors
	ix.mu.Unlock()

	logging.Index("index built: %d documents, engine=%s", len(docs), ix.engine.Name())
	return nil
}

func (ix *Index) embedAll(ctx context.Context, docs []corpus.Document) ([][]float32, error) {
	vectors := make([][]float32, len(docs))

	// Cached vectors first; only the misses hit the engine.
	var missIdx []int
	if ix.cache != nil {
		for i, d := range docs {
			vec, err := ix.cache.Get(ix.engine.Name(), d.Text)
			if err != nil {
				logging.Get(logging.CategoryIndex).Warn("cache read failed for doc %d: %v", i, err)
			}
			if vec != nil {
				vectors[i] = vec
			} else {
				missIdx = append(missIdx, i)
			}
		}
		logging.IndexDebug("embedding cache: %d hits, %d misses", len(docs)-len(missIdx), len(missIdx))
	} else {
		missIdx = make([]int, len(docs))
		for i := range docs {
			missIdx[i] = i
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for start := 0; start < len(missIdx); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(missIdx) {
			end = len(missIdx)
		}
		batch := missIdx[start:end]
		g.Go(func() error {
			texts := make([]string, len(batch))
			for i, idx := range batch {
				texts[i] = docs[idx].Text
			}
			embs, err := ix.engine.EmbedBatch(gctx, texts)
			if err != nil {
				return err
			}
			if len(embs) != len(batch) {
				return fmt.Errorf("engine returned %d embeddings for %d texts", len(embs), len(batch))
			}
			for i, idx := range batch {
				vectors[idx] = embs[i]
				if ix.cache != nil {
					if err := ix.cache.Put(ix.engine.Name(), docs[idx].Text, embs[i]); err != nil {
						logging.Get(logging.CategoryIndex).Warn("cache write failed for doc %d: %v", idx, err)
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

// Search embeds the query and returns the k most similar documents in
// descending similarity order.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	ix.mu.RLock()
	docs, vectors := ix.docs, ix.vectors
	ix.mu.RUnlock()

	if len(docs) == 0 {
		return nil, fmt.Errorf("index is empty")
	}

	queryVec, err := ix.engine.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := embedding.FindTopK(queryVec, vectors, k)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, len(results))
	for i, r := range results {
		hits[i] = Hit{Document: docs[r.Index], Score: r.Similarity, Position: r.Index}
	}
	logging.RetrievalDebug("search %q: %d hits", query, len(hits))
	return hits, nil
}

// Snapshot returns the current document set. The slice is shared; callers
// must not mutate it.
func (ix *Index) Snapshot() []corpus.Document {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.docs
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}
