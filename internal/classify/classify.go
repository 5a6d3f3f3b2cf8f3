// Package classify maps a free-text query to a retrieval strategy and a
// result-count hint. Classifiers are tried in order; the chain is total and
// always produces a valid decision.
package classify

import (
	"context"

	"loomii/internal/logging"
	"loomii/internal/retrieval"
)

// Decision is the outcome of classification: which strategy to run, how many
// results to request, and an optional extracted search term (company name or
// impact level).
type Decision struct {
	Strategy   retrieval.Strategy `json:"strategy"`
	K          int                `json:"k"`
	SearchTerm string             `json:"searchTerm,omitempty"`
}

// Classifier attempts to classify a query. ok=false means this classifier
// has no opinion and the next one in the chain should run.
type Classifier interface {
	Classify(ctx context.Context, query string) (d Decision, ok bool)
	Name() string
}

// Chain runs classifiers in order and falls back to a fixed default when
// none match. It never returns an error for any input.
type Chain struct {
	classifiers []Classifier
	fallback    Decision
}

// NewChain builds a chain with the given fallback decision.
func NewChain(fallback Decision, classifiers ...Classifier) *Chain {
	if !fallback.Strategy.Valid() {
		fallback.Strategy = retrieval.StrategySimilarity
	}
	if fallback.K <= 0 {
		fallback.K = 3
	}
	return &Chain{classifiers: classifiers, fallback: fallback}
}

// Classify returns the first classifier's decision, or the fallback.
func (c *Chain) Classify(ctx context.Context, query string) Decision {
	for _, cl := range c.classifiers {
		if d, ok := cl.Classify(ctx, query); ok {
			logging.Classify("query classified by %s: strategy=%s k=%d term=%q", cl.Name(), d.Strategy, d.K, d.SearchTerm)
			return d
		}
	}
	logging.Classify("no classifier matched, using fallback: strategy=%s k=%d", c.fallback.Strategy, c.fallback.K)
	return c.fallback
}
