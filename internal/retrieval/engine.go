package retrieval

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"loomii/internal/corpus"
	"loomii/internal/index"
	"loomii/internal/logging"
)

// ErrUnavailable indicates the semantic index could not serve the search.
// Strategies never retry internally; retry policy belongs to the caller.
var ErrUnavailable = errors.New("retrieval unavailable")

// Broad-recall queries for the filter strategies. The index ranks by
// embedding similarity, not by the numeric predicate, so each strategy
// searches wide and filters after.
const (
	quickWinsRecallQuery = "quick win high value low effort action competitive advantage"
	highValueRecallQuery = "high value action competitive advantage strategic"
	ratioRecallQuery     = "efficient action high return on investment competitive"
)

// Searcher is the slice of the semantic index the engine needs.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]index.Hit, error)
}

// Config exposes the per-strategy defaults and fetch sizes.
type Config struct {
	DefaultK           int     `yaml:"default_k" json:"default_k"`
	QuickWinsMinValue  int     `yaml:"quick_wins_min_value" json:"quick_wins_min_value"`
	QuickWinsMaxEffort int     `yaml:"quick_wins_max_effort" json:"quick_wins_max_effort"`
	HighValueMinValue  int     `yaml:"high_value_min_value" json:"high_value_min_value"`
	MinRatio           float64 `yaml:"min_ratio" json:"min_ratio"`

	// Over-fetch sizing: fetch max(OverFetchFactor*k, floor) candidates
	// before filtering.
	OverFetchFactor     int `yaml:"over_fetch_factor" json:"over_fetch_factor"`
	QuickWinsFetchFloor int `yaml:"quick_wins_fetch_floor" json:"quick_wins_fetch_floor"`
	RatioFetchFloor     int `yaml:"ratio_fetch_floor" json:"ratio_fetch_floor"`
	ExactMatchFetch     int `yaml:"exact_match_fetch" json:"exact_match_fetch"`
}

// DefaultConfig returns the documented strategy defaults.
func DefaultConfig() Config {
	return Config{
		DefaultK:            3,
		QuickWinsMinValue:   6,
		QuickWinsMaxEffort:  4,
		HighValueMinValue:   7,
		MinRatio:            1.5,
		OverFetchFactor:     4,
		QuickWinsFetchFloor: 20,
		RatioFetchFloor:     30,
		ExactMatchFetch:     20,
	}
}

// Filters carries the optional per-query overrides of the strategy defaults.
type Filters struct {
	MinValue  int
	MaxEffort int
	MinRatio  float64
	Company   string
	Impact    corpus.Impact
}

// Query is one retrieval request.
type Query struct {
	Text     string
	Strategy Strategy
	K        int
	Filters  Filters
}

// Result is a bounded, deterministically ordered result set. Scores holds the
// similarity score per document; filter strategies reorder documents, so each
// score travels with its document. Criteria echoes the effective thresholds a
// filter strategy applied, after default substitution; nil for the others.
type Result struct {
	Strategy  Strategy
	Documents []corpus.Document
	Scores    []float64
	Criteria  map[string]interface{}
}

// Engine dispatches retrieval queries to the strategy implementations.
type Engine struct {
	searcher Searcher
	cfg      Config
}

// NewEngine creates a retrieval engine over the given searcher.
func NewEngine(searcher Searcher, cfg Config) *Engine {
	if cfg.DefaultK <= 0 {
		cfg = DefaultConfig()
	}
	return &Engine{searcher: searcher, cfg: cfg}
}

// Retrieve runs the query's strategy. Every returned document is present in
// the corpus verbatim; strategies never synthesize content.
func (e *Engine) Retrieve(ctx context.Context, q Query) (Result, error) {
	timer := logging.StartTimer(logging.CategoryRetrieval, "Engine.Retrieve")
	defer timer.Stop()

	if q.K <= 0 {
		q.K = e.cfg.DefaultK
	}
	logging.Retrieval("retrieve: strategy=%s k=%d text=%q", q.Strategy, q.K, q.Text)

	switch q.Strategy {
	case StrategySimilarity, "":
		return e.similarity(ctx, q)
	case StrategyQuickWins:
		return e.quickWins(ctx, q)
	case StrategyHighValue:
		return e.highValue(ctx, q)
	case StrategyValueEffortRatio:
		return e.valueEffortRatio(ctx, q)
	case StrategyByCompany:
		return e.byCompany(ctx, q)
	case StrategyByImpact:
		return e.byImpact(ctx, q)
	}
	return Result{}, fmt.Errorf("unknown retrieval strategy: %q", q.Strategy)
}

func (e *Engine) search(ctx context.Context, query string, k int) ([]index.Hit, error) {
	hits, err := e.searcher.Search(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return hits, nil
}

func (e *Engine) similarity(ctx context.Context, q Query) (Result, error) {
	hits, err := e.search(ctx, q.Text, q.K)
	if err != nil {
		return Result{}, err
	}
	return toResult(StrategySimilarity, hits), nil
}

func (e *Engine) quickWins(ctx context.Context, q Query) (Result, error) {
	minValue := q.Filters.MinValue
	if minValue == 0 {
		minValue = e.cfg.QuickWinsMinValue
	}
	maxEffort := q.Filters.MaxEffort
	if maxEffort == 0 {
		maxEffort = e.cfg.QuickWinsMaxEffort
	}

	hits, err := e.search(ctx, quickWinsRecallQuery, e.overFetch(q.K, e.cfg.QuickWinsFetchFloor))
	if err != nil {
		return Result{}, err
	}

	kept := filterHits(hits, func(d corpus.Document) bool {
		return d.IsAction() && d.Value >= minValue && d.Effort <= maxEffort
	})
	sortHits(kept, byRatioDesc)
	kept = truncate(kept, q.K)

	logging.Retrieval("quickWins: %d results (value>=%d, effort<=%d)", len(kept), minValue, maxEffort)
	res := toResult(StrategyQuickWins, kept)
	res.Criteria = map[string]interface{}{
		"minValue":  minValue,
		"maxEffort": maxEffort,
		"criteria":  "high value, low effort",
	}
	return res, nil
}

func (e *Engine) highValue(ctx context.Context, q Query) (Result, error) {
	minValue := q.Filters.MinValue
	if minValue == 0 {
		minValue = e.cfg.HighValueMinValue
	}

	hits, err := e.search(ctx, highValueRecallQuery, e.overFetch(q.K, e.cfg.QuickWinsFetchFloor))
	if err != nil {
		return Result{}, err
	}

	kept := filterHits(hits, func(d corpus.Document) bool {
		return d.IsAction() && d.Value >= minValue
	})
	sortHits(kept, byValueDesc)
	kept = truncate(kept, q.K)

	logging.Retrieval("highValue: %d results (value>=%d)", len(kept), minValue)
	res := toResult(StrategyHighValue, kept)
	res.Criteria = map[string]interface{}{
		"minValue": minValue,
		"criteria": "high value actions",
	}
	return res, nil
}

func (e *Engine) valueEffortRatio(ctx context.Context, q Query) (Result, error) {
	minRatio := q.Filters.MinRatio
	if minRatio == 0 {
		minRatio = e.cfg.MinRatio
	}

	hits, err := e.search(ctx, ratioRecallQuery, e.overFetch(q.K, e.cfg.RatioFetchFloor))
	if err != nil {
		return Result{}, err
	}

	kept := filterHits(hits, func(d corpus.Document) bool {
		return d.IsAction() && d.Ratio >= minRatio
	})
	sortHits(kept, byRatioDesc)
	kept = truncate(kept, q.K)

	logging.Retrieval("valueEffortRatio: %d results (ratio>=%.2f)", len(kept), minRatio)
	res := toResult(StrategyValueEffortRatio, kept)
	res.Criteria = map[string]interface{}{
		"minRatio": minRatio,
		"criteria": "high value-to-effort ratio",
	}
	return res, nil
}

func (e *Engine) byCompany(ctx context.Context, q Query) (Result, error) {
	name := q.Filters.Company
	if name == "" {
		name = q.Text
	}

	hits, err := e.search(ctx, "company: "+name, e.cfg.ExactMatchFetch)
	if err != nil {
		return Result{}, err
	}

	kept := filterHits(hits, func(d corpus.Document) bool {
		return strings.EqualFold(d.Company, name)
	})
	logging.Retrieval("byCompany: %d results for %q", len(kept), name)
	return toResult(StrategyByCompany, kept), nil
}

func (e *Engine) byImpact(ctx context.Context, q Query) (Result, error) {
	level := q.Filters.Impact
	if level == "" {
		level = corpus.Impact(strings.ToLower(q.Text))
	}
	if !level.Valid() {
		return Result{}, fmt.Errorf("invalid impact level: %q", level)
	}

	hits, err := e.search(ctx, "impact: "+string(level), e.cfg.ExactMatchFetch)
	if err != nil {
		return Result{}, err
	}

	kept := filterHits(hits, func(d corpus.Document) bool {
		return d.Impact == level
	})
	logging.Retrieval("byImpact: %d results for %s", len(kept), level)
	return toResult(StrategyByImpact, kept), nil
}

// overFetch sizes the broad search so filtering still leaves room for k
// qualifying results.
func (e *Engine) overFetch(k, floor int) int {
	n := e.cfg.OverFetchFactor * k
	if n < floor {
		n = floor
	}
	return n
}

func filterHits(hits []index.Hit, keep func(corpus.Document) bool) []index.Hit {
	out := make([]index.Hit, 0, len(hits))
	for _, h := range hits {
		if keep(h.Document) {
			out = append(out, h)
		}
	}
	return out
}

// byRatioDesc orders by descending ratio, then descending value, then corpus
// insertion order. Floating-point ratio ties are otherwise nondeterministic.
func byRatioDesc(a, b index.Hit) bool {
	if a.Document.Ratio != b.Document.Ratio {
		return a.Document.Ratio > b.Document.Ratio
	}
	if a.Document.Value != b.Document.Value {
		return a.Document.Value > b.Document.Value
	}
	return a.Position < b.Position
}

func byValueDesc(a, b index.Hit) bool {
	if a.Document.Value != b.Document.Value {
		return a.Document.Value > b.Document.Value
	}
	return a.Position < b.Position
}

func sortHits(hits []index.Hit, less func(a, b index.Hit) bool) {
	sort.SliceStable(hits, func(i, j int) bool { return less(hits[i], hits[j]) })
}

func truncate(hits []index.Hit, k int) []index.Hit {
	if len(hits) > k {
		return hits[:k]
	}
	return hits
}

func toResult(s Strategy, hits []index.Hit) Result {
	r := Result{
		Strategy:  s,
		Documents: make([]corpus.Document, len(hits)),
		Scores:    make([]float64, len(hits)),
	}
	for i, h := range hits {
		r.Documents[i] = h.Document
		r.Scores[i] = h.Score
	}
	return r
}
