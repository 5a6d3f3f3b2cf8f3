package agent

import (
	"context"
	"fmt"
	"strings"

	"loomii/internal/corpus"
	"loomii/internal/retrieval"
)

// SearchRequest is the non-streaming search operation's input.
type SearchRequest struct {
	Query         string  `json:"query"`
	SearchType    string  `json:"searchType"`
	K             int     `json:"k"`
	IncludeScores bool    `json:"includeScores"`
	MinValue      int     `json:"minValue"`
	MaxEffort     int     `json:"maxEffort"`
	MinRatio      float64 `json:"minRatio"`
}

// SearchResponse mirrors the request back with the result set.
type SearchResponse struct {
	Results    []corpus.Document      `json:"results"`
	Scores     []float64              `json:"scores,omitempty"`
	SearchType string                 `json:"searchType"`
	Query      string                 `json:"query"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// queryOptional lists the search types that work without free text: their
// recall query is fixed.
func queryOptional(s retrieval.Strategy) bool {
	switch s {
	case retrieval.StrategyQuickWins, retrieval.StrategyHighValue, retrieval.StrategyValueEffortRatio:
		return true
	}
	return false
}

// Search runs one retrieval strategy directly, without classification or a
// model call.
func (a *Agent) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	strategy, err := retrieval.ParseStrategy(req.SearchType)
	if err != nil {
		return SearchResponse{}, err
	}
	if strings.TrimSpace(req.Query) == "" && !queryOptional(strategy) {
		return SearchResponse{}, fmt.Errorf("query is required for search type %q", req.SearchType)
	}

	q := retrieval.Query{
		Text:     req.Query,
		Strategy: strategy,
		K:        req.K,
		Filters: retrieval.Filters{
			MinValue:  req.MinValue,
			MaxEffort: req.MaxEffort,
			MinRatio:  req.MinRatio,
		},
	}
	switch strategy {
	case retrieval.StrategyByCompany:
		q.Filters.Company = req.Query
	case retrieval.StrategyByImpact:
		q.Filters.Impact = corpus.Impact(strings.ToLower(req.Query))
	}

	res, err := a.engine.Retrieve(ctx, q)
	if err != nil {
		return SearchResponse{}, err
	}

	metadata := map[string]interface{}{
		"strategy":    string(res.Strategy),
		"resultCount": len(res.Documents),
	}
	// Filter strategies echo the effective thresholds they applied.
	for key, value := range res.Criteria {
		metadata[key] = value
	}

	resp := SearchResponse{
		Results:    res.Documents,
		SearchType: req.SearchType,
		Query:      req.Query,
		Metadata:   metadata,
	}
	if req.IncludeScores {
		resp.Scores = res.Scores
	}
	return resp, nil
}
