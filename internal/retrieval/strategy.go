// Package retrieval wraps the semantic index with deterministic post-filter
// and sort strategies over the insight corpus.
package retrieval

import "fmt"

// Strategy is a named deterministic policy for turning raw nearest-neighbor
// candidates into an ordered result set.
type Strategy string

const (
	StrategySimilarity       Strategy = "similarity"
	StrategyQuickWins        Strategy = "quickWins"
	StrategyHighValue        Strategy = "highValue"
	StrategyValueEffortRatio Strategy = "valueEffortRatio"
	StrategyByCompany        Strategy = "byCompany"
	StrategyByImpact         Strategy = "byImpact"
)

// Valid reports whether s is one of the known strategies.
func (s Strategy) Valid() bool {
	switch s {
	case StrategySimilarity, StrategyQuickWins, StrategyHighValue,
		StrategyValueEffortRatio, StrategyByCompany, StrategyByImpact:
		return true
	}
	return false
}

// ParseStrategy converts a wire name to a Strategy. Accepts the short aliases
// used by the search endpoint ("company", "impact", "valueEffort").
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "similarity", "":
		return StrategySimilarity, nil
	case "quickWins":
		return StrategyQuickWins, nil
	case "highValue":
		return StrategyHighValue, nil
	case "valueEffortRatio", "valueEffort":
		return StrategyValueEffortRatio, nil
	case "byCompany", "company":
		return StrategyByCompany, nil
	case "byImpact", "impact":
		return StrategyByImpact, nil
	}
	return "", fmt.Errorf("unknown retrieval strategy: %q", name)
}
