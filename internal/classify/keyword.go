package classify

import (
	"context"
	"strings"

	"loomii/internal/corpus"
	"loomii/internal/retrieval"
)

// KeywordClassifier recognizes strategy intent from fixed phrases. It is the
// first and cheapest layer of the chain.
type KeywordClassifier struct {
	companies []string // lower-cased
	filteredK int      // k for quickWins/highValue/valueEffortRatio
}

// NewKeywordClassifier builds the heuristic layer. companies must be the
// lower-cased names present in the corpus (see corpus.CompanyNames).
func NewKeywordClassifier(companies []string, filteredK int) *KeywordClassifier {
	if filteredK <= 0 {
		filteredK = 5
	}
	return &KeywordClassifier{companies: companies, filteredK: filteredK}
}

func (k *KeywordClassifier) Name() string { return "keyword" }

// Classify matches phrase groups in priority order: quick wins, high value,
// value/effort ratio, company names, impact levels.
func (k *KeywordClassifier) Classify(_ context.Context, query string) (Decision, bool) {
	q := strings.ToLower(query)

	contains := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(q, s) {
				return true
			}
		}
		return false
	}

	if contains("quick win", "low effort", "easy", "immediate") ||
		(contains("today") && contains("value", "return")) {
		return Decision{Strategy: retrieval.StrategyQuickWins, K: k.filteredK}, true
	}

	if contains("high value", "highest value", "most valuable", "biggest impact", "strategic") {
		return Decision{Strategy: retrieval.StrategyHighValue, K: k.filteredK}, true
	}

	if contains("roi", "return on investment", "efficient", "bang for buck", "value versus", "value vs") {
		return Decision{Strategy: retrieval.StrategyValueEffortRatio, K: k.filteredK}, true
	}

	for _, company := range k.companies {
		if strings.Contains(q, company) {
			return Decision{Strategy: retrieval.StrategyByCompany, SearchTerm: company}, true
		}
	}

	for _, level := range []corpus.Impact{corpus.ImpactHigh, corpus.ImpactMedium, corpus.ImpactLow} {
		if strings.Contains(q, string(level)+" impact") {
			return Decision{Strategy: retrieval.StrategyByImpact, SearchTerm: string(level)}, true
		}
	}

	return Decision{}, false
}
