package classify

import (
	"context"
	"errors"
	"testing"
	"time"

	"loomii/internal/retrieval"
)

var testCompanies = []string{"digital guardian", "forcepoint", "zscaler"}

func newKeyword() *KeywordClassifier {
	return NewKeywordClassifier(testCompanies, 5)
}

func TestKeywordClassifier(t *testing.T) {
	tests := []struct {
		query    string
		strategy retrieval.Strategy
		k        int
		term     string
	}{
		{"give me quick wins", retrieval.StrategyQuickWins, 5, ""},
		{"what can I do with low effort", retrieval.StrategyQuickWins, 5, ""},
		{"easy improvements", retrieval.StrategyQuickWins, 5, ""},
		{"what brings value today", retrieval.StrategyQuickWins, 5, ""},
		{"immediate opportunities", retrieval.StrategyQuickWins, 5, ""},
		{"show high value actions", retrieval.StrategyHighValue, 5, ""},
		{"the most valuable moves", retrieval.StrategyHighValue, 5, ""},
		{"strategic opportunities", retrieval.StrategyHighValue, 5, ""},
		{"best roi", retrieval.StrategyValueEffortRatio, 5, ""},
		{"return on investment", retrieval.StrategyValueEffortRatio, 5, ""},
		{"most bang for buck", retrieval.StrategyValueEffortRatio, 5, ""},
		{"what is Zscaler doing", retrieval.StrategyByCompany, 0, "zscaler"},
		{"tell me about Digital Guardian pricing", retrieval.StrategyByCompany, 0, "digital guardian"},
		{"show high impact insights", retrieval.StrategyByImpact, 0, "high"},
		{"medium impact items", retrieval.StrategyByImpact, 0, "medium"},
	}
	k := newKeyword()
	for _, tt := range tests {
		d, ok := k.Classify(context.Background(), tt.query)
		if !ok {
			t.Errorf("%q: expected a match", tt.query)
			continue
		}
		if d.Strategy != tt.strategy || d.K != tt.k || d.SearchTerm != tt.term {
			t.Errorf("%q: got %+v, want strategy=%s k=%d term=%q", tt.query, d, tt.strategy, tt.k, tt.term)
		}
	}
}

func TestKeywordClassifierPriority(t *testing.T) {
	// "quick win" outranks the company mention.
	d, ok := newKeyword().Classify(context.Background(), "quick wins against zscaler")
	if !ok || d.Strategy != retrieval.StrategyQuickWins {
		t.Errorf("got %+v, want quickWins to win priority", d)
	}
}

func TestKeywordClassifierNoMatch(t *testing.T) {
	for _, q := range []string{"", "tell me about the market", "¯\\_(ツ)_/¯"} {
		if d, ok := newKeyword().Classify(context.Background(), q); ok {
			t.Errorf("%q: unexpected match %+v", q, d)
		}
	}
}

type fakeCompleter struct {
	out string
	err error
}

func (f *fakeCompleter) CompleteWithSystem(ctx context.Context, _, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.out, f.err
}

func TestLLMClassifier(t *testing.T) {
	tests := []struct {
		name   string
		out    string
		err    error
		wantOK bool
		want   Decision
	}{
		{
			name:   "valid",
			out:    `{"strategy": "quickWins", "k": 5}`,
			wantOK: true,
			want:   Decision{Strategy: retrieval.StrategyQuickWins, K: 5},
		},
		{
			name:   "fenced json",
			out:    "```json\n{\"strategy\": \"byCompany\", \"k\": 3, \"searchTerm\": \"zscaler\"}\n```",
			wantOK: true,
			want:   Decision{Strategy: retrieval.StrategyByCompany, K: 3, SearchTerm: "zscaler"},
		},
		{name: "unknown strategy", out: `{"strategy": "fuzzy", "k": 5}`},
		{name: "k too large", out: `{"strategy": "similarity", "k": 21}`},
		{name: "k too small", out: `{"strategy": "similarity", "k": 0}`},
		{name: "company without term", out: `{"strategy": "byCompany", "k": 3}`},
		{name: "not json", out: "sure, I'd use similarity search here"},
		{name: "provider error", err: errors.New("boom")},
	}
	for _, tt := range tests {
		cl := NewLLMClassifier(&fakeCompleter{out: tt.out, err: tt.err}, time.Second)
		d, ok := cl.Classify(context.Background(), "some query")
		if ok != tt.wantOK {
			t.Errorf("%s: ok = %v, want %v", tt.name, ok, tt.wantOK)
			continue
		}
		if ok && d != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.name, d, tt.want)
		}
	}
}

func TestChainTotality(t *testing.T) {
	fallback := Decision{Strategy: retrieval.StrategySimilarity, K: 3}
	chain := NewChain(fallback, newKeyword())

	for _, q := range []string{"", "unrelated question", "give me quick wins"} {
		d := chain.Classify(context.Background(), q)
		if !d.Strategy.Valid() {
			t.Errorf("%q: invalid strategy %q", q, d.Strategy)
		}
	}

	if d := chain.Classify(context.Background(), "nothing matches here"); d != fallback {
		t.Errorf("fallback not applied: %+v", d)
	}
}

func TestChainEscalatesToLLM(t *testing.T) {
	llm := NewLLMClassifier(&fakeCompleter{out: `{"strategy": "highValue", "k": 7}`}, time.Second)
	chain := NewChain(Decision{Strategy: retrieval.StrategySimilarity, K: 3}, newKeyword(), llm)

	// Keyword layer matches first; the LLM is never consulted.
	d := chain.Classify(context.Background(), "quick wins please")
	if d.Strategy != retrieval.StrategyQuickWins {
		t.Errorf("keyword layer bypassed: %+v", d)
	}

	// No keyword match escalates.
	d = chain.Classify(context.Background(), "what should we focus on")
	if d.Strategy != retrieval.StrategyHighValue || d.K != 7 {
		t.Errorf("llm layer decision not used: %+v", d)
	}

	// A broken LLM falls through to the fixed default.
	broken := NewLLMClassifier(&fakeCompleter{err: errors.New("timeout")}, time.Second)
	chain = NewChain(Decision{Strategy: retrieval.StrategySimilarity, K: 3}, newKeyword(), broken)
	d = chain.Classify(context.Background(), "what should we focus on")
	if d.Strategy != retrieval.StrategySimilarity || d.K != 3 {
		t.Errorf("fallback not applied after llm failure: %+v", d)
	}
}
