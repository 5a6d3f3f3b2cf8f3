package classify

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"loomii/internal/logging"
	"loomii/internal/retrieval"
)

const classifierSystemPrompt = `You classify competitive-intelligence questions into a retrieval strategy.
Respond with a single JSON object and nothing else:
{"strategy": "<name>", "k": <number>, "searchTerm": "<optional>"}

Strategies:
- "similarity": general questions answered by semantic search over the corpus
- "quickWins": the user wants high-value, low-effort actions
- "highValue": the user wants the most valuable strategic actions
- "valueEffortRatio": the user asks about efficiency, ROI, or return per effort
- "byCompany": the question is about one specific company; set searchTerm to its name
- "byImpact": the question asks for a specific impact level; set searchTerm to "high", "medium", or "low"

k is the number of results to retrieve, between 1 and 20.`

// Completer is the completion call the LLM classifier needs. Satisfied by
// the llm client.
type Completer interface {
	CompleteWithSystem(ctx context.Context, system, user string) (string, error)
}

// LLMClassifier escalates to a language model when the keyword layer has no
// match. Its output is validated against the fixed strategy set and k bounds
// before it is trusted; anything else is treated as a miss so the chain can
// fall back.
type LLMClassifier struct {
	completer Completer
	timeout   time.Duration
}

// NewLLMClassifier wraps a completer with a hard per-call timeout. The
// timeout bounds total response time independent of provider latency.
func NewLLMClassifier(completer Completer, timeout time.Duration) *LLMClassifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &LLMClassifier{completer: completer, timeout: timeout}
}

func (l *LLMClassifier) Name() string { return "llm" }

func (l *LLMClassifier) Classify(ctx context.Context, query string) (Decision, bool) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	raw, err := l.completer.CompleteWithSystem(ctx, classifierSystemPrompt, query)
	if err != nil {
		logging.ClassifyDebug("llm classifier failed: %v", err)
		return Decision{}, false
	}

	var d Decision
	if err := json.Unmarshal([]byte(extractJSON(raw)), &d); err != nil {
		logging.ClassifyDebug("llm classifier returned malformed output: %v", err)
		return Decision{}, false
	}
	if !d.Strategy.Valid() {
		logging.ClassifyDebug("llm classifier returned unknown strategy %q", d.Strategy)
		return Decision{}, false
	}
	if d.K < 1 || d.K > 20 {
		logging.ClassifyDebug("llm classifier returned k=%d out of bounds", d.K)
		return Decision{}, false
	}
	if d.Strategy == retrieval.StrategyByCompany && d.SearchTerm == "" {
		return Decision{}, false
	}
	return d, true
}

// extractJSON strips code fences and surrounding prose the model may wrap
// around the object.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
