package corpus

// DocumentKind discriminates the retrievable document union.
type DocumentKind string

const (
	KindInsight DocumentKind = "insight"
	KindAction  DocumentKind = "action"
)

// Document is a single retrievable unit: either an insight-level document or
// an action-level document carrying a back-reference to its parent insight.
// Documents are immutable after Build; identity is the stable index into the
// built corpus.
type Document struct {
	// Used for all kinds
	Kind     DocumentKind `json:"documentType"`
	Text     string       `json:"pageContent"` // embedding text
	Company  string       `json:"company"`
	Homepage string       `json:"homepage,omitempty"`
	Impact   Impact       `json:"impact"`
	Links    []string     `json:"links,omitempty"`

	// Insight documents
	Title   string `json:"title,omitempty"`
	Summary string `json:"summary,omitempty"`

	// Action documents
	ActionContent string  `json:"actionContent,omitempty"`
	Value         int     `json:"value,omitempty"`
	Effort        int     `json:"effort,omitempty"`
	Ratio         float64 `json:"valueToEffortRatio,omitempty"`
	Category      string  `json:"quickWinCategory,omitempty"`
	ActionIndex   int     `json:"actionIndex,omitempty"`

	// Back-reference for action documents
	InsightTitle   string `json:"insightTitle,omitempty"`
	InsightSummary string `json:"insightSummary,omitempty"`
}

// IsAction reports whether the document is an action-level document.
func (d Document) IsAction() bool { return d.Kind == KindAction }
