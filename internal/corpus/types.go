// Package corpus holds the static insight dataset and compiles it into
// retrievable documents for the semantic index.
package corpus

import "fmt"

// Impact is the qualitative impact level of an insight.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Valid reports whether the impact level is one of the known values.
func (i Impact) Valid() bool {
	switch i {
	case ImpactHigh, ImpactMedium, ImpactLow:
		return true
	}
	return false
}

// Action is a single proposed response to an insight, scored by value and
// effort on a 1-10 scale.
type Action struct {
	Content string `json:"content"`
	Value   int    `json:"value"`
	Effort  int    `json:"effort"`
}

// Ratio returns the value-to-effort ratio.
func (a Action) Ratio() float64 {
	return float64(a.Value) / float64(a.Effort)
}

// Quick-win category labels, in rule priority order.
const (
	CategoryHighValueQuickWin = "high-value-quick-win"
	CategoryQuickWin          = "quick-win"
	CategoryHighValue         = "high-value"
	CategoryLowEffort         = "low-effort"
	CategoryStandard          = "standard"
)

// Category classifies the action by value/effort thresholds. Rules are
// evaluated in priority order; an action matching an earlier rule never
// falls through to a later one.
func (a Action) Category() string {
	switch {
	case a.Value >= 7 && a.Effort <= 4:
		return CategoryHighValueQuickWin
	case a.Value >= 6 && a.Effort <= 3:
		return CategoryQuickWin
	case a.Value >= 8:
		return CategoryHighValue
	case a.Effort <= 3:
		return CategoryLowEffort
	default:
		return CategoryStandard
	}
}

// Insight is a company-level observation with proposed actions.
type Insight struct {
	Company  string   `json:"company"`
	Homepage string   `json:"homepage"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Impact   Impact   `json:"impact"`
	Links    []string `json:"links"`
	Actions  []Action `json:"proposedActions"`
}

// Validate checks score bounds and the impact enum.
func (in Insight) Validate() error {
	if in.Company == "" {
		return fmt.Errorf("insight %q: company is required", in.Title)
	}
	if !in.Impact.Valid() {
		return fmt.Errorf("insight %q: invalid impact %q", in.Title, in.Impact)
	}
	for i, a := range in.Actions {
		if a.Value < 1 || a.Value > 10 {
			return fmt.Errorf("insight %q action %d: value %d out of range [1,10]", in.Title, i, a.Value)
		}
		if a.Effort < 1 || a.Effort > 10 {
			return fmt.Errorf("insight %q action %d: effort %d out of range [1,10]", in.Title, i, a.Effort)
		}
	}
	return nil
}
