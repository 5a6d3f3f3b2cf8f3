package corpus

import (
	"fmt"
	"sort"
	"strings"

	"loomii/internal/logging"
)

// Build compiles the insight dataset into retrievable documents: one document
// per insight followed by one document per proposed action. The transform is
// pure and deterministic, so it can be re-run on every index rebuild.
func Build(insights []Insight) []Document {
	timer := logging.StartTimer(logging.CategoryIndex, "corpus.Build")
	defer timer.Stop()

	docs := make([]Document, 0, len(insights)*4)
	for _, in := range insights {
		docs = append(docs, insightDocument(in))
	}
	for _, in := range insights {
		for i, a := range in.Actions {
			docs = append(docs, actionDocument(in, i, a))
		}
	}

	logging.Index("built %d documents from %d insights", len(docs), len(insights))
	return docs
}

func insightDocument(in Insight) Document {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\n", in.Company)
	fmt.Fprintf(&b, "Homepage: %s\n", in.Homepage)
	fmt.Fprintf(&b, "Title: %s\n", in.Title)
	fmt.Fprintf(&b, "Summary: %s\n", in.Summary)
	fmt.Fprintf(&b, "Impact: %s\n", in.Impact)
	b.WriteString("Proposed Actions:")
	for i, a := range in.Actions {
		fmt.Fprintf(&b, "\n%d. %s (Value: %d, Effort: %d)", i+1, a.Content, a.Value, a.Effort)
	}
	fmt.Fprintf(&b, "\nLinks: %s", strings.Join(in.Links, ", "))

	return Document{
		Kind:     KindInsight,
		Text:     b.String(),
		Company:  in.Company,
		Homepage: in.Homepage,
		Title:    in.Title,
		Summary:  in.Summary,
		Impact:   in.Impact,
		Links:    in.Links,
	}
}

func actionDocument(in Insight, idx int, a Action) Document {
	var b strings.Builder
	fmt.Fprintf(&b, "Action: %s\n", a.Content)
	fmt.Fprintf(&b, "Company Context: %s - %s\n", in.Company, in.Title)
	fmt.Fprintf(&b, "Insight Summary: %s\n", in.Summary)
	fmt.Fprintf(&b, "Value Score: %d/10\n", a.Value)
	fmt.Fprintf(&b, "Effort Score: %d/10\n", a.Effort)
	fmt.Fprintf(&b, "Value-to-Effort Ratio: %.2f\n", a.Ratio())
	fmt.Fprintf(&b, "Impact Level: %s\n", in.Impact)
	fmt.Fprintf(&b, "Quick Win Category: %s\n", a.Category())
	fmt.Fprintf(&b, "Competitive Context: This action is based on analysis of %s's strategy and market positioning.", in.Company)

	return Document{
		Kind:           KindAction,
		Text:           b.String(),
		Company:        in.Company,
		Homepage:       in.Homepage,
		Impact:         in.Impact,
		Links:          in.Links,
		ActionContent:  a.Content,
		Value:          a.Value,
		Effort:         a.Effort,
		Ratio:          a.Ratio(),
		Category:       a.Category(),
		ActionIndex:    idx,
		InsightTitle:   in.Title,
		InsightSummary: in.Summary,
	}
}

// CompanyNames returns the distinct lower-cased company names present in the
// dataset, sorted for determinism. Feeds the classifier's company heuristics.
func CompanyNames(insights []Insight) []string {
	seen := make(map[string]struct{})
	for _, in := range insights {
		seen[strings.ToLower(in.Company)] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
