package agent

import (
	"fmt"
	"strings"

	"loomii/internal/corpus"
	"loomii/internal/retrieval"
)

// FormatResults renders retrieval results into the context block handed to
// the model. Action and insight documents get different layouts.
func FormatResults(res retrieval.Result) string {
	if len(res.Documents) == 0 {
		return "No relevant insights found in the corpus."
	}

	blocks := make([]string, len(res.Documents))
	for i, d := range res.Documents {
		if d.IsAction() {
			blocks[i] = formatAction(i+1, d)
		} else {
			blocks[i] = formatInsight(i+1, d)
		}
	}
	return strings.Join(blocks, "\n")
}

func formatAction(n int, d corpus.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n--- Action %d ---\n", n)
	fmt.Fprintf(&b, "Company: %s\n", d.Company)
	fmt.Fprintf(&b, "Action: %s\n", d.ActionContent)
	fmt.Fprintf(&b, "Value Score: %d/10\n", d.Value)
	fmt.Fprintf(&b, "Effort Score: %d/10\n", d.Effort)
	fmt.Fprintf(&b, "Value-to-Effort Ratio: %.2f\n", d.Ratio)
	fmt.Fprintf(&b, "Quick Win Category: %s\n", d.Category)
	fmt.Fprintf(&b, "Context: %s\n", d.InsightTitle)
	fmt.Fprintf(&b, "Impact Level: %s\n", d.Impact)
	fmt.Fprintf(&b, "Source Links:\n%s\n", formatLinks(d.Links))
	return b.String()
}

func formatInsight(n int, d corpus.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n--- Insight %d ---\n", n)
	fmt.Fprintf(&b, "Company: %s\n", d.Company)
	fmt.Fprintf(&b, "Title: %s\n", d.Title)
	fmt.Fprintf(&b, "Impact: %s\n", d.Impact)
	fmt.Fprintf(&b, "Content: %s\n", d.Text)
	fmt.Fprintf(&b, "Source Links:\n%s\n", formatLinks(d.Links))
	return b.String()
}

func formatLinks(links []string) string {
	if len(links) == 0 {
		return "No source links available"
	}
	out := make([]string, len(links))
	for i, link := range links {
		out[i] = fmt.Sprintf("[Source %d](%s)", i+1, link)
	}
	return strings.Join(out, "\n")
}
