package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"loomii/internal/agent"
)

var (
	searchType   string
	searchK      int
	searchScores bool
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the insight corpus",
	Long: `Runs a single retrieval against the corpus and prints the results.

Search types:
  similarity        semantic similarity (default)
  quickWins         high value, low effort actions
  highValue         highest value actions
  valueEffortRatio  best value-to-effort ratio
  byCompany         exact company match (query is the company name)
  byImpact          exact impact match (query is high, medium, or low)

Example:
  loomii search "zero trust" --type similarity --k 5
  loomii search --type quickWins`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "similarity", "Search type")
	searchCmd.Flags().IntVar(&searchK, "k", 0, "Number of results (0 = strategy default)")
	searchCmd.Flags().BoolVar(&searchScores, "scores", false, "Include similarity scores")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print raw JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	application, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	resp, err := application.agent.Search(ctx, agent.SearchRequest{
		Query:         strings.Join(args, " "),
		SearchType:    searchType,
		K:             searchK,
		IncludeScores: searchScores,
	})
	if err != nil {
		return err
	}

	if searchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Printf("%d results (%s)\n\n", len(resp.Results), resp.SearchType)
	for i, doc := range resp.Results {
		if doc.IsAction() {
			fmt.Printf("%d. [%s] %s\n", i+1, doc.Company, doc.ActionContent)
			fmt.Printf("   value=%d effort=%d ratio=%.2f category=%s\n",
				doc.Value, doc.Effort, doc.Ratio, doc.Category)
		} else {
			fmt.Printf("%d. [%s] %s\n", i+1, doc.Company, doc.Title)
			fmt.Printf("   impact=%s\n", doc.Impact)
		}
		if searchScores && i < len(resp.Scores) {
			fmt.Printf("   score=%.4f\n", resp.Scores[i])
		}
		fmt.Println()
	}
	return nil
}
