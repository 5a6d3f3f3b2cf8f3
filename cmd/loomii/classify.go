package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"loomii/internal/classify"
	"loomii/internal/config"
	"loomii/internal/corpus"
	"loomii/internal/llm"
	"loomii/internal/retrieval"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [query]",
	Short: "Show how a query would be classified",
	Long: `Runs the classifier chain on a query and prints the chosen
retrieval strategy without touching the index.

Example:
  loomii classify "what are some quick wins"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	insights, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	chain := buildClassifierChain(cfg, insights)
	decision := chain.Classify(context.Background(), query)

	fmt.Printf("query:    %s\n", query)
	fmt.Printf("strategy: %s\n", decision.Strategy)
	fmt.Printf("k:        %d\n", decision.K)
	if decision.SearchTerm != "" {
		fmt.Printf("term:     %s\n", decision.SearchTerm)
	}
	return nil
}

func buildClassifierChain(cfg *config.Config, insights []corpus.Insight) *classify.Chain {
	classifiers := []classify.Classifier{
		classify.NewKeywordClassifier(corpus.CompanyNames(insights), cfg.Classifier.FilteredK),
	}
	if cfg.Classifier.UseLLM && cfg.LLM.APIKey != "" {
		client := llm.NewOpenAIClient(cfg.OpenAI())
		classifiers = append(classifiers, classify.NewLLMClassifier(client, cfg.GetClassifierTimeout()))
	}
	return classify.NewChain(
		classify.Decision{Strategy: retrieval.StrategySimilarity, K: cfg.Retrieval.DefaultK},
		classifiers...,
	)
}
