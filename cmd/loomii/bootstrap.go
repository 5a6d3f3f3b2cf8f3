package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"loomii/internal/agent"
	"loomii/internal/cards"
	"loomii/internal/config"
	"loomii/internal/conversation"
	"loomii/internal/corpus"
	"loomii/internal/embedding"
	"loomii/internal/index"
	"loomii/internal/llm"
	"loomii/internal/retrieval"
)

// app holds the wired service components.
type app struct {
	cfg    *config.Config
	index  *index.Index
	cache  *index.EmbeddingCache
	engine embedding.Engine
	agent  *agent.Agent
}

// buildApp assembles corpus, index, classifier, and agent from config.
func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	insights, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	logger.Info("Loaded corpus",
		zap.Int("insights", len(insights)),
		zap.String("path", cfg.Corpus.Path))

	engine, err := embedding.NewEngine(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("failed to build embedding engine: %w", err)
	}
	if hc, ok := engine.(embedding.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return nil, fmt.Errorf("embedding backend unhealthy: %w", err)
		}
	}

	var cache *index.EmbeddingCache
	if cfg.Corpus.CachePath != "" {
		cache, err = index.OpenCache(cfg.Corpus.CachePath)
		if err != nil {
			logger.Warn("embedding cache disabled", zap.Error(err))
			cache = nil
		}
	}

	ix := index.New(engine, cache)
	if err := ix.Build(ctx, insights); err != nil {
		return nil, fmt.Errorf("failed to build index: %w", err)
	}
	logger.Info("Index ready",
		zap.Int("documents", ix.Len()),
		zap.String("engine", engine.Name()))

	client := llm.NewOpenAIClient(cfg.OpenAI())
	chain := buildClassifierChain(cfg, insights)

	var generator *cards.Generator
	if cfg.Cards.Enabled {
		generator = cards.NewGenerator(client, cfg.GetCardsTimeout())
	}

	a := agent.New(chain, retrieval.NewEngine(ix, cfg.Retrieval),
		conversation.NewMemoryStore(), client, generator)

	return &app{
		cfg:    cfg,
		index:  ix,
		cache:  cache,
		engine: engine,
		agent:  a,
	}, nil
}

func (a *app) Close() {
	if a.cache != nil {
		_ = a.cache.Close()
	}
}
