package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOverrides_LLM(t *testing.T) {
	t.Run("OPENAI_API_KEY sets api key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-env")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "sk-env", cfg.LLM.APIKey)
	})

	t.Run("OPENAI_MODEL overrides default model", func(t *testing.T) {
		t.Setenv("OPENAI_MODEL", "gpt-4o-mini")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	})

	t.Run("empty env leaves config untouched", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("OPENAI_MODEL", "")

		cfg := DefaultConfig()
		cfg.LLM.APIKey = "sk-file"
		cfg.applyEnvOverrides()

		assert.Equal(t, "sk-file", cfg.LLM.APIKey)
		assert.Equal(t, "gpt-4.1-mini", cfg.LLM.Model)
	})
}

func TestEnvOverrides_Embedding(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gm-key")
	t.Setenv("EMBEDDING_PROVIDER", "genai")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, "gm-key", cfg.Embedding.GenAIAPIKey)
	assert.Equal(t, "genai", cfg.Embedding.Provider)
}

func TestEnvOverrides_ServerAndCorpus(t *testing.T) {
	t.Setenv("PORT", "8090")
	t.Setenv("LOOMII_CORPUS", "/data/insights.json")
	t.Setenv("LOOMII_WATCH", "true")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, ":8090", cfg.Server.Addr)
	assert.Equal(t, "/data/insights.json", cfg.Corpus.Path)
	assert.True(t, cfg.Corpus.Watch)
}
