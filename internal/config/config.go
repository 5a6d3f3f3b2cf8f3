package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"loomii/internal/embedding"
	"loomii/internal/llm"
	"loomii/internal/logging"
	"loomii/internal/retrieval"
)

// Config holds all loomii configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// HTTP server
	Server ServerConfig `yaml:"server"`

	// Chat completion backend
	LLM LLMConfig `yaml:"llm"`

	// Query classification
	Classifier ClassifierConfig `yaml:"classifier"`

	// Embedding backend
	Embedding embedding.Config `yaml:"embedding"`

	// Corpus source and embedding cache
	Corpus CorpusConfig `yaml:"corpus"`

	// Retrieval thresholds
	Retrieval retrieval.Config `yaml:"retrieval"`

	// Card generation
	Cards CardsConfig `yaml:"cards"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LLMConfig configures the chat completion client.
type LLMConfig struct {
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Timeout     string  `yaml:"timeout"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// ClassifierConfig configures the query classifier chain.
type ClassifierConfig struct {
	UseLLM    bool   `yaml:"use_llm"`
	Timeout   string `yaml:"timeout"`
	DefaultK  int    `yaml:"default_k"`
	FilteredK int    `yaml:"filtered_k"`
}

// CorpusConfig configures the insight corpus source.
type CorpusConfig struct {
	// Path to a JSON insight file. Empty means the built-in dataset.
	Path string `yaml:"path"`

	// SQLite embedding cache. Empty disables caching.
	CachePath string `yaml:"cache_path"`

	// Watch rebuilds the index when the corpus file changes.
	Watch bool `yaml:"watch"`
}

// CardsConfig configures structured card generation.
type CardsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Timeout string `yaml:"timeout"`
}

// LoggingConfig configures categorized file logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"` // debug, info, warn, error
	Debug      bool            `yaml:"debug"`
	Dir        string          `yaml:"dir"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "loomii",
		Version: "1.0.0",

		Server: ServerConfig{
			Addr: ":3001",
		},

		LLM: LLMConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4.1-mini",
			Timeout:     "120s",
			MaxTokens:   4096,
			Temperature: 0.2,
		},

		Classifier: ClassifierConfig{
			UseLLM:    true,
			Timeout:   "5s",
			DefaultK:  3,
			FilteredK: 5,
		},

		Embedding: embedding.DefaultConfig(),

		Corpus: CorpusConfig{
			Path:      "",
			CachePath: "data/embeddings.db",
			Watch:     false,
		},

		Retrieval: retrieval.DefaultConfig(),

		Cards: CardsConfig{
			Enabled: true,
			Timeout: "15s",
		},

		Logging: LoggingConfig{
			Level: "info",
			Dir:   ".",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if url := os.Getenv("OPENAI_BASE_URL"); url != "" {
		c.LLM.BaseURL = url
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		c.LLM.Model = model
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Embedding.GenAIAPIKey = key
	}
	if ep := os.Getenv("OLLAMA_ENDPOINT"); ep != "" {
		c.Embedding.OllamaEndpoint = ep
	}
	if p := os.Getenv("EMBEDDING_PROVIDER"); p != "" {
		c.Embedding.Provider = p
	}

	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}

	if path := os.Getenv("LOOMII_CORPUS"); path != "" {
		c.Corpus.Path = path
	}
	if path := os.Getenv("LOOMII_CACHE"); path != "" {
		c.Corpus.CachePath = path
	}
	if watch := os.Getenv("LOOMII_WATCH"); watch != "" {
		if b, err := strconv.ParseBool(watch); err == nil {
			c.Corpus.Watch = b
		}
	}

	if debug := os.Getenv("LOOMII_DEBUG"); debug != "" {
		if b, err := strconv.ParseBool(debug); err == nil {
			c.Logging.Debug = b
		}
	}
}

// Validate checks the configuration for basic consistency.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch c.Embedding.Provider {
	case "ollama", "genai", "local":
	default:
		return fmt.Errorf("unknown embedding provider: %s", c.Embedding.Provider)
	}
	if c.Embedding.Provider == "genai" && c.Embedding.GenAIAPIKey == "" {
		return fmt.Errorf("embedding.genai_api_key is required for the genai provider")
	}
	if c.Classifier.UseLLM && c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required when classifier.use_llm is set")
	}
	return nil
}

// OpenAI builds the chat completion client configuration.
func (c *Config) OpenAI() llm.OpenAIConfig {
	cfg := llm.DefaultOpenAIConfig(c.LLM.APIKey)
	if c.LLM.BaseURL != "" {
		cfg.BaseURL = c.LLM.BaseURL
	}
	if c.LLM.Model != "" {
		cfg.Model = c.LLM.Model
	}
	if c.LLM.MaxTokens > 0 {
		cfg.MaxTokens = c.LLM.MaxTokens
	}
	if c.LLM.Temperature > 0 {
		cfg.Temperature = c.LLM.Temperature
	}
	cfg.Timeout = c.GetLLMTimeout()
	return cfg
}

// LogSettings builds the logging settings.
func (c *Config) LogSettings() logging.Settings {
	return logging.Settings{
		DebugMode:  c.Logging.Debug,
		Categories: c.Logging.Categories,
		Level:      c.Logging.Level,
	}
}

// GetLLMTimeout returns the completion timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 120 * time.Second
	}
	return d
}

// GetClassifierTimeout returns the classifier timeout as a duration.
func (c *Config) GetClassifierTimeout() time.Duration {
	d, err := time.ParseDuration(c.Classifier.Timeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// GetCardsTimeout returns the card generation timeout as a duration.
func (c *Config) GetCardsTimeout() time.Duration {
	d, err := time.ParseDuration(c.Cards.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}
