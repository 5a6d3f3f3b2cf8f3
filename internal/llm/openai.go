package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"loomii/internal/logging"
)

// OpenAIConfig configures the OpenAI-compatible client. BaseURL may point at
// any provider speaking the chat completions protocol.
type OpenAIConfig struct {
	APIKey      string        `yaml:"api_key" json:"api_key"`
	BaseURL     string        `yaml:"base_url" json:"base_url"`
	Model       string        `yaml:"model" json:"model"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens"`
	Temperature float64       `yaml:"temperature" json:"temperature"`
}

// DefaultOpenAIConfig returns sensible defaults.
func DefaultOpenAIConfig(apiKey string) OpenAIConfig {
	return OpenAIConfig{
		APIKey:      apiKey,
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4.1-mini",
		Timeout:     2 * time.Minute,
		MaxTokens:   4096,
		Temperature: 0.2,
	}
}

// OpenAIClient implements Client against an OpenAI-compatible API.
type OpenAIClient struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	httpClient  *http.Client

	mu          sync.Mutex
	lastRequest time.Time
}

// NewOpenAIClient creates a client with custom config.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4096
	}
	return &OpenAIClient{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Model returns the configured model name.
func (c *OpenAIClient) Model() string { return c.model }

// throttle spaces consecutive requests at least 100ms apart.
func (c *OpenAIClient) throttle() {
	c.mu.Lock()
	elapsed := time.Since(c.lastRequest)
	if elapsed < 100*time.Millisecond {
		time.Sleep(100*time.Millisecond - elapsed)
	}
	c.lastRequest = time.Now()
	c.mu.Unlock()
}

// withDeadline applies the client timeout when the caller's context carries
// no deadline of its own.
func withDeadline(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

// CompleteWithSystem sends one user prompt under a system prompt.
func (c *OpenAIClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.complete(ctx, systemPrompt, userPrompt, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// CompleteWithTools sends a prompt with tool definitions.
func (c *OpenAIClient) CompleteWithTools(ctx context.Context, systemPrompt, userPrompt string, tools []ToolDefinition) (*ToolResponse, error) {
	wireTools := make([]openAITool, len(tools))
	for i, t := range tools {
		wireTools[i] = openAITool{
			Type: "function",
			Function: openAIFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.InputSchema,
			},
		}
	}

	resp, err := c.complete(ctx, systemPrompt, userPrompt, wireTools)
	if err != nil {
		return nil, err
	}

	choice := resp.Choices[0]
	out := &ToolResponse{
		Text:       strings.TrimSpace(choice.Message.Content),
		StopReason: choice.FinishReason,
	}
	for _, tc := range choice.Message.ToolCalls {
		call := ToolCall{ID: tc.ID, Name: tc.Function.Name}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &call.Input); err != nil {
				logging.APIError("malformed tool call arguments for %s: %v", tc.Function.Name, err)
				continue
			}
		}
		out.ToolCalls = append(out.ToolCalls, call)
	}
	return out, nil
}

func (c *OpenAIClient) complete(ctx context.Context, systemPrompt, userPrompt string, tools []openAITool) (*openAIResponse, error) {
	ctx, cancel := withDeadline(ctx, c.httpClient.Timeout)
	defer cancel()

	start := time.Now()
	if c.apiKey == "" {
		return nil, fmt.Errorf("API key not configured")
	}

	c.throttle()

	reqBody := openAIRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Tools:       tools,
	}

	// Retry loop for rate limits.
	maxRetries := 3
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limit exceeded (429)")
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}

		var parsed openAIResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		if parsed.Error != nil {
			return nil, fmt.Errorf("API error: %s", parsed.Error.Message)
		}
		if len(parsed.Choices) == 0 {
			return nil, fmt.Errorf("no completion returned")
		}

		logging.API("completion: model=%s elapsed=%v tokens=%d", c.model, time.Since(start), parsed.Usage.TotalTokens)
		return &parsed, nil
	}

	logging.APIError("completion: max retries exceeded after %v: %v", time.Since(start), lastErr)
	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// StreamChat starts a streaming completion over the conversation history.
// Each delta is forwarded as soon as it arrives.
func (c *OpenAIClient) StreamChat(ctx context.Context, systemPrompt string, history []Message) (<-chan string, <-chan error) {
	contentChan := make(chan string, 100)
	errorChan := make(chan error, 1)

	go func() {
		defer close(contentChan)
		defer close(errorChan)

		ctx, cancel := withDeadline(ctx, c.httpClient.Timeout)
		defer cancel()

		start := time.Now()
		if c.apiKey == "" {
			errorChan <- fmt.Errorf("API key not configured")
			return
		}

		c.throttle()

		messages := make([]Message, 0, len(history)+1)
		messages = append(messages, Message{Role: "system", Content: systemPrompt})
		messages = append(messages, history...)

		reqBody := openAIRequest{
			Model:         c.model,
			Messages:      messages,
			MaxTokens:     c.maxTokens,
			Temperature:   c.temperature,
			Stream:        true,
			StreamOptions: &openAIStreamOptions{IncludeUsage: true},
		}

		// Retries apply only before streaming begins; once tokens have
		// flowed a failure is terminal.
		maxRetries := 3
		var lastErr error

		for attempt := 0; attempt <= maxRetries; attempt++ {
			if attempt > 0 {
				time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
			}

			jsonData, err := json.Marshal(reqBody)
			if err != nil {
				errorChan <- fmt.Errorf("failed to marshal request: %w", err)
				return
			}

			req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
			if err != nil {
				errorChan <- fmt.Errorf("failed to create request: %w", err)
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
			req.Header.Set("Accept", "text/event-stream")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				lastErr = fmt.Errorf("request failed: %w", err)
				continue
			}

			if resp.StatusCode == http.StatusTooManyRequests {
				body, _ := io.ReadAll(resp.Body)
				resp.Body.Close()
				lastErr = fmt.Errorf("rate limit exceeded (429): %s", strings.TrimSpace(string(body)))
				continue
			}
			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				resp.Body.Close()
				errorChan <- fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
				return
			}

			c.scanStream(ctx, resp, contentChan, errorChan, start)
			return
		}

		logging.APIError("stream: max retries exceeded after %v: %v", time.Since(start), lastErr)
		errorChan <- fmt.Errorf("max retries exceeded: %w", lastErr)
	}()

	return contentChan, errorChan
}

func (c *OpenAIClient) scanStream(ctx context.Context, resp *http.Response, contentChan chan<- string, errorChan chan<- error, start time.Time) {
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	scanDone := make(chan struct{})
	scanErrChan := make(chan error, 1)

	go func() {
		defer close(scanDone)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data:") {
				continue
			}
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if data == "" {
				continue
			}
			if data == "[DONE]" {
				return
			}

			var chunk openAIResponse
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				continue
			}
			if chunk.Error != nil {
				scanErrChan <- fmt.Errorf("API error: %s", chunk.Error.Message)
				return
			}
			if len(chunk.Choices) > 0 && chunk.Choices[0].Delta != nil {
				delta := chunk.Choices[0].Delta.Content
				if delta != "" {
					select {
					case contentChan <- delta:
					case <-ctx.Done():
						return
					}
				}
			}
		}
		if err := scanner.Err(); err != nil {
			scanErrChan <- err
		}
	}()

	select {
	case <-scanDone:
		select {
		case err := <-scanErrChan:
			logging.APIError("stream error after %v: %v", time.Since(start), err)
			errorChan <- fmt.Errorf("stream error: %w", err)
		default:
			logging.API("stream completed in %v", time.Since(start))
		}
	case <-ctx.Done():
		resp.Body.Close()
		<-scanDone
		errorChan <- ctx.Err()
	}
}
