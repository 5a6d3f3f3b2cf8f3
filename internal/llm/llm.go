// Package llm is the port to the language-model provider: plain completions,
// token streaming, and tool invocation over any OpenAI-compatible API.
package llm

import "context"

// Message is one chat turn sent to the provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolDefinition describes a tool the model may invoke.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"input_schema"`
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID    string                 `json:"id"`
	Name  string                 `json:"name"`
	Input map[string]interface{} `json:"input"`
}

// ToolResponse is the result of a tool-enabled completion.
type ToolResponse struct {
	Text       string
	ToolCalls  []ToolCall
	StopReason string
}

// Client is the completion service contract.
type Client interface {
	// CompleteWithSystem sends one user prompt under a system prompt and
	// returns the full completion.
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// StreamChat starts a streaming completion over a conversation. Tokens
	// arrive on the first channel as the provider produces them; a terminal
	// failure arrives on the second. Both channels close when the stream
	// ends.
	StreamChat(ctx context.Context, systemPrompt string, history []Message) (<-chan string, <-chan error)

	// CompleteWithTools sends a prompt with tool definitions and returns
	// the response including any tool calls.
	CompleteWithTools(ctx context.Context, systemPrompt, userPrompt string, tools []ToolDefinition) (*ToolResponse, error)
}
