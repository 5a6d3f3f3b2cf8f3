package cards

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"loomii/internal/llm"
	"loomii/internal/logging"
)

const generatorSystemPrompt = `You turn a competitive-intelligence answer into UI cards.
Given the assistant's answer and the retrieval results it was based on, call the card tools
for whatever structured summaries would help the user. Rules:
- Only use facts present in the answer or the results; never invent scores or companies.
- Prefer one focused card over several overlapping ones.
- Always finish with one assistance-suggestions card offering up to 3 follow-ups
  (e.g. building a plan, a timeline, or next steps).`

// toolNames maps each card tool to its type tag.
var toolNames = map[string]string{
	"create_action_list_card":            TypeActionList,
	"create_quick_wins_card":             TypeQuickWins,
	"create_high_value_actions_card":     TypeHighValueActions,
	"create_competitive_analysis_card":   TypeCompetitiveAnalysis,
	"create_assistance_suggestions_card": TypeAssistanceSuggestions,
}

func itemSchema(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"title":       map[string]interface{}{"type": "string"},
		"description": map[string]interface{}{"type": "string"},
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"title": map[string]interface{}{"type": "string"},
			"items": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type":       "object",
					"properties": props,
					"required":   []string{"title"},
				},
			},
		},
		"required": []string{"title", "items"},
	}
}

// Definitions returns the card tool definitions handed to the model.
func Definitions() []llm.ToolDefinition {
	scored := map[string]interface{}{
		"value":  map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 10},
		"effort": map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 10},
		"ratio":  map[string]interface{}{"type": "number"},
	}
	competitive := map[string]interface{}{
		"competitor": map[string]interface{}{"type": "string"},
		"advantage":  map[string]interface{}{"type": "string"},
	}

	return []llm.ToolDefinition{
		{
			Name:        "create_action_list_card",
			Description: "A plain list of recommended actions.",
			InputSchema: itemSchema(nil),
		},
		{
			Name:        "create_quick_wins_card",
			Description: "High-value, low-effort actions with their value, effort, and ratio scores.",
			InputSchema: itemSchema(scored),
		},
		{
			Name:        "create_high_value_actions_card",
			Description: "The most valuable strategic actions with their scores.",
			InputSchema: itemSchema(scored),
		},
		{
			Name:        "create_competitive_analysis_card",
			Description: "Findings about specific competitors and the advantage each finding offers.",
			InputSchema: itemSchema(competitive),
		},
		{
			Name:        "create_assistance_suggestions_card",
			Description: "Up to 3 follow-up offers, e.g. creating a plan or timeline.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"title": map[string]interface{}{"type": "string"},
					"suggestions": map[string]interface{}{
						"type":     "array",
						"items":    map[string]interface{}{"type": "string"},
						"maxItems": maxSuggestions,
					},
				},
				"required": []string{"title", "suggestions"},
			},
		},
	}
}

// FromToolCall deterministically maps one structured call to its card
// variant, independent of which model produced it.
func FromToolCall(tc llm.ToolCall) (Card, error) {
	typ, ok := toolNames[tc.Name]
	if !ok {
		return Card{}, fmt.Errorf("unknown card tool %q", tc.Name)
	}

	// Round-trip through JSON so the argument map decodes into the typed
	// card shape.
	encoded, err := json.Marshal(tc.Input)
	if err != nil {
		return Card{}, fmt.Errorf("unencodable arguments for %s: %w", tc.Name, err)
	}
	var c Card
	if err := json.Unmarshal(encoded, &c); err != nil {
		return Card{}, fmt.Errorf("malformed arguments for %s: %w", tc.Name, err)
	}
	c.Type = typ
	c = c.Clamp()
	if err := c.Validate(); err != nil {
		return Card{}, err
	}
	return c, nil
}

// Generator produces cards for a completed response via the tool-calling
// port.
type Generator struct {
	client  llm.Client
	timeout time.Duration
}

// NewGenerator wraps the client with a per-call timeout.
func NewGenerator(client llm.Client, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Generator{client: client, timeout: timeout}
}

// Generate returns cards for the completed answer. Best-effort: any failure
// (timeout, provider error, malformed tool output) yields an empty list and
// never fails the response.
func (g *Generator) Generate(ctx context.Context, answer, resultsBlock string) []Card {
	timer := logging.StartTimer(logging.CategoryCards, "Generator.Generate")
	defer timer.Stop()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	userPrompt := fmt.Sprintf("Assistant answer:\n%s\n\nRetrieval results:\n%s", answer, resultsBlock)
	resp, err := g.client.CompleteWithTools(ctx, generatorSystemPrompt, userPrompt, Definitions())
	if err != nil {
		logging.CardsWarn("card generation failed, returning no cards: %v", err)
		return nil
	}

	var out []Card
	for _, tc := range resp.ToolCalls {
		c, err := FromToolCall(tc)
		if err != nil {
			logging.CardsWarn("dropping card: %v", err)
			continue
		}
		out = append(out, c)
	}
	logging.Cards("generated %d cards from %d tool calls", len(out), len(resp.ToolCalls))
	return out
}
