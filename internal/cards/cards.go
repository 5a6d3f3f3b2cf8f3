// Package cards builds the structured metadata segment appended after a
// streamed response: typed UI cards derived from the retrieval results and
// the completed answer.
package cards

import (
	"encoding/json"
	"fmt"
	"time"
)

// Card type tags. Each tag selects a frontend component.
const (
	TypeActionList            = "action-list"
	TypeQuickWins             = "quick-wins"
	TypeHighValueActions      = "high-value-actions"
	TypeCompetitiveAnalysis   = "competitive-analysis"
	TypeAssistanceSuggestions = "assistance-suggestions"
)

// maxSuggestions bounds an assistance-suggestions card.
const maxSuggestions = 3

// Item is one entry of a list-shaped card. Numeric fields apply only to the
// value-scored card types.
type Item struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Value       int     `json:"value,omitempty"`
	Effort      int     `json:"effort,omitempty"`
	Ratio       float64 `json:"ratio,omitempty"`
	Competitor  string  `json:"competitor,omitempty"`
	Advantage   string  `json:"advantage,omitempty"`
}

// Card is one tagged variant of the card union.
type Card struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Items       []Item   `json:"items,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Metadata is the framed payload written after the streamed text.
// ReplaceText signals whether the cards replace the streamed text; the
// streaming path always sends false, cards supplement the answer.
type Metadata struct {
	Timestamp   string `json:"timestamp"`
	Cards       []Card `json:"cards"`
	ReplaceText bool   `json:"replaceText"`
}

// NewMetadata stamps the payload with the given time.
func NewMetadata(now time.Time, cards []Card) Metadata {
	if cards == nil {
		cards = []Card{}
	}
	return Metadata{Timestamp: now.UTC().Format(time.RFC3339), Cards: cards}
}

// Validate checks the tag and the per-type shape constraints.
func (c Card) Validate() error {
	switch c.Type {
	case TypeActionList, TypeQuickWins, TypeHighValueActions, TypeCompetitiveAnalysis:
		if len(c.Items) == 0 {
			return fmt.Errorf("%s card %q has no items", c.Type, c.Title)
		}
	case TypeAssistanceSuggestions:
		if len(c.Suggestions) == 0 {
			return fmt.Errorf("assistance card %q has no suggestions", c.Title)
		}
		if len(c.Suggestions) > maxSuggestions {
			return fmt.Errorf("assistance card %q has %d suggestions, max %d", c.Title, len(c.Suggestions), maxSuggestions)
		}
	default:
		return fmt.Errorf("unknown card type %q", c.Type)
	}
	if c.Title == "" {
		return fmt.Errorf("%s card has no title", c.Type)
	}
	return nil
}

// Clamp trims a card into validity where possible instead of dropping it:
// oversized suggestion lists are truncated.
func (c Card) Clamp() Card {
	if c.Type == TypeAssistanceSuggestions && len(c.Suggestions) > maxSuggestions {
		c.Suggestions = c.Suggestions[:maxSuggestions]
	}
	return c
}

// ParseMetadata decodes a framed payload. An empty object yields zero cards.
func ParseMetadata(raw string) (Metadata, error) {
	var m Metadata
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return Metadata{}, fmt.Errorf("malformed metadata payload: %w", err)
	}
	return m, nil
}
