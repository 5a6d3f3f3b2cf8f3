// Package agent orchestrates one chat turn: classify the query, retrieve
// context, stream the model's answer, then append the framed card metadata.
package agent

import (
	"context"
	"fmt"
	"io"
	"time"

	"loomii/internal/cards"
	"loomii/internal/classify"
	"loomii/internal/conversation"
	"loomii/internal/corpus"
	"loomii/internal/llm"
	"loomii/internal/logging"
	"loomii/internal/retrieval"
	"loomii/internal/stream"
)

// Agent wires the per-request pipeline together.
type Agent struct {
	classifier *classify.Chain
	engine     *retrieval.Engine
	store      conversation.Store
	client     llm.Client
	generator  *cards.Generator
	now        func() time.Time
}

// New creates an agent. generator may be nil to disable card output; the
// metadata frame is still written so the protocol stays uniform.
func New(classifier *classify.Chain, engine *retrieval.Engine, store conversation.Store, client llm.Client, generator *cards.Generator) *Agent {
	return &Agent{
		classifier: classifier,
		engine:     engine,
		store:      store,
		client:     client,
		generator:  generator,
		now:        time.Now,
	}
}

// queryFor converts a classification decision into a retrieval query.
func queryFor(message string, d classify.Decision) retrieval.Query {
	q := retrieval.Query{Text: message, Strategy: d.Strategy, K: d.K}
	switch d.Strategy {
	case retrieval.StrategyByCompany:
		q.Filters.Company = d.SearchTerm
	case retrieval.StrategyByImpact:
		q.Filters.Impact = corpus.Impact(d.SearchTerm)
	}
	return q
}

// StreamResponse handles one chat turn, writing the hybrid stream to out.
// Retrieval and pre-token completion failures are returned to the caller; a
// failure after tokens have flowed closes the stream early without a
// metadata frame and is also returned.
func (a *Agent) StreamResponse(ctx context.Context, conversationID, message string, out io.Writer) error {
	timer := logging.StartTimer(logging.CategoryChat, "Agent.StreamResponse")
	defer timer.Stop()

	decision := a.classifier.Classify(ctx, message)
	logging.Chat("conversation %s: strategy=%s k=%d", conversationID, decision.Strategy, decision.K)

	res, err := a.engine.Retrieve(ctx, queryFor(message, decision))
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}
	resultsBlock := FormatResults(res)

	a.store.Append(conversationID, conversation.Message{Role: conversation.RoleUser, Content: message})
	history := a.store.Snapshot(conversationID)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sys := systemPrompt(resultsBlock, res.Strategy)
	tokens, errs := a.client.StreamChat(ctx, sys, toLLMMessages(history))

	w := stream.NewWriter(out)
	var full []byte
	streamed := false

	for tok := range tokens {
		if err := w.WriteToken(tok); err != nil {
			// Client went away; stop the completion promptly.
			cancel()
			for range tokens {
			}
			<-errs
			return err
		}
		full = append(full, tok...)
		streamed = true
	}
	if err := <-errs; err != nil {
		if streamed {
			// Early close, no metadata frame.
			w.Abort()
			logging.ChatWarn("conversation %s: completion failed mid-stream after %d bytes: %v", conversationID, len(full), err)
			return fmt.Errorf("completion failed mid-stream: %w", err)
		}
		return fmt.Errorf("completion failed: %w", err)
	}

	a.store.Append(conversationID, conversation.Message{Role: conversation.RoleAssistant, Content: string(full)})

	var cardList []cards.Card
	if a.generator != nil {
		cardList = a.generator.Generate(ctx, string(full), resultsBlock)
	}
	if err := w.WriteMetadata(cards.NewMetadata(a.now(), cardList)); err != nil {
		return err
	}

	logging.Chat("conversation %s: turn complete, %d bytes, %d cards", conversationID, len(full), len(cardList))
	return nil
}

// History returns the conversation's messages.
func (a *Agent) History(conversationID string) []conversation.Message {
	return a.store.Snapshot(conversationID)
}

// Clear truncates the conversation.
func (a *Agent) Clear(conversationID string) {
	a.store.Clear(conversationID)
}

func toLLMMessages(history []conversation.Message) []llm.Message {
	out := make([]llm.Message, len(history))
	for i, m := range history {
		out[i] = llm.Message{Role: string(m.Role), Content: m.Content}
	}
	return out
}
