package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(url string) *OpenAIClient {
	return NewOpenAIClient(OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: url,
		Model:   "test-model",
		Timeout: 5 * time.Second,
	})
}

func TestCompleteWithSystem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}

		var req openAIRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"  hello  "}}]}`)
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).CompleteWithSystem(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("CompleteWithSystem failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %q, want trimmed %q", got, "hello")
	}
}

func TestCompleteRetriesRateLimit(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).CompleteWithSystem(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if got != "ok" || attempts != 2 {
		t.Errorf("got %q after %d attempts", got, attempts)
	}
}

func TestCompleteSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"message":"model overloaded"}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CompleteWithSystem(context.Background(), "sys", "user")
	if err == nil || !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("error = %v, want provider message surfaced", err)
	}
}

func TestCompleteWithTools(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openAIRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if len(req.Tools) != 1 || req.Tools[0].Function.Name != "create_card" {
			t.Errorf("tools not forwarded: %+v", req.Tools)
		}

		fmt.Fprint(w, `{"choices":[{"finish_reason":"tool_calls","message":{"content":"",
			"tool_calls":[{"id":"call_1","type":"function","function":{"name":"create_card","arguments":"{\"title\":\"Quick Wins\"}"}},
			{"id":"call_2","type":"function","function":{"name":"create_card","arguments":"{bad json"}}]}}]}`)
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).CompleteWithTools(context.Background(), "sys", "user", []ToolDefinition{
		{Name: "create_card", Description: "creates a card", InputSchema: map[string]interface{}{"type": "object"}},
	})
	if err != nil {
		t.Fatalf("CompleteWithTools failed: %v", err)
	}
	if resp.StopReason != "tool_calls" {
		t.Errorf("stop reason = %q", resp.StopReason)
	}
	// The malformed second call is dropped, not fatal.
	if len(resp.ToolCalls) != 1 {
		t.Fatalf("got %d tool calls, want 1", len(resp.ToolCalls))
	}
	if resp.ToolCalls[0].Input["title"] != "Quick Wins" {
		t.Errorf("arguments not decoded: %+v", resp.ToolCalls[0].Input)
	}
}

func TestStreamChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openAIRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if !req.Stream {
			t.Error("stream flag not set")
		}
		if len(req.Messages) != 3 {
			t.Errorf("got %d messages, want system + 2 history", len(req.Messages))
		}

		w.Header().Set("Content-Type", "text/event-stream")
		for _, delta := range []string{"The", " answer", " is 42."} {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", delta)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	history := []Message{
		{Role: "user", Content: "question"},
		{Role: "assistant", Content: "prior answer"},
	}
	tokens, errs := newTestClient(srv.URL).StreamChat(context.Background(), "sys", history)

	var got strings.Builder
	for tok := range tokens {
		got.WriteString(tok)
	}
	if err := <-errs; err != nil {
		t.Fatalf("stream error: %v", err)
	}
	if got.String() != "The answer is 42." {
		t.Errorf("streamed %q", got.String())
	}
}

func TestStreamChatErrorBeforeTokens(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "upstream exploded")
	}))
	defer srv.Close()

	tokens, errs := newTestClient(srv.URL).StreamChat(context.Background(), "sys", nil)
	for range tokens {
		t.Error("unexpected token")
	}
	if err := <-errs; err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestStreamChatCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"tok\"}}]}\n\n")
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		<-release // hold the stream open until the test is done
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	tokens, errs := newTestClient(srv.URL).StreamChat(ctx, "sys", nil)

	if tok := <-tokens; tok != "tok" {
		t.Fatalf("first token = %q", tok)
	}
	cancel()

	for range tokens {
	}
	if err := <-errs; err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
