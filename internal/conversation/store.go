// Package conversation holds per-conversation message history shared by
// concurrent chat requests.
package conversation

import (
	"sort"
	"sync"

	"loomii/internal/logging"
)

// Role of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Store is an append-only mapping from conversation id to its ordered
// messages. Append for an unknown id creates the conversation.
type Store interface {
	Append(id string, msg Message)
	// Snapshot returns a point-in-time copy. A concurrent Append never
	// mutates a sequence already handed out.
	Snapshot(id string) []Message
	Clear(id string)
	IDs() []string
	Len(id string) int
}

// MemoryStore is the in-process Store implementation.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[string][]Message
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{conversations: make(map[string][]Message)}
}

// Append adds msg to the conversation, creating it if needed.
func (s *MemoryStore) Append(id string, msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[id] = append(s.conversations[id], msg)
	logging.Chat("conversation %s: appended %s message (%d total)", id, msg.Role, len(s.conversations[id]))
}

// Snapshot returns a copy of the conversation's messages. Unknown ids yield
// an empty slice.
func (s *MemoryStore) Snapshot(id string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.conversations[id]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}

// Clear truncates the conversation in place. The id remains known.
func (s *MemoryStore) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[id]; ok {
		s.conversations[id] = s.conversations[id][:0]
		logging.Chat("conversation %s: cleared", id)
	}
}

// IDs returns the known conversation ids, sorted.
func (s *MemoryStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.conversations))
	for id := range s.conversations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the message count for id.
func (s *MemoryStore) Len(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations[id])
}
